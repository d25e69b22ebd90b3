package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	tariffmodel "github.com/tariffsheriff/tariffsheriff/internal/tariff/model"
)

// BaseModel provides the shared identity and timestamp columns.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;column:id;not null;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;column:updated_at;not null" json:"updatedAt"`
}

// BeforeCreate is a GORM hook that is triggered before a new record is created.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID, err = uuid.NewRandom()
		if err != nil {
			return
		}
	}
	base.CreatedAt = time.Now().UTC()
	base.UpdatedAt = time.Now().UTC()
	return
}

// SavedCalculation is one duty calculation persisted for a user. The stored
// result columns are always recomputed server-side before saving; the
// client-submitted figures, when present, are kept in the submitted_* audit
// columns and never treated as the source of truth.
type SavedCalculation struct {
	BaseModel
	UserID string `gorm:"type:varchar(255);column:user_id;not null;index" json:"userId"`
	Name   string `gorm:"type:varchar(255);column:name" json:"name"`
	Notes  string `gorm:"type:text;column:notes" json:"notes"`

	// Inputs
	HsCode         string              `gorm:"type:varchar(10);column:hs_code;not null" json:"hsCode"`
	ImporterIso3   string              `gorm:"type:char(3);column:importer_iso3;not null" json:"importerIso3"`
	OriginIso3     string              `gorm:"type:char(3);column:origin_iso3;not null" json:"originIso3"`
	Quantity       *int64              `gorm:"column:quantity" json:"quantity,omitempty"`
	TotalValue     decimal.NullDecimal `gorm:"type:decimal(18,2);column:total_value" json:"totalValue"`
	MaterialCost   decimal.NullDecimal `gorm:"type:decimal(18,2);column:material_cost" json:"materialCost"`
	LabourCost     decimal.NullDecimal `gorm:"type:decimal(18,2);column:labour_cost" json:"labourCost"`
	OverheadCost   decimal.NullDecimal `gorm:"type:decimal(18,2);column:overhead_cost" json:"overheadCost"`
	Profit         decimal.NullDecimal `gorm:"type:decimal(18,2);column:profit" json:"profit"`
	OtherCosts     decimal.NullDecimal `gorm:"type:decimal(18,2);column:other_costs" json:"otherCosts"`
	Fob            decimal.NullDecimal `gorm:"type:decimal(18,2);column:fob" json:"fob"`
	NonOriginValue decimal.NullDecimal `gorm:"type:decimal(18,2);column:non_origin_value" json:"nonOriginValue"`
	RvcThreshold   decimal.NullDecimal `gorm:"type:decimal(18,6);column:rvc_threshold" json:"rvcThreshold"`
	AgreementID    *int64              `gorm:"column:agreement_id" json:"agreementId,omitempty"`

	// Server-computed results
	Basis       tariffmodel.TariffBasis `gorm:"type:varchar(4);column:basis;not null" json:"basis"`
	AppliedRate decimal.NullDecimal     `gorm:"type:decimal(18,6);column:applied_rate" json:"appliedRate"`
	TotalDuty   decimal.NullDecimal     `gorm:"type:decimal(18,2);column:total_duty" json:"totalDuty"`
	RvcComputed decimal.NullDecimal     `gorm:"type:decimal(18,6);column:rvc_computed" json:"rvcComputed"`

	// Client-submitted audit trail
	SubmittedBasis string              `gorm:"type:varchar(8);column:submitted_basis" json:"submittedBasis,omitempty"`
	SubmittedRate  decimal.NullDecimal `gorm:"type:decimal(18,6);column:submitted_rate" json:"submittedRate"`
	SubmittedDuty  decimal.NullDecimal `gorm:"type:decimal(18,2);column:submitted_duty" json:"submittedDuty"`
	SubmittedRvc   decimal.NullDecimal `gorm:"type:decimal(18,6);column:submitted_rvc" json:"submittedRvc"`
}

func (c *SavedCalculation) TableName() string {
	return "saved_calculations"
}

// SubmittedResult is the figure set a client computed locally before saving.
// It is recorded verbatim for auditing but never persisted as the result.
type SubmittedResult struct {
	Basis       string           `json:"basis"`
	AppliedRate *decimal.Decimal `json:"appliedRate,omitempty"`
	TotalDuty   *decimal.Decimal `json:"totalDuty,omitempty"`
	Rvc         *decimal.Decimal `json:"rvc,omitempty"`
}

// SaveCalculationRequest is the payload for persisting a calculation.
type SaveCalculationRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`

	Input *tariffmodel.CalculationRequest `json:"input"`

	// Submitted carries the client's own numbers, if any, for the audit trail.
	Submitted *SubmittedResult `json:"result,omitempty"`
}

// SavedCalculationListResult represents the result of querying saved
// calculations with pagination.
type SavedCalculationListResult struct {
	TotalCount   int64              `json:"totalCount"`
	Calculations []SavedCalculation `json:"calculations"`
	Offset       int                `json:"offset"`
	Limit        int                `json:"limit"`
}
