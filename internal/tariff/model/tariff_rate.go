package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TariffBasis identifies which rate regime a tariff row belongs to.
type TariffBasis string

const (
	TariffBasisMFN  TariffBasis = "MFN"  // Most-Favoured-Nation, the default regime
	TariffBasisPref TariffBasis = "PREF" // Preferential, under a trade agreement
)

// TariffRateType identifies how the duty amount is computed from the row.
type TariffRateType string

const (
	TariffRateTypeAdValorem TariffRateType = "ad_valorem"
	TariffRateTypeSpecific  TariffRateType = "specific"
	TariffRateTypeCompound  TariffRateType = "compound"
)

// TariffRate represents one duty rate row keyed by
// (importer, origin, HS product, basis). OriginID is null for MFN rows that
// apply regardless of origin. At most one row per key is treated as active;
// the resolver takes the first match ordered by valid_from descending.
type TariffRate struct {
	ID             int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ImporterID     int64               `gorm:"column:importer_id;not null;index:idx_tariff_lookup" json:"importerId"`
	Importer       *Country            `gorm:"foreignKey:ImporterID" json:"importer,omitempty"`
	OriginID       *int64              `gorm:"column:origin_id" json:"originId,omitempty"`
	Origin         *Country            `gorm:"foreignKey:OriginID" json:"origin,omitempty"`
	HsProductID    int64               `gorm:"column:hs_product_id;not null;index:idx_tariff_lookup" json:"hsProductId"`
	HsProduct      *HsProduct          `gorm:"foreignKey:HsProductID" json:"hsProduct,omitempty"`
	Basis          TariffBasis         `gorm:"type:varchar(4);column:basis;not null" json:"basis"`
	AgreementID    *int64              `gorm:"column:agreement_id" json:"agreementId,omitempty"`
	RateType       TariffRateType      `gorm:"type:varchar(10);column:rate_type;not null" json:"rateType"`
	AdValoremRate  decimal.NullDecimal `gorm:"type:decimal(9,6);column:ad_valorem_rate" json:"adValoremRate"`
	SpecificAmount decimal.NullDecimal `gorm:"type:decimal(19,4);column:specific_amount" json:"specificAmount"`
	SpecificUnit   string              `gorm:"type:varchar(32);column:specific_unit" json:"specificUnit,omitempty"`
	ValidFrom      time.Time           `gorm:"type:date;column:valid_from;not null" json:"validFrom"`
	ValidTo        *time.Time          `gorm:"type:date;column:valid_to" json:"validTo,omitempty"`
	SourceRef      string              `gorm:"type:varchar(255);column:source_ref" json:"sourceRef,omitempty"`
	CreatedAt      time.Time           `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
	UpdatedAt      time.Time           `gorm:"type:timestamptz;column:updated_at;not null" json:"updatedAt"`
}

func (t *TariffRate) TableName() string {
	return "tariff_rates"
}

// TariffRateLookup bundles the resolved MFN and preferential rows for one
// (importer, origin, HS product) triple, with the preferential row's
// agreement attached best-effort.
type TariffRateLookup struct {
	Mfn       *TariffRate `json:"tariffRateMfn"`
	Pref      *TariffRate `json:"tariffRatePref"`
	Agreement *Agreement  `json:"agreement,omitempty"`
}
