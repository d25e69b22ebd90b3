package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgreementStatus represents the lifecycle status of a trade agreement.
type AgreementStatus string

const (
	AgreementStatusActive     AgreementStatus = "ACTIVE"
	AgreementStatusSigned     AgreementStatus = "SIGNED"
	AgreementStatusTerminated AgreementStatus = "TERMINATED"
)

// Agreement represents a trade agreement whose RVC threshold gates
// preferential tariff treatment between its party countries.
type Agreement struct {
	ID               int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string              `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Type             string              `gorm:"type:varchar(100);column:type;not null" json:"type"`
	Status           AgreementStatus     `gorm:"type:varchar(20);column:status;not null" json:"status"`
	EnteredIntoForce *time.Time          `gorm:"type:date;column:entered_into_force" json:"enteredIntoForce,omitempty"`
	RvcThreshold     decimal.NullDecimal `gorm:"type:decimal(5,2);column:rvc_threshold" json:"rvcThreshold"` // percent, e.g. 40.00
	Parties          []Country           `gorm:"many2many:agreement_parties" json:"parties,omitempty"`
	CreatedAt        time.Time           `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
	UpdatedAt        time.Time           `gorm:"type:timestamptz;column:updated_at;not null" json:"updatedAt"`
}

func (a *Agreement) TableName() string {
	return "agreements"
}
