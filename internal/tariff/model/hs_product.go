package model

import "time"

// HsProduct represents a tariff-classified product in an importing country's
// schedule, identified by (destination, HS version, HS code).
type HsProduct struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DestinationID int64     `gorm:"column:destination_id;not null;uniqueIndex:uq_hs_product" json:"destinationId"`
	Destination   *Country  `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
	HsVersion     string    `gorm:"type:varchar(20);column:hs_version;not null;uniqueIndex:uq_hs_product" json:"hsVersion"`
	HsCode        string    `gorm:"type:varchar(10);column:hs_code;not null;uniqueIndex:uq_hs_product" json:"hsCode"`
	HsLabel       string    `gorm:"type:varchar(255);column:hs_label;not null" json:"hsLabel"`
	CreatedAt     time.Time `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"type:timestamptz;column:updated_at;not null" json:"updatedAt"`
}

func (h *HsProduct) TableName() string {
	return "hs_products"
}
