package model

import "time"

// Country represents an importing or exporting country in the reference data.
// ISO-3 codes are the canonical external identifier; the numeric ID is internal.
type Country struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Iso2      string    `gorm:"type:char(2);column:iso2;not null;unique" json:"iso2"`
	Iso3      string    `gorm:"type:char(3);column:iso3;not null;unique" json:"iso3"`
	Name      string    `gorm:"type:varchar(120);column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;column:updated_at;not null" json:"updatedAt"`
}

func (c *Country) TableName() string {
	return "countries"
}

// CountryFilter will be used when querying countries as a batch
type CountryFilter struct {
	NameContains *string `json:"nameContains,omitempty"`
	Offset       *int    `json:"offset,omitempty"`
	Limit        *int    `json:"limit,omitempty"`
}

// CountryListResult represents the result of querying countries with pagination
type CountryListResult struct {
	TotalCount int64     `json:"totalCount"`
	Countries  []Country `json:"countries"`
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
}
