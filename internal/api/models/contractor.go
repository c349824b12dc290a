package models

import "time"

type Contractor struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Trade  string
	Email  string
	Phone  string
	// UK tax/contractor-registration status, carried through verbatim.
	CISStatus string `gorm:"column:cis_status"`
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Contractor) TableName() string {
	return "contractors"
}
