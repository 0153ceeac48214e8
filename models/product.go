package models

import "time"

// AllSections is the section value that grants access to every department.
const AllSections = "all"

// Product is one collected item of a store section.
type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Section     string    `gorm:"size:100;not null;index" json:"section"`
	Barcode     string    `gorm:"size:64;index" json:"barcode"`
	Description string    `json:"description"`
	ExpiryDate  Date      `gorm:"type:varchar(10);not null" json:"expiry_date"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
	CollectedAt time.Time `gorm:"autoCreateTime" json:"collected_at"`
}
