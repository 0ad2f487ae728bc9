package models

import "time"

// Product is an inventory record owned by exactly one user. UserID is set at
// creation and never changes. Image holds the stored attachment filename,
// empty when the product has no image.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"size:150;not null"`
	Category    string `gorm:"size:50;index;not null"`
	Price       int64  `gorm:"not null"` // rupiah
	Stock       int    `gorm:"not null;default:0"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
