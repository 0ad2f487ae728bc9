package models

import "time"

// AuditLog records one handled request of an authenticated user.
type AuditLog struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     *uint  `gorm:"index"`
	Method     string `gorm:"size:8;not null"`
	Path       string `gorm:"size:255;not null"`
	Status     int    `gorm:"not null"`
	DurationMS int64
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:255"`
	CreatedAt  time.Time
}
