package models

import "time"

// AuthToken is one issued login token. A user may hold several at once
// (multi-device); logout deletes all of them. Rows are never updated.
type AuthToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_user_token;not null"`
	Token     string `gorm:"size:512;uniqueIndex:idx_user_token;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
