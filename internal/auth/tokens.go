package auth

import (
	"errors"
	"fmt"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"

	"gorm.io/gorm"
)

// ErrTokenNotFound means the token is absent from the store: it was revoked
// (logout, account deletion) or never issued. Distinct from a decode failure
// and from a real database fault, which FindActive passes through wrapped.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore is the persistent record of issued tokens.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// FindActive looks up the exact (userID, token) pair. ErrTokenNotFound when
// no such row exists; any other error is a storage fault.
func (s *TokenStore) FindActive(userID uint, token string) (*models.AuthToken, error) {
	var at models.AuthToken
	err := s.db.Where("user_id = ? AND token = ?", userID, token).First(&at).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &at, nil
}

// Create records a freshly issued token. Multiple live tokens per user are
// allowed (multi-device), so this never replaces existing rows.
func (s *TokenStore) Create(userID uint, token string) (*models.AuthToken, error) {
	at := models.AuthToken{
		UserID: userID,
		Token:  token,
	}
	if err := s.db.Create(&at).Error; err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &at, nil
}

// RevokeAll deletes every token of the user in a single statement, so a
// concurrent FindActive sees either all rows or none.
func (s *TokenStore) RevokeAll(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}
