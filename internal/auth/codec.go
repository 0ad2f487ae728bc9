package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every decode failure: empty input,
// malformed token, bad signature or expired timestamp. Callers must not
// learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload carrying the owning user id.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec issues and decodes signed identity tokens (HS256). It is stateless:
// signing key, lifetime and clock are fixed at construction, so a Codec is
// safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec with the given signing secret and token lifetime.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewCodecWithClock is NewCodec with an explicit clock, for tests.
func NewCodecWithClock(secret string, ttl time.Duration, now func() time.Time) *Codec {
	c := NewCodec(secret, ttl)
	c.now = now
	return c
}

// Issue signs a new token for userID.
func (c *Codec) Issue(userID uint) (string, error) {
	issuedAt := c.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode parses and verifies raw and returns the embedded user id.
// Any failure comes back as ErrInvalidToken.
func (c *Codec) Decode(raw string) (uint, error) {
	if raw == "" {
		return 0, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
