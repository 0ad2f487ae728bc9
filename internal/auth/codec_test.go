package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestCodecDecodeGarbage(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	cases := []string{
		"",
		"garbage",
		"aaa.bbb.ccc",
		"eyJhbGciOiJIUzI1NiJ9.e30.invalid",
	}
	for _, raw := range cases {
		_, err := codec.Decode(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "Decode(%q)", raw)
	}
}

func TestCodecDecodeWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-one", time.Hour)
	verifier := NewCodec("secret-two", time.Hour)

	token, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecDecodeExpired(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	issuer := NewCodecWithClock("test-secret", time.Hour, past)

	token, err := issuer.Issue(7)
	require.NoError(t, err)

	// same secret, real clock: the token expired an hour ago
	verifier := NewCodec("test-secret", time.Hour)
	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecDecodeZeroUserID(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Issue(0)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
