package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	v := NewVerifier("secret")

	token, err := v.GenerateToken("42", time.Hour)
	require.NoError(t, err)

	userID, err := v.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}

func TestParseToken_NumericSubject(t *testing.T) {
	v := NewVerifier("secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	userID, err := v.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7", userID)
}

func TestParseToken_Errors(t *testing.T) {
	v := NewVerifier("secret")

	expired, err := v.GenerateToken("42", -time.Minute)
	require.NoError(t, err)
	_, err = v.ParseToken(expired)
	assert.Same(t, ErrTokenExpired, err)

	other, err := NewVerifier("other").GenerateToken("42", time.Hour)
	require.NoError(t, err)
	_, err = v.ParseToken(other)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "42"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.ParseToken(none)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "x"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = v.ParseToken(noSub)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = v.ParseToken("   ")
	assert.Same(t, ErrMissingToken, err)

	_, err = NewVerifier("").ParseToken("abc")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
