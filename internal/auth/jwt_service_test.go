package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"microblog/internal/apperrors"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	s := NewJWTService("test-secret")

	token, err := s.Issue(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := s.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTService_Verify_Expired(t *testing.T) {
	s := NewJWTService("test-secret")

	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_Verify_Malformed(t *testing.T) {
	s := NewJWTService("test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{
			name: "wrong signing key",
			token: func() string {
				other := NewJWTService("other-secret")
				token, _ := other.Issue(1)
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
		})
	}
}
