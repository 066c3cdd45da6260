package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"microblog/internal/apperrors"
)

// TokenExpiry is the absolute lifetime of an issued token. There is no
// refresh or rotation; callers log in again after expiry.
const TokenExpiry = time.Hour

// Claims represents JWT claims carried by an identity token.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed identity tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue generates a signed token embedding the user id, expiring
// TokenExpiry from now.
func (s *JWTService) Issue(userID uint) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded user id.
// An expired token yields apperrors.ErrTokenExpired; any other parse or
// signature failure yields apperrors.ErrTokenInvalid.
func (s *JWTService) Verify(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.ErrTokenExpired
		}
		return 0, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, apperrors.ErrTokenInvalid
	}

	return claims.UserID, nil
}
