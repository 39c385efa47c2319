package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the owner id under "id" next to the registered iat/exp claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

func NewToken(userID string, secret []byte, issuedAt time.Time, ttl time.Duration) (string, error) {
	const op = "jwt.NewToken"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return tokenString, nil
}

// ParseToken checks signature and expiry as of now and returns the user id.
func ParseToken(tokenString string, secret []byte, now time.Time) (string, error) {
	const op = "jwt.ParseToken"

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.UserID, nil
}
