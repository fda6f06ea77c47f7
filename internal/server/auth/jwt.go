// Package auth implements the authentication core of the documents server:
// HS256-signed access tokens and bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/absingh09/mydocuments/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity fact set embedded in an access token. The subject
// of the registered claims carries the user id; email and name ride along so
// protected handlers never need a database lookup to know who is calling.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GenerateToken mints an HS256-signed token for the given user with an
// expiry of validityDuration from now.
func GenerateToken(userID, email, name string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
		Name:  name,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString against secretKey and returns its claims.
// Expired tokens yield common.ErrTokenExpired; any other parse or signature
// failure yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
