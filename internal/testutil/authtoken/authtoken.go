// Package authtoken signs bearer tokens the way the identity provider does,
// for tests that go through the Authenticate middleware.
package authtoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loan-portal/internal/domain/identity"
)

// Issue signs an HS256 token for userID. An empty role is left out of the
// claims.
func Issue(secret []byte, userID string, role identity.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(ttl)),
	}
	if role != "" {
		claims["role"] = string(role)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
