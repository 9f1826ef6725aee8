package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"loan-portal/internal/domain/identity"
)

const sessionKey = "session"

// Claims is the bearer token payload: sub is the user UUID, role is
// customer or staff.
type Claims struct {
	Role identity.Role `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken verifies raw and returns the session it carries.
func ParseToken(secret []byte, raw string) (identity.Session, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return identity.Session{}, err
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return identity.Session{}, errors.New("subject is not a user id")
	}
	role := claims.Role
	if role == "" {
		role = identity.RoleCustomer
	}
	if !role.Valid() {
		return identity.Session{}, errors.New("unknown role")
	}
	return identity.Session{UserID: uid.String(), Role: role}, nil
}

// Authenticate requires a valid bearer token and stores the session on the
// context.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			s, err := ParseToken(secret, strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			SetSession(c, s)
			return next(c)
		}
	}
}

// SetSession attaches s to the request context.
func SetSession(c echo.Context, s identity.Session) { c.Set(sessionKey, s) }

// CurrentSession returns the session set by Authenticate.
func CurrentSession(c echo.Context) (identity.Session, bool) {
	s, ok := c.Get(sessionKey).(identity.Session)
	return s, ok
}

func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok := CurrentSession(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		}
		if !s.IsStaff() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "staff only"})
		}
		return next(c)
	}
}
