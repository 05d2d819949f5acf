// Package auth validates the bearer tokens issued at sign-in. Identity
// itself lives outside the core: rows only carry the opaque employee id
// taken from the token claims.
package auth

import (
	"context"
	"net/http"
	"time"

	"hrportal/backend/foundation/web"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

type ctxKey int

// Key is how claims are stored and retrieved from a context.Context.
const Key ctxKey = 1

type Claims struct {
	jwt.StandardClaims
	UserId     int    `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
}

// Authorized reports whether the claims carry one of the given roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

type Auth struct {
	key []byte
}

func New(key string) *Auth {
	return &Auth{key: []byte(key)}
}

func (a *Auth) ValidateToken(token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}

// GenerateTokenPair issues an access/refresh token pair for the claims.
func (a *Auth) GenerateTokenPair(claims Claims) (string, string, error) {
	now := time.Now()

	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(12 * time.Hour).Unix()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	claims.ExpiresAt = now.Add(30 * 24 * time.Hour).Unix()
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return access, refresh, nil
}

// GetClaims pulls the authenticated claims out of the context.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	return claims, nil
}
