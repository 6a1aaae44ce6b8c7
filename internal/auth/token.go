package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"risk-register/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated actor behind a request, rebuilt from
// the token claims on every call. It is never persisted.
type Principal struct {
	ID   uint
	Role models.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

const tokenTTL = 24 * time.Hour

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an access token carrying the user's id and role.
func IssueToken(secret []byte, user models.User) (string, error) {
	now := time.Now()
	c := claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(secret)
}

// ParseToken verifies a raw token and resolves the principal it names.
func ParseToken(secret []byte, raw string) (Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Principal{}, err
	}
	if !token.Valid {
		return Principal{}, errors.New("invalid token")
	}

	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return Principal{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	return Principal{ID: uint(id), Role: models.UserRole(c.Role)}, nil
}
