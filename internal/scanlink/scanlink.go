// Package scanlink signs and verifies the tokens embedded in the QR
// scan URL. A link is rejected when it is expired, was minted by a
// different deployment, or was tampered with; this is link integrity,
// not user authentication.
package scanlink

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the scan-link payload. Class optionally preselects a class
// on the check-in form; nothing in it feeds reconciliation.
type Claims struct {
	Class string `json:"class,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a scan-link token valid for ttl.
func Issue(class, issuer, key string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := Claims{
		Class: class,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Parse validates a token and returns its claims.
func Parse(tokenStr, key, issuer string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	return *claims, nil
}
