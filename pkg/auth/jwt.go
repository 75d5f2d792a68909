// Package auth issues and verifies signed session tokens and wraps password
// hashing. Tokens are HS256 JWTs carrying the admin's identity, role and
// branch; the signing secret and validity window come from configuration.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/escobarvape/backend/config"
)

var (
	// ErrTokenExpired is returned when a token was valid but has aged out.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid is returned for malformed tokens and bad signatures.
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// Claims holds the typed JWT payload.
type Claims struct {
	AdminID string `json:"admin_id"`
	Role    string `json:"role"`
	Branch  string `json:"branch,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed JWT for the given admin, valid for the
// configured TOKEN_TTL window.
func GenerateToken(adminID, role, branch string) (string, error) {
	return GenerateTokenWithTTL(adminID, role, branch, config.TokenTTL())
}

// GenerateTokenWithTTL creates a signed JWT with an explicit validity window.
func GenerateTokenWithTTL(adminID, role, branch string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AdminID: adminID,
		Role:    role,
		Branch:  branch,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string, returning the embedded
// claims unchanged. Expired tokens return ErrTokenExpired; everything else
// that fails verification returns ErrTokenInvalid.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
