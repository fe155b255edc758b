package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

var (
	// ErrMissingToken is returned when no token was presented.
	ErrMissingToken = errors.New("token not found")
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("token invalid or expired")
	// ErrUnknownRole is returned for roles without a secret.
	ErrUnknownRole = errors.New("unknown role")
)

// TokenManager issues and verifies role-scoped JWTs. A token signed for one role
// never verifies under the other role's secret.
type TokenManager struct {
	keys keyring
	ttl  time.Duration
	now  func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(adminSecret, userSecret string, ttl time.Duration) (*TokenManager, error) {
	keys, err := newKeyring(adminSecret, userSecret)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{keys: keys, ttl: ttl, now: time.Now}, nil
}

// Claims describes JWT payload.
type Claims struct {
	PrincipalID string      `json:"id"`
	Role        domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a JWT for the principal.
func (tm *TokenManager) Issue(principalID string, role domain.Role) (string, time.Time, error) {
	secret, err := tm.keys.secret(role)
	if err != nil {
		return "", time.Time{}, err
	}

	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		PrincipalID: principalID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify validates tokenStr against role's secret and returns the principal id.
func (tm *TokenManager) Verify(tokenStr string, role domain.Role) (string, error) {
	if tokenStr == "" {
		return "", ErrMissingToken
	}
	secret, err := tm.keys.secret(role)
	if err != nil {
		return "", err
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Role != role || claims.PrincipalID == "" {
		return "", ErrInvalidToken
	}
	return claims.PrincipalID, nil
}
