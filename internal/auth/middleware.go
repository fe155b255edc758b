package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-marketplace/internal/domain"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Verifier checks a token for a role. TokenManager implements it.
type Verifier interface {
	Verify(token string, role domain.Role) (string, error)
}

// AuthMiddleware validates bearer tokens for one role.
type AuthMiddleware struct {
	tokens Verifier
	role   domain.Role
}

// NewAuthMiddleware constructs middleware for role.
func NewAuthMiddleware(tokens Verifier, role domain.Role) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, role: role}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	principalID, err := m.tokens.Verify(token, m.role)
	if err != nil {
		if errors.Is(err, ErrMissingToken) {
			return apperrors.NewMissingToken("token not found")
		}
		return apperrors.NewInvalidToken("token invalid or expired", err)
	}

	c.Locals(principalKey, &domain.Principal{Role: m.role, ID: principalID})
	return c.Next()
}

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" || strings.EqualFold(header, "Bearer") {
		return "", apperrors.NewMissingToken("token not found")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewInvalidToken("invalid authorization header", nil)
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", apperrors.NewMissingToken("token not found")
	}
	return token, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(*domain.Principal)
	return principal, ok && principal != nil
}

// RequirePrincipal returns the principal of role or an invalid-token error.
func RequirePrincipal(c *fiber.Ctx, role domain.Role) (*domain.Principal, error) {
	principal, ok := PrincipalFromContext(c)
	if !ok || principal.Role != role {
		return nil, apperrors.NewInvalidToken(string(role)+" token required", nil)
	}
	return principal, nil
}
