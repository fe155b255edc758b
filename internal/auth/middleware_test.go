package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/course-marketplace/internal/domain"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

func newProtectedApp(tm *TokenManager, role domain.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Get("/me", NewAuthMiddleware(tm, role).Handle, func(c *fiber.Ctx) error {
		principal, err := RequirePrincipal(c, role)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": principal.ID, "role": principal.Role})
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthMiddleware(t *testing.T) {
	tm := newTestManager(t)
	adminToken, _, err := tm.Issue(principalID, domain.RoleAdmin)
	require.NoError(t, err)
	userToken, _, err := tm.Issue(principalID, domain.RoleUser)
	require.NoError(t, err)

	app := newProtectedApp(tm, domain.RoleAdmin)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusBadRequest, apperrors.CodeMissingToken},
		{"empty bearer", "Bearer ", http.StatusBadRequest, apperrors.CodeMissingToken},
		{"raw token without scheme", adminToken, http.StatusUnauthorized, apperrors.CodeInvalidToken},
		{"garbage", "Bearer abc", http.StatusUnauthorized, apperrors.CodeInvalidToken},
		{"other role token", "Bearer " + userToken, http.StatusUnauthorized, apperrors.CodeInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doGet(t, app, tc.header)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}

	t.Run("valid token", func(t *testing.T) {
		status, body := doGet(t, app, "bearer "+adminToken)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, principalID, body["id"])
		assert.Equal(t, "admin", body["role"])
	})
}
