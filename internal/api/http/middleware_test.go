package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

func TestErrorMiddlewareLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), nil, 0)
	app.Get("/token", func(c *fiber.Ctx) error {
		return apperrors.NewInvalidToken("token invalid or expired", errors.New("signature is invalid"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("course", nil)
	})

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/token", http.StatusUnauthorized, apperrors.CodeInvalidToken},
		{"/boom", http.StatusInternalServerError, apperrors.CodeInternal},
		{"/missing", http.StatusNotFound, apperrors.CodeNotFound},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
		require.NoError(t, err)
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		assert.Equal(t, tc.code, body.Error.Code, tc.path)
	}

	rejected := logs.FilterMessage("token rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zap.WarnLevel, rejected[0].Level)
	assert.Equal(t, "/token", rejected[0].ContextMap()["path"])
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
