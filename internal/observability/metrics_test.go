package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/config"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRequest("/course/preview", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/course/preview", "GET", 200, 7*time.Millisecond)
	m.RecordError("/course/purchase", "POST", "CONFLICT")
	m.RecordPurchase()
	m.RecordSignup("admin")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/course/preview", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/course/purchase", "POST", "CONFLICT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.purchases))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.signups.WithLabelValues("admin")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordPurchase()
		m.RecordSignup("user")
	})
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/ping", "GET", "200")))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "loud"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
