package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(authEvents.WithLabelValues("login", "success"))
	AuthEvent("login", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(authEvents.WithLabelValues("login", "success")))

	before = testutil.ToFloat64(importRows.WithLabelValues("failed"))
	ImportRows("failed", 3)
	ImportRows("failed", 0)
	assert.Equal(t, before+3, testutil.ToFloat64(importRows.WithLabelValues("failed")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveRequest("GET", "/api/epks", "200", 0.01)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "epkadmin_http_requests_total")
	assert.Contains(t, string(body), `route="/api/epks"`)
}
