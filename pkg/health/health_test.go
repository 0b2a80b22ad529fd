package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/health"
)

func ok(context.Context) error { return nil }

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), nil)
		assert.Equal(t, health.StatusHealthy, resp.Status)
		assert.Empty(t, resp.Checks)
	})

	t.Run("one failing check keeps the others", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"redis":   func(context.Context) error { return errors.New("connection refused") },
			"catalog": ok,
		})
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Equal(t, health.StatusHealthy, resp.Checks["catalog"].Status)
		assert.Equal(t, "connection refused", resp.Checks["redis"].Error)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, health.WithTimeout(10*time.Millisecond))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("readiness json", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler(health.Checks{"redis": func(context.Context) error { return errors.New("down") }})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp health.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
	})

	t.Run("readiness plain", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler(health.Checks{"catalog": ok})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})
}
