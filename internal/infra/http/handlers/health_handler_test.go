package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type brokerStub bool

func (b brokerStub) Healthy() bool { return bool(b) }

func getHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Handle(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr.Code, resp
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), brokerStub(true), []string{"resend", "log"})

	code, resp := getHealth(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Dependencies["database"])
	assert.Equal(t, "healthy", resp.Dependencies["rabbitmq"])
	assert.Equal(t, "configured", resp.Dependencies["mail_resend"])
	assert.Equal(t, "configured", resp.Dependencies["mail_log"])
}

func TestHealthHandler_NothingConfigured(t *testing.T) {
	code, resp := getHealth(t, NewHealthHandler(nil, nil, nil))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "not configured", resp.Dependencies["database"])
	assert.Equal(t, "not configured", resp.Dependencies["rabbitmq"])
}

func TestHealthHandler_Degraded(t *testing.T) {
	h := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("connection refused") }), brokerStub(false), nil)

	code, resp := getHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Contains(t, resp.Dependencies["database"], "connection refused")
	assert.Contains(t, resp.Dependencies["rabbitmq"], "unhealthy")
}
