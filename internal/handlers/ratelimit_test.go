package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/nuitfeedback/internal/app"
)

func TestClientLimiter(t *testing.T) {
	limiter := NewClientLimiter(2)
	now := time.Date(2025, 9, 26, 20, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.Zero(t, limiter.wait("10.0.0.1"))
	assert.Zero(t, limiter.wait("10.0.0.1"))
	assert.InDelta(t, float64(30*time.Second), float64(limiter.wait("10.0.0.1")), float64(time.Millisecond))

	assert.Zero(t, limiter.wait("10.0.0.2"), "clients have separate buckets")

	now = now.Add(31 * time.Second)
	assert.Zero(t, limiter.wait("10.0.0.1"))
}

func TestClientLimiter_ForgetsIdleClients(t *testing.T) {
	limiter := NewClientLimiter(10)
	now := time.Date(2025, 9, 26, 20, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.wait("10.0.0.1")
	now = now.Add(5 * time.Minute)
	limiter.wait("10.0.0.2")

	assert.NotContains(t, limiter.clients, "10.0.0.1")
	assert.Contains(t, limiter.clients, "10.0.0.2")
}

func TestClientLimiter_Disabled(t *testing.T) {
	limiter := NewClientLimiter(0)
	assert.Nil(t, limiter)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	w := httptest.NewRecorder()
	limiter.Limit(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimitsAPI(t *testing.T) {
	config := app.DefaultConfig()
	config.Database.DSN = filepath.Join(t.TempDir(), "feedback.db")
	config.Database.SeedOnStart = false
	config.Server.RateLimitPerMinute = 2

	store, err := app.NewStore(config.Database.DSN)
	require.NoError(t, err)
	live, err := app.NewLivePublisher(config)
	require.NoError(t, err)
	service := app.NewServiceWith(config, store, live)
	require.NoError(t, service.Prepare(context.Background()))
	defer service.Close()

	router := NewRouter(service)
	body := `{"activity":"Robotique","rating":9}`

	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/feedback", body).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/simulate", "").Code)

	w := doRequest(t, router, http.MethodPost, "/api/feedback", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "error", decode[map[string]string](t, w)["status"])

	w = doRequest(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code, "health checks are not limited")

	total, err := service.Store.CountFeedback(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
