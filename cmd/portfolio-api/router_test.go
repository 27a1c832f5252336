package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/config"
)

func testRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(service.TokenConfig{Secret: "test-secret"})
	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api/v1"}
	router := newRouter(cfg, zap.NewNop(), routerDeps{
		metrics:     service.NewMetricsService(),
		tokens:      tokens,
		transcripts: service.NewTranscriptService(nil, nil, nil, "", nil),
	})
	return router, tokens
}

func TestRouterHealth(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterRequiresToken(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/gpa", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterAuthenticatedRequestReachesHandler(t *testing.T) {
	router, tokens := testRouter(t)
	token, err := tokens.Issue("user-1", "student@example.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcript/export?format=xlsx", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "format must be csv or pdf")
}

func TestRouterExposesMetrics(t *testing.T) {
	router, _ := testRouter(t)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestFirstOf(t *testing.T) {
	assert.Equal(t, "", firstOf(nil))
	assert.Equal(t, "a", firstOf([]string{"a", "b"}))
}
