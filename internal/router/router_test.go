package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard-api/internal/config"
	"taskboard-api/internal/metrics"
)

func testConfig(t *testing.T, basePath string) Config {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	logger := zap.NewNop()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), logger)

	return Config{
		DB:       db,
		Logger:   logger,
		Metrics:  m,
		JWT:      config.JWTConfig{Secret: "test-secret"},
		BasePath: basePath,
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := Setup(testConfig(t, "/api"))

	for _, path := range []string{"/health", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

func TestMetricsEndpoint_NoAuthentication(t *testing.T) {
	router := Setup(testConfig(t, "/api"))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "# HELP")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := Setup(testConfig(t, "/api"))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/boards"},
		{http.MethodPost, "/api/boards"},
		{http.MethodGet, "/api/tasks/my-tasks"},
		{http.MethodGet, "/api/auth/notifications"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestPublicAuthRoutesDoNotRequireToken(t *testing.T) {
	router := Setup(testConfig(t, "/api"))

	// Empty body fails validation, not authentication
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmptyBasePath(t *testing.T) {
	router := Setup(testConfig(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
