package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerbass/guitarchops/api/types"
)

func newTestEngine(t *testing.T) (*gin.Engine, chan struct{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	cleanupStop := make(chan struct{})
	var cleanupInitialized sync.Once
	require.NoError(t, RegisterRoutes(engine, &types.Dependencies{}, &sync.Map{}, cleanupStop, &cleanupInitialized))
	return engine, cleanupStop
}

func TestHealthRoute(t *testing.T) {
	engine, stop := newTestEngine(t)
	defer close(stop)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestVersionRoute(t *testing.T) {
	engine, stop := newTestEngine(t)
	defer close(stop)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "guitarchops", body["name"])
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	engine, stop := newTestEngine(t)
	defer close(stop)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
}

func TestDocsRedirect(t *testing.T) {
	engine, stop := newTestEngine(t)
	defer close(stop)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/docs/index.html", w.Header().Get("Location"))
}
