package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerbass/guitarchops/api/types"
	svc "github.com/bakerbass/guitarchops/internal/services/tasks"
)

func newTaskEngine(store *svc.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/tasks"), &types.Dependencies{TaskStore: store})
	return engine
}

func TestGetTask(t *testing.T) {
	store := svc.NewStore()
	store.Create("upload_abc")
	store.SetProgress("upload_abc", 42, "Reducing peaks...")
	engine := newTaskEngine(store)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/upload_abc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var task svc.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "upload_abc", task.ID)
	assert.Equal(t, svc.StatusRunning, task.Status)
	assert.Equal(t, 42, task.Progress)
	assert.Equal(t, "Reducing peaks...", task.Message)
}

func TestGetTaskNotFound(t *testing.T) {
	engine := newTaskEngine(svc.NewStore())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
