package tasks

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// Get returns the status record for a background task
// @Summary Get task status
// @Description Returns status, progress and (once complete) the result of a background task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} tasks.Task
// @Failure 404 {object} types.ErrorResponse "Task not found"
// @Router /api/v1/tasks/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, ok := deps.TaskStore.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, types.Error("task not found"))
			return
		}
		c.JSON(http.StatusOK, task)
	}
}
