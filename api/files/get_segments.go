package files

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/services/tasks"
)

// GetSegments returns the segmentation result for a file
// @Summary Get analysis segments
// @Description Returns the completed segmentation result. While an analysis task is still running this reports the task status instead; with no task queued the analysis runs inline, served from the content cache when possible
// @Tags files
// @Produce json
// @Param id path string true "File ID (content digest)"
// @Success 200 {object} models.AnalysisResult
// @Success 202 {object} types.TaskAccepted "Analysis still running"
// @Failure 404 {object} types.ErrorResponse "File not found"
// @Failure 500 {object} types.ErrorResponse "Analysis failed"
// @Router /api/v1/files/{id}/segments [get]
func GetSegments(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		track, ok := lookupTrack(c, deps)
		if !ok {
			return
		}

		taskID := AnalysisTaskID(track.Digest)
		if task, found := deps.TaskStore.Get(taskID); found {
			switch task.Status {
			case tasks.StatusCompleted:
				if result, ok := task.Result.(*models.AnalysisResult); ok {
					c.JSON(http.StatusOK, result)
					return
				}
			case tasks.StatusPending, tasks.StatusRunning:
				c.JSON(http.StatusAccepted, types.TaskAccepted{TaskID: taskID, Status: string(task.Status)})
				return
			}
		}

		// No queued task. A full run is cheap when the content cache has
		// the result, and authoritative when it does not.
		result, err := deps.Analyzer.ComputeSegments(c.Request.Context(), track, nil, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.Error("analysis failed"))
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
