package files

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/services/tasks"
	"github.com/bakerbass/guitarchops/internal/services/workers"
)

// AnalyzeRequest selects which segmenter families to run. An empty list
// runs all of them.
type AnalyzeRequest struct {
	Types []models.SegmentType `json:"types"`
}

// Analyze queues segmentation analysis for a file
// @Summary Analyze a file
// @Description Queues silence, onset, key and tempo segmentation for a registered file and returns a task ID to poll
// @Tags files
// @Accept json
// @Produce json
// @Param id path string true "File ID (content digest)"
// @Param request body AnalyzeRequest false "Segment types to run (default all)"
// @Success 202 {object} types.TaskAccepted
// @Failure 400 {object} types.ErrorResponse "Invalid file ID or segment type"
// @Failure 404 {object} types.ErrorResponse "File not found"
// @Failure 503 {object} types.ErrorResponse "Job queue full"
// @Router /api/v1/files/{id}/analyze [post]
func Analyze(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		track, ok := lookupTrack(c, deps)
		if !ok {
			return
		}

		var req AnalyzeRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, types.Error("invalid request body"))
				return
			}
		}
		for _, t := range req.Types {
			if !models.ValidSegmentType(t) {
				c.JSON(http.StatusBadRequest, types.Error("unknown segment type: "+string(t)))
				return
			}
		}

		// One analysis task per file: re-requests while a run is in
		// flight attach to the existing task instead of queuing again.
		taskID := AnalysisTaskID(track.Digest)
		if task, found := deps.TaskStore.Get(taskID); found &&
			(task.Status == tasks.StatusPending || task.Status == tasks.StatusRunning) {
			c.JSON(http.StatusAccepted, types.TaskAccepted{TaskID: taskID, Status: string(task.Status)})
			return
		}

		deps.TaskStore.Create(taskID)
		err := deps.WorkerPool.Enqueue(workers.Job{
			Type:   workers.JobTypeAnalysis,
			TaskID: taskID,
			Digest: track.Digest,
			Types:  req.Types,
		})
		if err != nil {
			deps.TaskStore.Fail(taskID, "server busy")
			c.JSON(http.StatusServiceUnavailable, types.Error("server busy, try again later"))
			return
		}

		c.JSON(http.StatusAccepted, types.TaskAccepted{TaskID: taskID, Status: "pending"})
	}
}

// AnalysisTaskID is the task identifier for a file's segmentation run.
func AnalysisTaskID(digest string) string {
	return "analysis_" + digest
}
