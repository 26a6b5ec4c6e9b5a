package files

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/internal/services/workers"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// Upload accepts an audio file and queues ingestion
// @Summary Upload an audio file
// @Description Accepts an audio file, queues transcoding and peak generation, and returns a task ID to poll
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Success 202 {object} types.TaskAccepted
// @Failure 400 {object} types.ErrorResponse "No file provided"
// @Failure 503 {object} types.ErrorResponse "Job queue full"
// @Router /api/v1/files/upload [post]
func Upload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.Error("no file provided"))
			return
		}

		taskID := "upload_" + uuid.NewString()

		// The upload lands in a staging path under its task ID so
		// concurrent uploads of the same filename never collide.
		stagedPath := filepath.Join(deps.UploadDir, taskID+"_"+filepath.Base(fileHeader.Filename))
		if err := c.SaveUploadedFile(fileHeader, stagedPath); err != nil {
			apiLog := logger.With("api")
			apiLog.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to save upload")
			c.JSON(http.StatusInternalServerError, types.Error("failed to save upload"))
			return
		}

		deps.TaskStore.Create(taskID)
		err = deps.WorkerPool.Enqueue(workers.Job{
			Type:         workers.JobTypeUpload,
			TaskID:       taskID,
			SourcePath:   stagedPath,
			OriginalName: fileHeader.Filename,
		})
		if err != nil {
			deps.TaskStore.Fail(taskID, "server busy")
			c.JSON(http.StatusServiceUnavailable, types.Error("server busy, try again later"))
			return
		}

		c.JSON(http.StatusAccepted, types.TaskAccepted{TaskID: taskID, Status: "pending"})
	}
}
