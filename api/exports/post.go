package exports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/services/library"
	"github.com/bakerbass/guitarchops/internal/services/tasks"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// ExportRequest names the segments to cut out of a file.
type ExportRequest struct {
	FileID     string   `json:"file_id" binding:"required"`
	SegmentIDs []string `json:"segment_ids" binding:"required,min=1"`
}

// ExportResponse lists the exported files and any per-segment failures.
type ExportResponse struct {
	Exports []models.Export   `json:"exports"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Post exports segments as standalone WAV files
// @Summary Export segments
// @Description Cuts the named segments out of a file's WAV copy and stores each as a downloadable file
// @Tags exports
// @Accept json
// @Produce json
// @Param request body ExportRequest true "File and segment IDs"
// @Success 200 {object} ExportResponse
// @Failure 400 {object} types.ErrorResponse "Invalid request"
// @Failure 404 {object} types.ErrorResponse "File not found"
// @Router /api/v1/exports [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.Error("file_id and segment_ids are required"))
			return
		}

		ctx := c.Request.Context()
		track, err := deps.TrackService.GetByDigest(ctx, req.FileID)
		if err != nil {
			if errors.Is(err, library.ErrInvalidDigest) {
				c.JSON(http.StatusBadRequest, types.Error("invalid file ID"))
			} else {
				c.JSON(http.StatusNotFound, types.Error("file not found"))
			}
			return
		}

		result, err := analysisResult(c, deps, track)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.Error("analysis unavailable for file"))
			return
		}

		segments := indexSegments(result)
		response := ExportResponse{Exports: []models.Export{}}
		for _, segID := range req.SegmentIDs {
			seg, ok := segments[segID]
			if !ok {
				addExportError(&response, segID, "unknown segment")
				continue
			}
			export, err := deps.ExportService.ExportSegment(ctx, track, seg)
			if err != nil {
				apiLog := logger.With("api")
				apiLog.Error().Err(err).Str("segment", segID).Msg("segment export failed")
				addExportError(&response, segID, "export failed")
				continue
			}
			response.Exports = append(response.Exports, *export)
		}

		c.JSON(http.StatusOK, response)
	}
}

// analysisResult returns the segmentation for a track, preferring a
// completed background task and falling back to the cache-backed
// inline computation.
func analysisResult(c *gin.Context, deps *types.Dependencies, track *models.Track) (*models.AnalysisResult, error) {
	if task, found := deps.TaskStore.Get("analysis_" + track.Digest); found && task.Status == tasks.StatusCompleted {
		if result, ok := task.Result.(*models.AnalysisResult); ok {
			return result, nil
		}
	}
	return deps.Analyzer.ComputeSegments(c.Request.Context(), track, nil, nil)
}

func indexSegments(result *models.AnalysisResult) map[string]models.Segment {
	index := make(map[string]models.Segment)
	for _, typ := range models.AllSegmentTypes {
		for _, seg := range result.Segments.ByType(typ) {
			index[seg.ID] = seg
		}
	}
	return index
}

func addExportError(r *ExportResponse, segID, msg string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[segID] = msg
}
