package files

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// GetPeaks returns the multi-resolution peak envelopes for a file
// @Summary Get waveform peaks
// @Description Returns min/max/RMS envelopes at every configured resolution, computed on first request and served from the content cache afterwards
// @Tags files
// @Produce json
// @Param id path string true "File ID (content digest)"
// @Success 200 {object} models.PeakSet
// @Failure 404 {object} types.ErrorResponse "File not found"
// @Failure 500 {object} types.ErrorResponse "Peak generation failed"
// @Router /api/v1/files/{id}/peaks [get]
func GetPeaks(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		track, ok := lookupTrack(c, deps)
		if !ok {
			return
		}

		set, err := deps.Analyzer.ComputePeaks(c.Request.Context(), track, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.Error("failed to generate peaks"))
			return
		}
		c.JSON(http.StatusOK, set)
	}
}
