package files

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/services/library"
)

// GetInfo returns the stored metadata for a registered file
// @Summary Get file info
// @Description Returns the stream metadata recorded for a registered file
// @Tags files
// @Produce json
// @Param id path string true "File ID (content digest)"
// @Success 200 {object} models.Track
// @Failure 400 {object} types.ErrorResponse "Invalid file ID"
// @Failure 404 {object} types.ErrorResponse "File not found"
// @Router /api/v1/files/{id} [get]
func GetInfo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		track, ok := lookupTrack(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, track)
	}
}

// lookupTrack resolves the :id path parameter to a registered track,
// writing the error response itself when the lookup fails.
func lookupTrack(c *gin.Context, deps *types.Dependencies) (*models.Track, bool) {
	digest := c.Param("id")

	track, err := deps.TrackService.GetByDigest(c.Request.Context(), digest)
	if err != nil {
		switch {
		case errors.Is(err, library.ErrInvalidDigest):
			c.JSON(http.StatusBadRequest, types.Error("invalid file ID"))
		case errors.Is(err, library.ErrTrackNotFound):
			c.JSON(http.StatusNotFound, types.Error("file not found"))
		default:
			c.JSON(http.StatusInternalServerError, types.Error("failed to look up file"))
		}
		return nil, false
	}
	return track, true
}
