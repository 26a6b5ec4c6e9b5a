package files

import (
	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// GetAudio serves the decoded WAV copy of a registered file
// @Summary Download file audio
// @Description Streams the analyzable WAV copy of a registered file
// @Tags files
// @Produce audio/wav
// @Param id path string true "File ID (content digest)"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse "File not found"
// @Router /api/v1/files/{id}/audio [get]
func GetAudio(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		track, ok := lookupTrack(c, deps)
		if !ok {
			return
		}

		c.Header("Content-Type", "audio/wav")
		c.File(track.Path)
	}
}
