package files

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// GetAll lists registered files
// @Summary List files
// @Description Returns every registered file, newest first
// @Tags files
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/files [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tracks, err := deps.TrackService.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.Error("failed to list files"))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"files": tracks,
			"count": len(tracks),
		})
	}
}
