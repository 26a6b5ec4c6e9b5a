package exports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// GetAll lists exports for a file
// @Summary List exports
// @Description Returns every export recorded for a file, newest first
// @Tags exports
// @Produce json
// @Param file_id query string true "File ID (content digest)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} types.ErrorResponse "Missing file_id"
// @Router /api/v1/exports [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID := c.Query("file_id")
		if fileID == "" {
			c.JSON(http.StatusBadRequest, types.Error("file_id query parameter is required"))
			return
		}

		exports, err := deps.ExportService.List(c.Request.Context(), fileID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.Error("failed to list exports"))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"exports": exports,
			"count":   len(exports),
		})
	}
}
