package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Get handles version requests
// @Summary API version
// @Description Returns the service name and version
// @Tags version
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /version [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "guitarchops",
			"version":     Version,
			"description": "Audio analysis service for practice loops",
			"status":      "running",
		})
	}
}
