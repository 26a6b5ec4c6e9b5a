package health

import (
	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// RegisterRoutes registers health check routes
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies) {
	router.GET("/health", Get(deps))
}
