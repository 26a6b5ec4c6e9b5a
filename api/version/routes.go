package version

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers version routes
func RegisterRoutes(router gin.IRouter) {
	router.GET("/version", Get())
}
