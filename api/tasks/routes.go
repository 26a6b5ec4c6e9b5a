package tasks

import (
	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// RegisterRoutes registers task routes on the given router group
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies) {
	router.GET("/:id", Get(deps))
}
