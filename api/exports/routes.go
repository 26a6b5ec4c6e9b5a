package exports

import (
	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// RegisterRoutes registers export routes on the given router group
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies) {
	router.GET("", GetAll(deps))
	router.POST("", Post(deps))
	router.GET("/:filename", GetDownload(deps))
}
