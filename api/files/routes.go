package files

import (
	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
)

// RegisterRoutes registers the general file routes on the given router
// group. The upload route is registered separately so it can carry its
// own rate limit.
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies) {
	router.GET("", GetAll(deps))
	router.GET("/:id", GetInfo(deps))
	router.GET("/:id/audio", GetAudio(deps))
	router.GET("/:id/peaks", GetPeaks(deps))
	router.POST("/:id/analyze", Analyze(deps))
	router.GET("/:id/segments", GetSegments(deps))
}

// RegisterUploadRoutes registers the upload route on the given router group
func RegisterUploadRoutes(router gin.IRouter, deps *types.Dependencies) {
	router.POST("", Upload(deps))
}
