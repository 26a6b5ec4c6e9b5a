// Package api wires the HTTP surface: routing, middleware and the
// server lifecycle.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bakerbass/guitarchops/api/exports"
	"github.com/bakerbass/guitarchops/api/files"
	"github.com/bakerbass/guitarchops/api/health"
	"github.com/bakerbass/guitarchops/api/tasks"
	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/api/version"
	_ "github.com/bakerbass/guitarchops/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes, no rate limiting
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	// Uploads kick off transcoding and analysis work, so they get the
	// tightest limit (2 req/s, burst of 5)
	uploadGroup := v1.Group("/files/upload")
	uploadGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
	files.RegisterUploadRoutes(uploadGroup, deps)

	// General file routes (10 req/s, burst of 20)
	filesGroup := v1.Group("/files")
	filesGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	files.RegisterRoutes(filesGroup, deps)

	// Task polling is frequent while clients watch progress (20 req/s, burst of 30)
	tasksGroup := v1.Group("/tasks")
	tasksGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30))
	tasks.RegisterRoutes(tasksGroup, deps)

	// Exports run ffmpeg per segment (5 req/s, burst of 10)
	exportsGroup := v1.Group("/exports")
	exportsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	exports.RegisterRoutes(exportsGroup, deps)

	return nil
}

// NotFoundHandler returns the standard 404 response
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.Error("route not found"))
	}
}
