package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/stocklens/stocklens/internal/middleware"
)

// RegisterRoutes attaches the API surface to the router.
func RegisterRoutes(router *gin.Engine, handlers *middleware.SnapshotHandlers) {
	router.GET("/health", handlers.Health)
	router.GET("/snapshot", handlers.GetSnapshot)
	router.POST("/snapshot", handlers.PostSnapshot)
}
