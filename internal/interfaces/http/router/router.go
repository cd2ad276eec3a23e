// Package router assembles the gin engine for the admin surface.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sominastock/ordersync/internal/infrastructure/logger"
	"github.com/sominastock/ordersync/internal/interfaces/http/handler"
)

// New builds the gin engine with logging and recovery middleware
func New(syncHandler *handler.SyncHandler, log *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	engine.GET("/healthz", syncHandler.Health)

	v1 := engine.Group("/api/v1")
	{
		sync := v1.Group("/sync")
		{
			sync.POST("/runs", syncHandler.TriggerRun)
			sync.GET("/records", syncHandler.ListRecords)
		}
	}

	return engine
}
