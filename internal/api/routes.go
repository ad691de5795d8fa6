package api

import (
	"github.com/gin-gonic/gin"

	"propwell/server/config"
	"propwell/server/internal/database"
	"propwell/server/internal/queue"
)

func SetupRoutes(router *gin.Engine, db *database.Database, cfg *config.Config, analysisQueue *queue.AnalysisQueue) {
	handler := NewHandler(db, cfg, analysisQueue, nil)

	api := router.Group("/api")
	{
		api.POST("/underwrite", handler.RunUnderwriting)
		api.GET("/underwrite", handler.GetUnderwritingRecords)
		api.GET("/underwrite/defaults", handler.GetDefaultInputs)
		api.POST("/analyze", handler.AnalyzeProperty)
		api.POST("/analyze/batch", handler.EnqueueAnalyses)
		api.GET("/analyses", handler.GetAnalyses)
		api.GET("/analyses/:id", handler.GetAnalysis)
	}
}
