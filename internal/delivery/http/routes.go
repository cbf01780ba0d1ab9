package http

import (
	"github.com/gin-gonic/gin"

	"github.com/pawtrack/backend/config"
	"github.com/pawtrack/backend/pkg/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *logger.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Calorie goal endpoints
		nutrition := v1.Group("/nutrition")
		{
			goals := nutrition.Group("/goals")
			{
				goals.POST("/calorie-goals", handler.SetCalorieGoal)
				goals.POST("/calorie-goals/reload", handler.ReloadCalorieGoals)
				goals.GET("/calorie-goals/:petId", handler.GetCalorieGoal)
				goals.DELETE("/calorie-goals/:petId", handler.DeleteCalorieGoal)
				goals.GET("/calorie-goals/:petId/progress", handler.GetGoalProgress)
				goals.POST("/suggestion", handler.SuggestCalorieGoal)
			}
		}

		// Weight tracking endpoints
		weight := v1.Group("/weight")
		{
			weight.POST("/records", handler.RecordWeight)
			weight.POST("/goals", handler.CreateWeightGoal)
			weight.GET("/:petId/history", handler.WeightHistory)
			weight.GET("/:petId/trend", handler.WeightTrend)
			weight.GET("/:petId/recommendations", handler.WeightRecommendations)
			weight.GET("/:petId/goal", handler.ActiveWeightGoal)
			weight.POST("/:petId/reload", handler.ReloadWeightData)
		}

		// Sync scheduler endpoints
		syncRoutes := v1.Group("/sync")
		{
			syncRoutes.POST("/pets/:petId", handler.StartSync)
			syncRoutes.DELETE("/pets/:petId", handler.StopSync)
			syncRoutes.GET("/status", handler.SyncStatus)
			syncRoutes.POST("/fast-polling", handler.EnableFastPolling)
			syncRoutes.POST("/lifecycle", handler.AppLifecycle)
			syncRoutes.POST("/now", handler.SyncNow)
		}
	}

	return router
}
