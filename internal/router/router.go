package router

import (
	"database/sql"

	"turf_analytics_backend/internal/handlers"
	"turf_analytics_backend/internal/repositories"
	"turf_analytics_backend/internal/services"
	"turf_analytics_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, redisClient *redis.Client) {
	// Initialize Repositories
	bookingRepo := repositories.NewBookingRepository(db, redisClient)

	// Initialize Services
	cacheSize := 0 // 0 selects the default result-cache bound
	if sizeStr := utils.Getenv("STATS_CACHE_SIZE", ""); sizeStr != "" {
		if size, err := utils.StrToInt64(sizeStr); err == nil {
			cacheSize = int(size)
		}
	}
	statsService := services.NewStatsService(bookingRepo, cacheSize)

	// Initialize Handlers
	statsHandler := handlers.NewStatsHandler(statsService)
	bookingHandler := handlers.NewBookingHandler(statsService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupStatsRoutes(apiV1, statsHandler)
		SetupBookingRoutes(apiV1, bookingHandler)
	}
}
