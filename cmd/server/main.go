package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"turf_analytics_backend/internal/database"
	"turf_analytics_backend/internal/router"
	"turf_analytics_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Initialize Logger
	utils.InitLogger() // Initialize zerolog

	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file found, using environment variables only")
	}

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "turf_analytics_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "turf_analytics_password")
	dbName := utils.Getenv("DB_NAME", "turf_analytics_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	// Initialize Database
	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	// Initialize Redis (optional booking-collection cache)
	redisDB, _ := strconv.Atoi(utils.Getenv("REDIS_DB", "0"))
	redisClient, err := database.InitRedis(utils.Getenv("REDIS_ADDR", ""), utils.Getenv("REDIS_PASSWORD", ""), redisDB)
	if err != nil {
		utils.LogWarn("Redis unavailable, booking-collection caching disabled", map[string]interface{}{"error": err.Error()})
		redisClient = nil
	}

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, database.GetDB(), redisClient)

	// Server port configuration
	port := utils.Getenv("PORT", "8080") // Default to 8080 if not set
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
