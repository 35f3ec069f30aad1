package main

import (
	"os"
	"strings"

	"pharmacare_backend/internal/database"
	"pharmacare_backend/internal/middleware"
	"pharmacare_backend/internal/migrations"
	"pharmacare_backend/internal/router"
	"pharmacare_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	utils.InitLogger()
	utils.LoadDotEnv()

	dbPath := utils.Getenv("DB_PATH", "pharmacare.db")
	port := utils.Getenv("PORT", "8080")
	jwtSecret := utils.Getenv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	utils.InitJWT(jwtSecret)

	db, err := database.Connect(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("Failed to open database")
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	utils.LogInfo("Database ready", map[string]interface{}{"path": dbPath})

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	authService := router.Setup(engine, db)
	if err := authService.EnsureDefaultAdmin(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default admin")
	}

	utils.LogInfo("Starting server", map[string]interface{}{"port": port})
	if err := engine.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
