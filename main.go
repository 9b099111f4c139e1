package main

import (
	"log"
	"time"

	"festival-app/config"
	"festival-app/database"
	routes "festival-app/internal/app/http"
	"festival-app/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	if err := logging.Init(); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logging.L.Sync()

	database.InitDB()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, database.DB)

	logging.L.Info("listening", zap.String("port", config.PORT))
	if err := r.Run(":" + config.PORT); err != nil {
		logging.L.Fatal("server stopped", zap.Error(err))
	}
}
