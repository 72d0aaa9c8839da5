package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/config"
	"github.com/safetrack/ehs-platform/db"
	"github.com/safetrack/ehs-platform/handlers"
	"github.com/safetrack/ehs-platform/internal/cron"
	"github.com/safetrack/ehs-platform/middleware"
	"github.com/safetrack/ehs-platform/minio"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/routes"
	"github.com/safetrack/ehs-platform/services"
	"github.com/safetrack/ehs-platform/websocket"
)

// @title EHS Platform API
// @version 1.0
// @description Multi-tenant environmental health and safety management backend.
// @BasePath /
func main() {
	config.LoadConfig()
	middleware.Init()

	db.Init()
	minio.InitMinio()

	repos := repositories.NewRepositories(db.DB)
	svc := services.New(repos)

	if config.CatalogDir != "" {
		if err := svc.Catalog.SeedFromDir(config.CatalogDir); err != nil {
			log.Printf("Warning: catalog seeding failed: %v", err)
		}
	}

	cron.StartCleanupTasks(repos, svc.Audit)

	hub := websocket.NewHub()
	h := handlers.New(svc, hub)
	auth := middleware.NewAuth(repos)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, h, auth, hub)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
