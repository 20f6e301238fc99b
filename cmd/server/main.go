package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sports-events-backend/internal/config"
	"sports-events-backend/internal/handlers"
	"sports-events-backend/internal/repositories"
	"sports-events-backend/internal/services"
	"sports-events-backend/pkg/database"
	"sports-events-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// Initialize repositories
	repo := repositories.NewRepository(db)

	// Initialize services
	authSvc := services.NewAuthService(repo.UserRepo, cfg)
	catalogSvc := services.NewCatalogService(repo.CatalogRepo)
	eventSvc := services.NewEventService(repo.EventRepo, repo.CatalogRepo, cfg)
	registrationSvc := services.NewRegistrationService(
		repo.RegistrationRepo,
		repo.EventRepo,
		repo.UserRepo,
		cfg,
	)
	resultSvc := services.NewResultService(
		repo.ResultRepo,
		repo.RegistrationRepo,
		repo.EventRepo,
		repo.UserRepo,
	)

	// Initialize handlers
	handler := handlers.NewHandler(authSvc, eventSvc, registrationSvc, resultSvc, catalogSvc, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Sports Events API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Create upload directories
	if err := os.MkdirAll(cfg.QRDir, 0755); err != nil {
		log.Fatalf("Failed to create QR directory: %v", err)
	}
	if err := os.MkdirAll(cfg.IconDir, 0755); err != nil {
		log.Fatalf("Failed to create icon directory: %v", err)
	}

	// Static file serving
	app.Static("/qrcodes", cfg.QRDir)
	app.Static("/icons", cfg.IconDir)

	// Register routes
	api := app.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped gracefully")
}
