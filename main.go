package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/citadel/authagent/agent"
	"github.com/citadel/authagent/api"
	"github.com/citadel/authagent/azureai"
	"github.com/citadel/authagent/config"
	"github.com/citadel/authagent/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Resolve the endpoint configuration eagerly so an incomplete
	// environment aborts startup with every missing variable named.
	endpointCfg, err := azureai.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	log.Printf("Starting authagent service...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Deployment: %s", endpointCfg.Deployment)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize session manager
	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = agent.DefaultSystemPrompt
	}
	sessions := agent.NewManager(&endpointCfg, cfg.LLMTimeout, systemPrompt)

	// Initialize handler
	h := api.NewHandler(db, sessions, cfg)

	// Create Echo server
	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(server)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down authagent service...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Authagent service stopped")
}
