package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealtrack-backend/config"
	"mealtrack-backend/internal/api"
	"mealtrack-backend/internal/db"
	"mealtrack-backend/internal/foodlog"
	"mealtrack-backend/internal/mealtime"
	"mealtrack-backend/internal/registry"
	"mealtrack-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "mealtrack-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.SigningKey == "" {
		logger.Fatalf("auth.signing_key must be configured")
	}

	policy, err := mealtime.NewPolicy(cfg.Meals)
	if err != nil {
		logger.Fatalf("invalid meal timing configuration: %v", err)
	}
	specials := registry.New(cfg.SpecialRegistrations)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	foodLogSvc := foodlog.NewService(appStore, specials)
	logger.Println("data store initialized")

	router := api.NewRouter(cfg, appStore, foodLogSvc, policy, specials)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
