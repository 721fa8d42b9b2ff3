package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/chesuper/engine/config"
	httpDelivery "github.com/chesuper/engine/internal/delivery/http"
	"github.com/chesuper/engine/internal/infrastructure/cache"
	"github.com/chesuper/engine/internal/infrastructure/cheapi"
	"github.com/chesuper/engine/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Che Súper! Engine v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	client := cheapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.RateLimit)
	log.Printf("Che Súper API: %s (timeout: %s, rate limit: %d/min)",
		cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.RateLimit)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		log.Printf("API client debug mode enabled")
	}

	// Initialize usecase layer
	session := usecase.NewSession(client, memoryCache, usecase.SessionConfig{
		SearchDebounce: cfg.Search.Debounce,
		RequestTimeout: cfg.Backend.Timeout,
		CacheTTL:       cfg.Cache.TTL,
	})

	log.Printf("Search: debounce=%s, limit=%d, min_supermercados=%d",
		cfg.Search.Debounce,
		cfg.Search.DefaultLimit,
		cfg.Search.MinSupermercados)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(session, cfg.Search)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Load .env before anything reads the environment
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
