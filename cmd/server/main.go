package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ahmednasr/similar-trace/internal/config"
	"github.com/ahmednasr/similar-trace/internal/database"
	"github.com/ahmednasr/similar-trace/internal/handler"
	"github.com/ahmednasr/similar-trace/internal/issues"
	"github.com/ahmednasr/similar-trace/internal/metrics"
	"github.com/ahmednasr/similar-trace/internal/middleware"
	"github.com/ahmednasr/similar-trace/internal/repository"
	"github.com/ahmednasr/similar-trace/internal/service"
	"github.com/ahmednasr/similar-trace/internal/timeperiod"
)

// main is the single entry‑point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Database: %s (collection %s)", cfg.DBName, cfg.EventsCollection)
	log.Printf("  - Issue search API: %s", cfg.UpstreamURL)
	log.Printf("  - Extra relative periods: %d", len(cfg.RelativePeriods))

	// Connect to MongoDB (events)
	client, err := database.Connect(context.Background(), cfg.MongoURI, cfg.ReadTimeout*2)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	log.Printf("Connected to MongoDB")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Relative period labels
	periods, err := timeperiod.New(cfg.RelativePeriods)
	if err != nil {
		log.Fatalf("Invalid relative periods: %v", err)
	}

	// Initialize repositories and clients
	events := repository.NewEventRepository(client.Database(cfg.DBName), cfg.EventsCollection)
	issueClient := issues.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, issues.Options{
		Timeout: cfg.UpstreamTimeout,
		RPS:     cfg.UpstreamRPS,
		Burst:   cfg.UpstreamBurst,
		Metrics: m,
	})

	// Initialize services
	panel := service.NewTraceSimilarityPanel(service.NewGroupList(issueClient), periods, m)
	similarTraceSvc := service.NewSimilarTraceService(events, panel)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logging())

	// Register routes
	handler.RegisterRoutes(app, similarTraceSvc, handler.NewHealthHandler(client, cfg.UpstreamURL), reg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
