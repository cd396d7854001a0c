package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmednasr/similar-trace/internal/service"
)

// RegisterRoutes mounts the API under /api/v1 and exposes metrics from
// gatherer at /metrics.
func RegisterRoutes(app *fiber.App,
	similarTraceSvc service.SimilarTraceService,
	health *HealthHandler,
	gatherer prometheus.Gatherer,
) {

	v1 := app.Group("/api/v1")
	NewSimilarTraceHandler(similarTraceSvc).Register(v1)
	health.Register(app)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
