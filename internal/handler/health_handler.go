package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthHandler struct {
	db          Pinger
	upstreamURL string
}

func NewHealthHandler(db Pinger, upstreamURL string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		upstreamURL: upstreamURL,
	}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	db := h.checkDB(c.UserContext())
	status := fiber.Map{
		"status": "ok",
		"dbs": fiber.Map{
			"events": db,
		},
		"upstream": h.upstreamStatus(),
	}

	if db == "error" {
		status["status"] = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}

func (h *HealthHandler) checkDB(ctx context.Context) string {
	if h.db == nil {
		return "not_configured"
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx, nil); err != nil {
		return "error"
	}
	return "connected"
}

func (h *HealthHandler) upstreamStatus() string {
	if h.upstreamURL == "" {
		return "not_configured"
	}
	return "configured"
}
