package handler

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/similar-trace/internal/models"
	"github.com/ahmednasr/similar-trace/internal/searchquery"
	"github.com/ahmednasr/similar-trace/internal/service"
	"github.com/ahmednasr/similar-trace/internal/view"
)

// SimilarTraceHandler wires HTTP → SimilarTraceService.
type SimilarTraceHandler struct {
	svc service.SimilarTraceService
}

// NewSimilarTraceHandler returns a handler instance.
func NewSimilarTraceHandler(svc service.SimilarTraceService) *SimilarTraceHandler {
	return &SimilarTraceHandler{svc: svc}
}

// Register mounts the similar-by-trace routes on the given router group.
func (h *SimilarTraceHandler) Register(r fiber.Router) {
	r.Get("/organizations/:org/events/:event/similar-trace", h.panel)
	r.Get("/organizations/:org/events/:event/similar-trace/request", h.request)
}

// panel handles GET /organizations/:org/events/:event/similar-trace?statsPeriod=14d&...
// It answers with JSON, or an HTML fragment for Accept: text/html or format=html.
func (h *SimilarTraceHandler) panel(c *fiber.Ctx) error {
	org, event := c.Params("org"), c.Params("event")
	if org == "" || event == "" {
		return fiber.NewError(fiber.StatusBadRequest, "organization and event are required")
	}

	panel, err := h.svc.SimilarIssues(c.UserContext(), org, event, locationQuery(c))
	if err != nil {
		return translateError(err)
	}

	status := fiber.StatusOK
	if panel.Kind == models.PanelError {
		status = fiber.StatusBadGateway
	}

	if wantsHTML(c) {
		html, err := view.RenderPanel(panel)
		if err != nil {
			log.Printf("[Similar Trace Handler] %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render panel")
		}
		c.Type("html", "utf-8")
		return c.Status(status).Send(html)
	}
	return c.Status(status).JSON(panel)
}

// request handles GET /organizations/:org/events/:event/similar-trace/request
// and shows the search the panel would run, without running it.
func (h *SimilarTraceHandler) request(c *fiber.Ctx) error {
	org, event := c.Params("org"), c.Params("event")
	if org == "" || event == "" {
		return fiber.NewError(fiber.StatusBadRequest, "organization and event are required")
	}

	req, err := h.svc.SearchRequest(c.UserContext(), org, event, locationQuery(c))
	if err != nil {
		return translateError(err)
	}

	var filters []searchquery.Token
	if req != nil {
		q, _ := req.QueryParams["query"].AsString()
		filters = searchquery.Parse(q).Tokens()
	}

	return c.JSON(fiber.Map{
		"hasTrace": req != nil,
		"request":  req,
		"filters":  filters,
	})
}

// locationQuery keeps repeated keys as sequences, which fiber's c.Query drops.
func locationQuery(c *fiber.Ctx) models.LocationQuery {
	vals, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		log.Printf("[Similar Trace Handler] malformed query string %q: %v", c.Request().URI().QueryString(), err)
	}
	return models.LocationFromValues(vals)
}

func wantsHTML(c *fiber.Ctx) bool {
	if c.Query("format") == "html" {
		return true
	}
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML
}

func translateError(err error) error {
	if errors.Is(err, models.ErrEventNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "event not found")
	}
	log.Printf("[Similar Trace Handler] %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to load event")
}
