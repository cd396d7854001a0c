package service

import (
	"context"
	"fmt"

	"github.com/ahmednasr/similar-trace/internal/models"
)

// ---- Repository contract ---------------------------------------------------

// EventRepository looks up stored events.
type EventRepository interface {
	// FindByID returns models.ErrEventNotFound (possibly wrapped) when the
	// event does not exist in the organization.
	FindByID(ctx context.Context, orgSlug, eventID string) (models.Event, error)
}

// ---- Service interface + implementation ------------------------------------

// SimilarTraceService resolves an event's trace context and renders the
// similar-by-trace panel for it.
type SimilarTraceService interface {
	SimilarIssues(ctx context.Context, orgSlug, eventID string, location models.LocationQuery) (models.Panel, error)
	// SearchRequest returns the derived issue search, or nil when the event
	// has no trace context.
	SearchRequest(ctx context.Context, orgSlug, eventID string, location models.LocationQuery) (*models.IssueSearchRequest, error)
}

type similarTraceService struct {
	events EventRepository
	panel  TraceSimilarityPanel
}

// NewSimilarTraceService wires the event repository and panel.
func NewSimilarTraceService(events EventRepository, panel TraceSimilarityPanel) SimilarTraceService {
	return &similarTraceService{events: events, panel: panel}
}

func (s *similarTraceService) SimilarIssues(ctx context.Context, orgSlug, eventID string, location models.LocationQuery) (models.Panel, error) {
	ev, err := s.events.FindByID(ctx, orgSlug, eventID)
	if err != nil {
		return models.Panel{}, fmt.Errorf("load event: %w", err)
	}

	return s.panel.Render(ctx, Props{
		TraceID:      ev.TraceID(),
		Organization: models.Organization{Slug: orgSlug},
		Event:        ev,
		Location:     location,
	}), nil
}

func (s *similarTraceService) SearchRequest(ctx context.Context, orgSlug, eventID string, location models.LocationQuery) (*models.IssueSearchRequest, error) {
	ev, err := s.events.FindByID(ctx, orgSlug, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if ev.TraceID() == "" {
		return nil, nil
	}

	req := BuildIssueSearchRequest(ev.TraceID(), models.Organization{Slug: orgSlug}, ev, location)
	return &req, nil
}
