package service

import (
	"context"
	"fmt"
	"log"

	"github.com/ahmednasr/similar-trace/internal/metrics"
	"github.com/ahmednasr/similar-trace/internal/models"
	"github.com/ahmednasr/similar-trace/internal/searchquery"
	"github.com/ahmednasr/similar-trace/internal/timeperiod"
)

const (
	// NoTraceMessage is shown when the event carries no trace ID.
	NoTraceMessage = "This event has no trace context, therefore it was not possible to fetch similar issues by trace ID."

	noResultsTemplate = "No issues with the same trace ID have been found for the %s."

	issueLimit = "5"
	issueSort  = "new"
)

const (
	ParamStatsPeriod = "statsPeriod"
	ParamCursor      = "cursor"
)

// forwardedParams is the allow-list copied from the page query into the
// search request: the global selection plus the list cursor.
var forwardedParams = append(append([]string{}, models.GlobalSelectionParams...), ParamCursor)

// ---- List collaborator contract -------------------------------------------

// ListProps is everything the list renderer needs to fetch and draw issues.
type ListProps struct {
	OrgID        string
	EndpointPath string
	QueryParams  models.QueryParams
	// Query is the free-text search. It is only used when QueryParams is nil.
	Query string
	// RenderEmptyMessage builds the panel shown when the search has no results.
	RenderEmptyMessage func() models.Panel
	CanSelectGroups    bool
	WithChart          bool
}

// IssueListRenderer fetches an issue list and renders it. It owns network
// and data errors and reports them through the returned panel.
type IssueListRenderer interface {
	Render(ctx context.Context, props ListProps) models.Panel
}

// ---- Service interface + implementation ------------------------------------

// Props are the inputs of one panel render.
type Props struct {
	TraceID      string
	Organization models.Organization
	Event        models.Event
	Location     models.LocationQuery
}

// TraceSimilarityPanel lists the other issues that share an event's trace ID.
type TraceSimilarityPanel interface {
	Render(ctx context.Context, props Props) models.Panel
}

type traceSimilarityPanel struct {
	list    IssueListRenderer
	periods timeperiod.Table
	metrics *metrics.Metrics
}

// NewTraceSimilarityPanel wires the list renderer and period table. m may be nil.
func NewTraceSimilarityPanel(list IssueListRenderer, periods timeperiod.Table, m *metrics.Metrics) TraceSimilarityPanel {
	return &traceSimilarityPanel{
		list:    list,
		periods: periods,
		metrics: m,
	}
}

// Render returns the no-trace empty state, or hands the derived search
// request to the list renderer.
func (p *traceSimilarityPanel) Render(ctx context.Context, props Props) models.Panel {
	if props.TraceID == "" {
		log.Printf("[Similar Trace] event %s has no trace context", props.Event.ID)
		p.metrics.PanelRendered("no_trace")
		return models.EmptyState(NoTraceMessage)
	}

	req := BuildIssueSearchRequest(props.TraceID, props.Organization, props.Event, props.Location)
	log.Printf("[Similar Trace] searching %s with query %q params=%v", req.Path, queryString(req.QueryParams["query"]), req.QueryParams.Keys())

	location := props.Location
	panel := p.list.Render(ctx, ListProps{
		OrgID:        props.Organization.Slug,
		EndpointPath: req.Path,
		QueryParams:  req.QueryParams,
		Query:        "",
		RenderEmptyMessage: func() models.Panel {
			return EmptyResults(p.periods, location)
		},
		CanSelectGroups: false,
		WithChart:       false,
	})

	p.metrics.PanelRendered(string(panel.Kind))
	return panel
}

// BuildIssueSearchRequest derives the search endpoint and parameters for
// traceID. It never mutates location and returns a fresh value each call.
func BuildIssueSearchRequest(traceID string, org models.Organization, event models.Event, location models.LocationQuery) models.IssueSearchRequest {
	params := models.QueryParams{
		"limit": models.Single(issueLimit),
		"sort":  models.Single(issueSort),
	}
	for k, v := range location.Pick(forwardedParams...) {
		params[k] = v
	}
	params["query"] = models.Single(TraceQuery(traceID, event.ID))

	return models.IssueSearchRequest{
		Path:        fmt.Sprintf("/organizations/%s/issues/", org.Slug),
		QueryParams: params,
	}
}

// TraceQuery matches issues in traceID other than the one eventID belongs to.
// Other filters active on the page are deliberately not included.
func TraceQuery(traceID, eventID string) string {
	return searchquery.New(
		searchquery.Tag("trace", traceID),
		searchquery.NotTag("id", eventID),
	).String()
}

// EmptyResults is the panel shown when no other issue shares the trace.
func EmptyResults(periods timeperiod.Table, location models.LocationQuery) models.Panel {
	period := periods.Describe(location.Get(ParamStatsPeriod))
	return models.EmptyState(fmt.Sprintf(noResultsTemplate, period))
}

// queryString returns v when it is a single string and "" otherwise.
func queryString(v models.QueryValue) string {
	s, _ := v.AsString()
	return s
}
