package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/similar-trace/internal/models"
	"github.com/ahmednasr/similar-trace/internal/timeperiod"
)

// recordingRenderer captures the props it was called with and returns
// the empty-results panel, like a list that found nothing.
type recordingRenderer struct {
	calls []ListProps
}

func (r *recordingRenderer) Render(_ context.Context, props ListProps) models.Panel {
	r.calls = append(r.calls, props)
	return props.RenderEmptyMessage()
}

func newPanel(r IssueListRenderer) TraceSimilarityPanel {
	return NewTraceSimilarityPanel(r, timeperiod.Default(), nil)
}

var (
	acme  = models.Organization{Slug: "acme"}
	event = models.Event{ID: "e1"}
)

func TestRenderWithoutTraceID(t *testing.T) {
	r := &recordingRenderer{}

	panel := newPanel(r).Render(context.Background(), Props{
		Organization: acme,
		Event:        event,
		Location:     models.LocationQuery{"statsPeriod": models.Single("14d")},
	})

	assert.Equal(t, models.PanelEmpty, panel.Kind)
	assert.Equal(t, NoTraceMessage, panel.Message)
	assert.Empty(t, r.calls, "list renderer must not be invoked without a trace")
}

func TestBuildIssueSearchRequestDefaults(t *testing.T) {
	req := BuildIssueSearchRequest("abc123", acme, event, models.LocationQuery{})

	assert.Equal(t, "/organizations/acme/issues/", req.Path)
	assert.Equal(t, []string{"limit", "query", "sort"}, req.QueryParams.Keys())
	assert.True(t, req.QueryParams["limit"].Equal(models.Single("5")))
	assert.True(t, req.QueryParams["sort"].Equal(models.Single("new")))

	query, ok := req.QueryParams["query"].AsString()
	require.True(t, ok)
	assert.Equal(t, "trace:abc123 !id:e1", query)
}

func TestBuildIssueSearchRequestCopiesAllowListedParams(t *testing.T) {
	location := models.LocationQuery{
		"project":      models.Single("9"),
		"cursor":       models.Single("0:5:0"),
		"statsPeriod":  models.Single("14d"),
		"environment":  models.Multi("prod", "staging"),
		"unrelatedKey": models.Single("x"),
	}

	req := BuildIssueSearchRequest("abc123", acme, event, location)

	assert.True(t, req.QueryParams["project"].Equal(models.Single("9")))
	assert.True(t, req.QueryParams["cursor"].Equal(models.Single("0:5:0")))
	assert.True(t, req.QueryParams["statsPeriod"].Equal(models.Single("14d")))
	assert.True(t, req.QueryParams["environment"].Equal(models.Multi("prod", "staging")))
	assert.NotContains(t, req.QueryParams, "unrelatedKey")
	assert.NotContains(t, req.QueryParams, "start")
	assert.Len(t, location, 5, "location query must not be mutated")
}

func TestBuildIssueSearchRequestQueryCannotBeOverridden(t *testing.T) {
	location := models.LocationQuery{
		"query": models.Single("is:unresolved"),
		"limit": models.Single("100"),
	}

	req := BuildIssueSearchRequest("abc123", acme, event, location)

	query, _ := req.QueryParams["query"].AsString()
	assert.Equal(t, "trace:abc123 !id:e1", query)
	assert.True(t, req.QueryParams["limit"].Equal(models.Single("5")))
}

func TestBuildIssueSearchRequestIsIdempotent(t *testing.T) {
	location := models.LocationQuery{"project": models.Single("9"), "utc": models.Single("true")}

	a := BuildIssueSearchRequest("abc123", acme, event, location)
	b := BuildIssueSearchRequest("abc123", acme, event, location)

	assert.Equal(t, a.Path, b.Path)
	assert.True(t, a.QueryParams.Equal(b.QueryParams))
}

func TestTraceQueryQuotesUnusualIDs(t *testing.T) {
	assert.Equal(t, `trace:"a b" !id:e1`, TraceQuery("a b", "e1"))
}

func TestRenderPassesListProps(t *testing.T) {
	for _, location := range []models.LocationQuery{
		{},
		{"project": models.Single("9"), "cursor": models.Single("0:5:0")},
	} {
		r := &recordingRenderer{}
		newPanel(r).Render(context.Background(), Props{
			TraceID:      "abc123",
			Organization: acme,
			Event:        event,
			Location:     location,
		})

		require.Len(t, r.calls, 1)
		props := r.calls[0]
		assert.Equal(t, "acme", props.OrgID)
		assert.Equal(t, "/organizations/acme/issues/", props.EndpointPath)
		assert.Equal(t, "", props.Query)
		assert.False(t, props.CanSelectGroups)
		assert.False(t, props.WithChart)
		assert.NotNil(t, props.RenderEmptyMessage)

		want := BuildIssueSearchRequest("abc123", acme, event, location)
		assert.True(t, want.QueryParams.Equal(props.QueryParams))
	}
}

func TestEmptyResultsMessage(t *testing.T) {
	tests := []struct {
		name     string
		location models.LocationQuery
		want     string
	}{
		{"known period", models.LocationQuery{"statsPeriod": models.Single("14d")}, "No issues with the same trace ID have been found for the last 14 days."},
		{"absent period", models.LocationQuery{}, "No issues with the same trace ID have been found for the given timeframe."},
		{"unknown period", models.LocationQuery{"statsPeriod": models.Single("3d")}, "No issues with the same trace ID have been found for the given timeframe."},
		{"repeated period", models.LocationQuery{"statsPeriod": models.Multi("14d", "7d")}, "No issues with the same trace ID have been found for the given timeframe."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recordingRenderer{}
			panel := newPanel(r).Render(context.Background(), Props{
				TraceID:      "abc123",
				Organization: acme,
				Event:        event,
				Location:     tt.location,
			})

			assert.Equal(t, models.PanelEmpty, panel.Kind)
			assert.Equal(t, tt.want, panel.Message)
		})
	}
}

func TestQueryStringOnlyReadsSingleValues(t *testing.T) {
	assert.Equal(t, "trace:abc", queryString(models.Single("trace:abc")))
	assert.Equal(t, "", queryString(models.Multi("a", "b")))
	assert.Equal(t, "", queryString(models.Absent()))
}
