package service

import (
	"context"
	"errors"
	"log"
	"net/url"

	"github.com/ahmednasr/similar-trace/internal/issues"
	"github.com/ahmednasr/similar-trace/internal/models"
	"github.com/ahmednasr/similar-trace/internal/searchquery"
)

const (
	loadErrorMessage      = "There was an error loading data."
	defaultNoIssueMessage = "Sorry, no issues match your filters."
)

// IssueSearcher runs a search against the issues API.
type IssueSearcher interface {
	ListIssues(ctx context.Context, path string, params url.Values) (issues.Page, error)
}

// GroupList is the IssueListRenderer backed by the issues API. It performs a
// single GET and passes the upstream cursors through; it does no paging of
// its own.
type GroupList struct {
	searcher IssueSearcher
}

// NewGroupList returns a GroupList that fetches through searcher.
func NewGroupList(searcher IssueSearcher) *GroupList {
	return &GroupList{searcher: searcher}
}

// Render fetches one page. Without QueryParams it searches props.Query,
// normalised through the search query parser.
func (g *GroupList) Render(ctx context.Context, props ListProps) models.Panel {
	params := props.QueryParams
	if params == nil {
		params = models.QueryParams{
			"limit": models.Single("50"),
			"sort":  models.Single("new"),
			"query": models.Single(searchquery.Parse(props.Query).String()),
		}
	}

	page, err := g.searcher.ListIssues(ctx, props.EndpointPath, params.Encode())
	if err != nil {
		log.Printf("[Group List] fetching %s failed: %v", props.EndpointPath, err)
		return models.ErrorState(errorMessage(err))
	}

	if len(page.Issues) == 0 {
		if props.RenderEmptyMessage != nil {
			return props.RenderEmptyMessage()
		}
		return models.EmptyState(defaultNoIssueMessage)
	}

	return models.Panel{
		Kind: models.PanelIssueList,
		List: &models.IssueList{
			OrgID:           props.OrgID,
			EndpointPath:    props.EndpointPath,
			QueryParams:     params,
			Issues:          page.Issues,
			NextCursor:      page.NextCursor,
			PreviousCursor:  page.PreviousCursor,
			CanSelectGroups: props.CanSelectGroups,
			WithChart:       props.WithChart,
		},
	}
}

func errorMessage(err error) string {
	var se *issues.StatusError
	if errors.As(err, &se) && se.Code == 403 {
		return "You do not have permission to view these issues."
	}
	return loadErrorMessage
}
