package view

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/similar-trace/internal/models"
)

func TestRenderEmptyPanel(t *testing.T) {
	out, err := RenderPanel(models.EmptyState("No issues with the same trace ID have been found for the last 14 days."))
	require.NoError(t, err)

	body := string(out)
	assert.Contains(t, body, `class="empty-state"`)
	assert.Contains(t, body, "No issues with the same trace ID have been found for the last 14 days.")
	assert.NotContains(t, body, "<table")
}

func TestRenderErrorPanel(t *testing.T) {
	out, err := RenderPanel(models.ErrorState("There was an error loading data."))
	require.NoError(t, err)
	assert.Contains(t, string(out), `class="empty-state err"`)
}

func TestRenderIssueList(t *testing.T) {
	out, err := RenderPanel(models.Panel{
		Kind: models.PanelIssueList,
		List: &models.IssueList{
			Issues: []models.Issue{{
				ShortID:   "ACME-1",
				Title:     "<script>alert(1)</script>",
				Level:     "error",
				Count:     "12500",
				UserCount: 3,
			}},
			NextCursor: "0:5:0",
		},
	})
	require.NoError(t, err)

	body := string(out)
	assert.Contains(t, body, "ACME-1")
	assert.Contains(t, body, "12.5k")
	assert.Contains(t, body, "&lt;script&gt;", "titles are escaped")
	assert.Contains(t, body, `rel="next"`)
	assert.NotContains(t, body, `rel="previous"`)
}

// pageLink returns the decoded query of the pagination link with rel.
func pageLink(t *testing.T, out []byte, rel string) url.Values {
	t.Helper()
	m := regexp.MustCompile(`rel="` + rel + `" href="([^"]*)"`).FindSubmatch(out)
	require.NotNil(t, m, "no %s link in %s", rel, out)
	href := html.UnescapeString(string(m[1]))
	require.True(t, strings.HasPrefix(href, "?"), href)
	q, err := url.ParseQuery(strings.TrimPrefix(href, "?"))
	require.NoError(t, err)
	return q
}

func TestPaginationKeepsGlobalSelection(t *testing.T) {
	out, err := RenderPanel(models.Panel{
		Kind: models.PanelIssueList,
		List: &models.IssueList{
			QueryParams: models.QueryParams{
				"statsPeriod": models.Single("14d"),
				"project":     models.Single("9"),
				"environment": models.Multi("prod", "staging"),
				"cursor":      models.Single("0:0:0"),
				"query":       models.Single("trace:abc !id:e1"),
				"limit":       models.Single("5"),
			},
			Issues:         []models.Issue{{ShortID: "ACME-1"}},
			NextCursor:     "0:5:0",
			PreviousCursor: "0:0:1",
		},
	})
	require.NoError(t, err)

	next := pageLink(t, out, "next")
	assert.Equal(t, "14d", next.Get("statsPeriod"))
	assert.Equal(t, "9", next.Get("project"))
	assert.Equal(t, []string{"prod", "staging"}, next["environment"])
	assert.Equal(t, "html", next.Get("format"))
	assert.Equal(t, []string{"0:5:0"}, next["cursor"], "only the new cursor is sent")
	assert.NotContains(t, next, "query", "the panel derives its own search")
	assert.NotContains(t, next, "limit")

	prev := pageLink(t, out, "previous")
	assert.Equal(t, "0:0:1", prev.Get("cursor"))
	assert.Equal(t, "14d", prev.Get("statsPeriod"))
}

func TestRenderZeroLastSeen(t *testing.T) {
	out, err := RenderPanel(models.Panel{
		Kind: models.PanelIssueList,
		List: &models.IssueList{Issues: []models.Issue{{ShortID: "ACME-1"}}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<td>-</td>")
	assert.NotContains(t, string(out), "pagination")
}
