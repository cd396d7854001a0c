// Package view renders panels as HTML fragments for server-side embedding.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/ahmednasr/similar-trace/internal/models"
)

var funcMap = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format("Jan 2 15:04")
	},
	"fmtCount": func(s string) string {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return s
		}
		switch {
		case n >= 1_000_000:
			return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
		case n >= 1000:
			return fmt.Sprintf("%.1fk", float64(n)/1000)
		}
		return s
	},
	"levelColor": func(level string) string {
		switch level {
		case "fatal":
			return "#f87171"
		case "error":
			return "#f59e0b"
		case "warning":
			return "#eab308"
		case "info":
			return "#3b82f6"
		default:
			return "#9ca3af"
		}
	},
	"cursorHref": cursorHref,
}

const tmplPanel = `
{{define "panel"}}<div class="similar-trace">
{{- if eq .Kind "issue_list"}}{{template "list" .List}}
{{- else}}<div class="empty-state{{if eq .Kind "error"}} err{{end}}"><p>{{.Message}}</p></div>
{{- end}}
</div>{{end}}

{{define "list"}}<table class="group-list">
<thead><tr><th>Issue</th><th>Events</th><th>Users</th><th>Last seen</th></tr></thead>
<tbody>
{{- range .Issues}}
<tr>
<td><span class="badge" style="background:{{levelColor .Level}}">{{.Level}}</span>
<a href="{{.Permalink}}">{{.Title}}</a>
<div class="dim">{{.ShortID}} · {{.Culprit}}</div></td>
<td>{{fmtCount .Count}}</td>
<td>{{.UserCount}}</td>
<td>{{fmtTime .LastSeen}}</td>
</tr>
{{- end}}
</tbody>
</table>
{{- if or .PreviousCursor .NextCursor}}
<nav class="pagination">
{{- if .PreviousCursor}}<a rel="previous" href="{{cursorHref .QueryParams .PreviousCursor}}">Previous</a>{{end}}
{{- if .NextCursor}}<a rel="next" href="{{cursorHref .QueryParams .NextCursor}}">Next</a>{{end}}
</nav>
{{- end}}{{end}}
`

var panelTemplate = template.Must(template.New("view").Funcs(funcMap).Parse(tmplPanel))

// RenderPanel returns the HTML fragment for p.
func RenderPanel(p models.Panel) ([]byte, error) {
	var buf bytes.Buffer
	if err := panelTemplate.ExecuteTemplate(&buf, "panel", p); err != nil {
		return nil, fmt.Errorf("render panel: %w", err)
	}
	return buf.Bytes(), nil
}

// cursorHref links to the same panel at cursor. A relative "?..." href
// replaces the whole query string, so the global selection from params and
// format=html are written back alongside the new cursor.
func cursorHref(params models.QueryParams, cursor string) string {
	q := models.LocationQuery(params).Pick(models.GlobalSelectionParams...).Encode()
	q.Set("format", "html")
	q.Set("cursor", cursor)
	return "?" + q.Encode()
}
