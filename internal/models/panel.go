package models

// PanelKind says which view a Panel renders.
type PanelKind string

const (
	PanelEmpty     PanelKind = "empty"
	PanelIssueList PanelKind = "issue_list"
	PanelError     PanelKind = "error"
)

// Panel is the rendered output of the similar-by-trace view.
type Panel struct {
	Kind    PanelKind  `json:"kind"`
	Message string     `json:"message,omitempty"`
	List    *IssueList `json:"list,omitempty"`
}

// IssueList is the populated list view produced by the list renderer.
type IssueList struct {
	OrgID           string      `json:"orgId"`
	EndpointPath    string      `json:"endpointPath"`
	QueryParams     QueryParams `json:"queryParams"`
	Issues          []Issue     `json:"issues"`
	NextCursor      string      `json:"nextCursor,omitempty"`
	PreviousCursor  string      `json:"previousCursor,omitempty"`
	CanSelectGroups bool        `json:"canSelectGroups"`
	WithChart       bool        `json:"withChart"`
}

// EmptyState returns a panel that only shows message.
func EmptyState(message string) Panel {
	return Panel{Kind: PanelEmpty, Message: message}
}

// ErrorState returns a panel reporting a failed fetch.
func ErrorState(message string) Panel {
	return Panel{Kind: PanelError, Message: message}
}
