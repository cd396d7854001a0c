package models

import "time"

// Issue is one row of the issue search API: an aggregated group of events.
// Only the fields the panel shows are decoded.
type Issue struct {
	ID        string    `json:"id"`
	ShortID   string    `json:"shortId"`
	Title     string    `json:"title"`
	Culprit   string    `json:"culprit"`
	Permalink string    `json:"permalink"`
	Level     string    `json:"level"`
	Status    string    `json:"status"`
	Count     string    `json:"count"`
	UserCount int       `json:"userCount"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
	Project   struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	} `json:"project"`
}

// IssueSearchRequest describes a call to the issue search endpoint.
type IssueSearchRequest struct {
	Path        string      `json:"path"`
	QueryParams QueryParams `json:"queryParams"`
}
