package models

import (
	"errors"
	"time"
)

// Organization is the tenant that owns projects, events and issues.
type Organization struct {
	Slug string `json:"slug"`
}

// TraceContext is the distributed-tracing context captured with an event.
type TraceContext struct {
	TraceID      string `bson:"trace_id"                 json:"trace_id"`
	SpanID       string `bson:"span_id,omitempty"        json:"span_id,omitempty"`
	ParentSpanID string `bson:"parent_span_id,omitempty" json:"parent_span_id,omitempty"`
	Op           string `bson:"op,omitempty"             json:"op,omitempty"`
}

// EventContexts holds the structured contexts attached to an event. Only the
// trace context matters here.
type EventContexts struct {
	Trace *TraceContext `bson:"trace,omitempty" json:"trace,omitempty"`
}

// Event is a single error/event occurrence, stored one document per event.
type Event struct {
	ID          string        `bson:"_id"          json:"id"`
	OrgSlug     string        `bson:"org_slug"     json:"org_slug"`
	ProjectSlug string        `bson:"project_slug" json:"project_slug"`
	GroupID     string        `bson:"group_id"     json:"group_id"`
	Title       string        `bson:"title"        json:"title"`
	Contexts    EventContexts `bson:"contexts"     json:"contexts"`
	DateCreated time.Time     `bson:"date_created" json:"date_created"`
}

// TraceID returns the event's trace identifier, or "" when it has no trace
// context.
func (e Event) TraceID() string {
	if e.Contexts.Trace == nil {
		return ""
	}
	return e.Contexts.Trace.TraceID
}

// ErrEventNotFound is returned when an event lookup matches nothing.
var ErrEventNotFound = errors.New("event not found")
