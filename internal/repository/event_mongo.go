package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmednasr/similar-trace/internal/models"
)

// EventMongo provides read access to stored events.
type EventMongo struct {
	col *mongo.Collection
}

// NewEventRepository wires the events collection.
//
// Expected schema:
//
//	events
//	  { _id: "<event id>", org_slug, project_slug, group_id, title, date_created,
//	    contexts: { trace: { trace_id, span_id, parent_span_id, op } } }
func NewEventRepository(db *mongo.Database, collection string) *EventMongo {
	return &EventMongo{col: db.Collection(collection)}
}

// FindByID fetches an event of the given organization. It returns
// models.ErrEventNotFound when no such event exists in that organization.
func (r *EventMongo) FindByID(ctx context.Context, orgSlug, eventID string) (models.Event, error) {
	var ev models.Event
	err := r.col.FindOne(ctx, bson.M{"_id": eventID, "org_slug": orgSlug}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.Printf("[Event Repository] No event %s in organization %s", eventID, orgSlug)
		return models.Event{}, fmt.Errorf("%w: %s/%s", models.ErrEventNotFound, orgSlug, eventID)
	}
	if err != nil {
		log.Printf("[Event Repository] Error finding event %s: %v", eventID, err)
		return models.Event{}, fmt.Errorf("find event %s: %w", eventID, err)
	}
	return ev, nil
}
