package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accounthub/account-service/internal/core/domain"
)

const collectionActivity = "account_activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity), now: time.Now}
}

// Insert persists an audit event to the account_activity collection.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, activityDocument(event, r.now()))
	return wrapErr("insert activity", err)
}

func activityDocument(event *domain.ActivityEvent, processedAt time.Time) bson.M {
	doc := bson.M{
		"kind":         string(event.Kind),
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": processedAt.UTC(),
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}
	if event.Subject != "" {
		doc["subject"] = event.Subject
	}
	if event.Detail != "" {
		doc["detail"] = event.Detail
	}
	return doc
}
