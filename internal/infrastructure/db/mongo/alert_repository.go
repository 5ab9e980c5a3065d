package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accounthub/account-service/internal/core/domain"
)

// AlertRepository implements ports.AlertRepository. Alerts are inserted by
// AccountRepository.UpdateProfile only.
type AlertRepository struct {
	col *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{col: db.Collection(collectionAlerts)}
}

type alertDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Category  string             `bson:"category"`
	Message   string             `bson:"message"`
	Read      bool               `bson:"read"`
	CreatedAt time.Time          `bson:"created_at"`
}

func alertToDocument(a *domain.Alert) alertDocument {
	return alertDocument{
		UserID:    a.UserID,
		Category:  string(a.Category),
		Message:   a.Message,
		Read:      a.Read,
		CreatedAt: a.CreatedAt.UTC(),
	}
}

func (d alertDocument) toDomain() *domain.Alert {
	return &domain.Alert{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Category:  domain.AlertCategory(d.Category),
		Message:   d.Message,
		Read:      d.Read,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Alert, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *AlertRepository) ListAll(ctx context.Context) ([]*domain.Alert, error) {
	return r.list(ctx, bson.M{})
}

func (r *AlertRepository) list(ctx context.Context, filter bson.M) ([]*domain.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr("list alerts", err)
	}
	defer cur.Close(ctx)

	var docs []alertDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr("decode alerts", err)
	}
	out := make([]*domain.Alert, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// MarkRead sets read=true. Matching an already read alert is still a success.
func (r *AlertRepository) MarkRead(ctx context.Context, alertID string) error {
	oid, err := primitive.ObjectIDFromHex(alertID)
	if err != nil {
		return domain.ErrAlertNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return wrapErr("mark alert read", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

// EnsureIndexes supports the per-user newest-first listing.
func (r *AlertRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return wrapErr("ensure alert indexes", err)
}
