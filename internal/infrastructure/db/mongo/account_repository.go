package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accounthub/account-service/internal/core/domain"
)

const (
	collectionUsers  = "users"
	collectionAlerts = "alerts"
)

// AccountRepository implements ports.AccountRepository on MongoDB.
type AccountRepository struct {
	client *mongo.Client
	users  *mongo.Collection
	alerts *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		client: db.Client(),
		users:  db.Collection(collectionUsers),
		alerts: db.Collection(collectionAlerts),
	}
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func userToDocument(u *domain.User) userDocument {
	return userDocument{
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Roles:        u.Roles,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		Roles:        d.Roles,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// Create inserts a user. Username and email collisions yield domain.ErrUserExists.
func (r *AccountRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userToDocument(user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, wrapErr("insert user", err)
	}
	return doc.toDomain(), nil
}

// FindByLogin matches login against username, or against email case-insensitively.
func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": strings.ToLower(login)},
	}}
	return r.findOne(ctx, filter)
}

// FindByID looks a user up by its hex object id. Malformed ids are reported as not found.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrapErr("find user", err)
	}
	return doc.toDomain(), nil
}

// List returns every user ordered by username.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr("decode users", err)
	}
	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpdateProfile rewrites the mutable profile fields and, when alert is set,
// inserts it within the same transaction. Requires a replica set deployment.
func (r *AccountRepository) UpdateProfile(ctx context.Context, user *domain.User, alert *domain.Alert) (*domain.Alert, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return nil, wrapErr("start session", err)
	}
	defer session.EndSession(ctx)

	var stored *domain.Alert
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		stored = nil
		update := bson.M{"$set": bson.M{
			"username":   user.Username,
			"email":      user.Email,
			"phone":      user.Phone,
			"updated_at": user.UpdatedAt.UTC(),
		}}
		res, err := r.users.UpdateOne(sc, bson.M{"_id": oid}, update)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrUserNotFound
		}
		if alert == nil {
			return nil, nil
		}

		doc := alertToDocument(alert)
		doc.ID = primitive.NewObjectID()
		if _, err := r.alerts.InsertOne(sc, doc); err != nil {
			return nil, err
		}
		stored = doc.toDomain()
		return nil, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, domain.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrUserExists
		}
		return nil, wrapErr("update profile", err)
	}
	return stored, nil
}

// EnsureIndexes creates the unique login indexes on the users collection.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.users.Indexes().CreateMany(ctx, indexes)
	return wrapErr("ensure user indexes", err)
}
