package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volleybot/admin-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists principals keyed by their Telegram id.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	TelegramID int64  `bson:"_id"`
	FirstName  string `bson:"first_name"`
	LastName   string `bson:"last_name,omitempty"`
	Username   string `bson:"username,omitempty"`
	PhotoURL   string `bson:"photo_url,omitempty"`
	IsAdmin    bool   `bson:"is_admin"`
	LastLogin  int64  `bson:"last_login,omitempty"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": telegramID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Upsert creates the user on first login and refreshes the profile fields on
// every subsequent one. created_at is only written on insert.
func (r *UserRepository) Upsert(ctx context.Context, p *domain.Principal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set": bson.M{
			"first_name": p.FirstName,
			"last_name":  p.LastName,
			"username":   p.Username,
			"photo_url":  p.PhotoURL,
			"is_admin":   p.IsAdmin,
			"last_login": p.LastLogin.Unix(),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": p.TelegramID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "last_login", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Principal
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (d *userDoc) toDomain() *domain.Principal {
	return &domain.Principal{
		TelegramID: d.TelegramID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Username:   d.Username,
		PhotoURL:   d.PhotoURL,
		IsAdmin:    d.IsAdmin,
		LastLogin:  unixToTime(d.LastLogin),
		CreatedAt:  unixToTime(d.CreatedAt),
		UpdatedAt:  unixToTime(d.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
