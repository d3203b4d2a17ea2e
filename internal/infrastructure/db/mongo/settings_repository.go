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

const (
	collectionSettings    = "settings"
	collectionSchedules   = "poll_schedules"
	collectionActivePolls = "active_polls"

	settingTemplateKey = "default_poll_template"
	settingAdminIDsKey = "admin_ids"
)

// SettingsRepository stores the poll template, the schedules, the active-poll
// snapshots and the admin roster. The template and the roster live as
// singleton documents in the settings collection, mirroring the bot's
// key-value settings table.
type SettingsRepository struct {
	settings    *mongo.Collection
	schedules   *mongo.Collection
	activePolls *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{
		settings:    db.Collection(collectionSettings),
		schedules:   db.Collection(collectionSchedules),
		activePolls: db.Collection(collectionActivePolls),
	}
}

type templateDoc struct {
	Key      string          `bson:"_id"`
	Template domain.Template `bson:"value"`
}

type adminIDsDoc struct {
	Key      string  `bson:"_id"`
	AdminIDs []int64 `bson:"value"`
}

// Template returns the stored template, or nil when none has been saved yet.
func (r *SettingsRepository) Template(ctx context.Context) (*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc templateDoc
	err := r.settings.FindOne(ctx, bson.M{"_id": settingTemplateKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc.Template, nil
}

func (r *SettingsRepository) SaveTemplate(ctx context.Context, t domain.Template) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.settings.ReplaceOne(
		ctx,
		bson.M{"_id": settingTemplateKey},
		templateDoc{Key: settingTemplateKey, Template: t},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *SettingsRepository) Schedules(ctx context.Context) ([]domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.schedules.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Schedule{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SettingsRepository) InsertSchedule(ctx context.Context, s domain.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.schedules.InsertOne(ctx, s)
	return err
}

func (r *SettingsRepository) ReplaceSchedule(ctx context.Context, s domain.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.schedules.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

func (r *SettingsRepository) DeleteSchedule(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.schedules.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

func (r *SettingsRepository) FindSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Schedule
	if err := r.schedules.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) ActivePolls(ctx context.Context) ([]domain.ActivePoll, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.activePolls.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.ActivePoll{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SettingsRepository) AdminIDs(ctx context.Context) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminIDsDoc
	err := r.settings.FindOne(ctx, bson.M{"_id": settingAdminIDsKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []int64{}, nil
		}
		return nil, err
	}
	return doc.AdminIDs, nil
}

func (r *SettingsRepository) SetAdminIDs(ctx context.Context, ids []int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.settings.ReplaceOne(
		ctx,
		bson.M{"_id": settingAdminIDsKey},
		adminIDsDoc{Key: settingAdminIDsKey, AdminIDs: ids},
		options.Replace().SetUpsert(true),
	)
	return err
}

// EnsureIndexes creates the indexes the admin queries rely on.
func (r *SettingsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.schedules.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chat_id", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = r.activePolls.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chat_id", Value: 1}},
	})
	return err
}
