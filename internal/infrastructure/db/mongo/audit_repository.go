package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/volleybot/admin-api/internal/core/ports"
)

const collectionAudit = "audit_events"

// AuditRepository appends administrative mutations to the audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

type auditDoc struct {
	ActorID  int64  `bson:"actor_id"`
	Action   string `bson:"action"`
	EntityID string `bson:"entity_id,omitempty"`
	At       int64  `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, event ports.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, auditDoc{
		ActorID:  event.ActorID,
		Action:   event.Action,
		EntityID: event.EntityID,
		At:       event.At.Unix(),
	})
	return err
}

// EnsureIndexes creates the actor/time index used by audit queries.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}},
	})
	return err
}
