package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourhub/marketplace/internal/core/ports"
)

const (
	auditCollection = "auth_events"

	// auditRetention is how long events are kept before the TTL index drops them.
	auditRetention = 90 * 24 * time.Hour
)

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup indexes used when investigating an account.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.coll.Indexes().CreateMany(ctx, auditIndexes()); err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

func auditIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(int32(auditRetention / time.Second))},
	}
}

// InsertEvent persists an authentication event to the auth_events collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *ports.AuditEvent) error {
	if _, err := r.coll.InsertOne(ctx, eventDocument(event)); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func eventDocument(event *ports.AuditEvent) bson.M {
	doc := bson.M{
		"type": event.Type,
		"at":   event.At.UTC(),
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}
	if event.Email != "" {
		doc["email"] = event.Email
	}
	if event.IP != "" {
		doc["ip"] = event.IP
	}
	if event.UserAgent != "" {
		doc["user_agent"] = event.UserAgent
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}
	return doc
}
