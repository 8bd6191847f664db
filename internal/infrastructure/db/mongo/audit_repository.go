package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

const collectionAudit = "audit_logs"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

type auditDoc struct {
	ID         string            `bson:"_id"`
	Type       string            `bson:"type"`
	Username   string            `bson:"username"`
	Actor      string            `bson:"actor,omitempty"`
	RemoteAddr string            `bson:"remote_addr,omitempty"`
	Details    map[string]string `bson:"details,omitempty"`
	OccurredAt time.Time         `bson:"occurred_at"`
}

// Insert appends event to the audit_logs collection.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		ID:         event.ID,
		Type:       string(event.Type),
		Username:   event.Username,
		Actor:      event.Actor,
		RemoteAddr: event.RemoteAddr,
		Details:    event.Details,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert audit event: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// List returns audit events newest first.
func (r *AuditRepository) List(ctx context.Context, f domain.AuditFilter) ([]*domain.AuditEvent, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Username != "" {
		filter["username"] = f.Username
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count audit events: %w", domain.ErrStoreUnavailable, err)
	}

	page := f.Page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list audit events: %w", domain.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	var docs []auditDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("%w: list audit events: %w", domain.ErrStoreUnavailable, err)
	}

	events := make([]*domain.AuditEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, &domain.AuditEvent{
			ID:         d.ID,
			Type:       domain.AuditType(d.Type),
			Username:   d.Username,
			Actor:      d.Actor,
			RemoteAddr: d.RemoteAddr,
			Details:    d.Details,
			OccurredAt: d.OccurredAt.UTC(),
		})
	}
	return events, total, nil
}

// EnsureIndexes creates the lookup indexes on audit_logs.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
