package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

const auditNS = "backoffice.audit_logs"

func TestAuditRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Insert(context.Background(), &domain.AuditEvent{
			ID: "evt-1", Type: domain.AuditLogin, Username: "alice", OccurredAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	})

	mt.Run("failure", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(storeFailure())

		err := repo.Insert(context.Background(), &domain.AuditEvent{ID: "evt-2", Type: domain.AuditLogin})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestAuditRepository_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filtered", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		at := primitive.NewDateTimeFromTime(time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC))
		count := mtest.CreateCursorResponse(0, auditNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}})
		page := mtest.CreateCursorResponse(0, auditNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "evt-1"},
			{Key: "type", Value: string(domain.AuditLoginFailed)},
			{Key: "username", Value: "alice"},
			{Key: "details", Value: bson.D{{Key: "reason", Value: "invalid_credentials"}}},
			{Key: "occurred_at", Value: at},
		})
		mt.AddMockResponses(count, page)

		events, total, err := repo.List(context.Background(), domain.AuditFilter{Username: "alice"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if total != 1 || len(events) != 1 {
			t.Fatalf("total=%d len=%d", total, len(events))
		}
		if events[0].Type != domain.AuditLoginFailed || events[0].Details["reason"] != "invalid_credentials" {
			t.Fatalf("unexpected event: %+v", events[0])
		}
	})
}
