package ports

import (
	"context"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

// AuditRepository persists and lists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEvent, int64, error)
}

// AuditSink accepts events for asynchronous recording. Record must not block
// the caller.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
