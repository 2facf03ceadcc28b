package ports

import (
	"context"

	"github.com/teamhub/identity-service/internal/core/domain"
)

// AuditRepository persists auth audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts audit events for asynchronous persistence. Enqueue is
// fire-and-forget: it must not block the request path and failures are the
// sink's problem, not the caller's.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}
