package port

import (
	"context"

	"github.com/google/uuid"

	"addy/internal/core/domain"
)

// AuditSink is the outbound port for exporting audit entries outside the
// process. It is a mirror for inspection only; the registry never reads it
// back. Implementations must be safe for concurrent use.
type AuditSink interface {
	// AppendAudit stores entries produced by the registry instance identified
	// by instanceID, preserving their order.
	AppendAudit(ctx context.Context, instanceID uuid.UUID, entries []domain.AuditEntry) error
}
