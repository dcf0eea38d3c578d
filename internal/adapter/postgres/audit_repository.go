package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"addy/internal/core/domain"
)

// DefaultAuditTable is the table created by the bundled migrations.
const DefaultAuditTable = "audit_entries"

var errEmptyTable = errors.New("postgres: empty audit table name")

// BatchSender is the part of pgxpool.Pool the repository needs.
type BatchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// AuditRepository implements port.AuditSink on top of a pgx pool. Each call
// sends one batch, so a flush costs a single round trip.
type AuditRepository struct {
	db     BatchSender
	insert string
}

// NewAuditRepository returns a repository writing into table.
func NewAuditRepository(db BatchSender, table string) (*AuditRepository, error) {
	if table == "" {
		return nil, errEmptyTable
	}
	return &AuditRepository{
		db:     db,
		insert: insertAuditSQL(table),
	}, nil
}

func insertAuditSQL(table string) string {
	return fmt.Sprintf(
		`INSERT INTO %s (instance_id, occurred_at, action, subject_id, detail) VALUES ($1, $2, $3, $4, $5)`,
		pq.QuoteIdentifier(table),
	)
}

// AppendAudit inserts entries in order. Either every row of the batch is
// written or an error is returned.
func (r *AuditRepository) AppendAudit(ctx context.Context, instanceID uuid.UUID, entries []domain.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(r.insert, instanceID, e.Timestamp.UTC(), string(e.Action), int64(e.SubjectID), e.Detail)
	}
	// a multi-statement batch runs in an implicit transaction
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert %d audit entries: %w", len(entries), err)
	}
	return nil
}
