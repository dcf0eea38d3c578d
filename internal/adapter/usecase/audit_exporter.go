package usecase

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"addy/internal/core/domain"
	"addy/internal/core/port"
	"addy/internal/metrics"
)

// ExporterConfig sizes the audit export pipeline.
type ExporterConfig struct {
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// AuditExporter mirrors registry audit entries to a port.AuditSink. Enqueue is
// registered as the registry's audit hook and never blocks: when the queue is
// full the entry is dropped and counted. Run drains the queue in batches.
type AuditExporter struct {
	sink       port.AuditSink
	instanceID uuid.UUID
	queue      chan domain.AuditEntry
	batchSize  int
	interval   time.Duration
	logger     *slog.Logger
	metrics    *metrics.Collector
	dropped    atomic.Uint64
}

// NewAuditExporter creates an exporter writing to sink on behalf of
// instanceID. Zero config values fall back to 1024 queued entries, batches of
// 64 and a one second flush interval.
func NewAuditExporter(sink port.AuditSink, instanceID uuid.UUID, cfg ExporterConfig, logger *slog.Logger, m *metrics.Collector) *AuditExporter {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 64
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuditExporter{
		sink:       sink,
		instanceID: instanceID,
		queue:      make(chan domain.AuditEntry, cfg.QueueSize),
		batchSize:  cfg.BatchSize,
		interval:   cfg.FlushInterval,
		logger:     logger,
		metrics:    m,
	}
}

// Enqueue queues e for export without blocking.
func (e *AuditExporter) Enqueue(entry domain.AuditEntry) {
	select {
	case e.queue <- entry:
	default:
		e.dropped.Add(1)
		e.metrics.AuditDropped()
	}
}

// Dropped returns the number of entries lost to a full queue.
func (e *AuditExporter) Dropped() uint64 { return e.dropped.Load() }

// Run exports queued entries until ctx is cancelled, then flushes whatever is
// still queued and returns.
func (e *AuditExporter) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	batch := make([]domain.AuditEntry, 0, e.batchSize)
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case entry := <-e.queue:
					batch = append(batch, entry)
					if len(batch) >= e.batchSize {
						batch = e.flushOnShutdown(ctx, batch)
					}
				default:
					e.flushOnShutdown(ctx, batch)
					return
				}
			}
		case entry := <-e.queue:
			batch = append(batch, entry)
			if len(batch) >= e.batchSize {
				batch = e.flush(ctx, batch)
			}
		case <-ticker.C:
			batch = e.flush(ctx, batch)
		}
	}
}

func (e *AuditExporter) flushOnShutdown(ctx context.Context, batch []domain.AuditEntry) []domain.AuditEntry {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return e.flush(ctx, batch)
}

// flush writes batch and returns it emptied for reuse. Failed batches are
// logged and discarded.
func (e *AuditExporter) flush(ctx context.Context, batch []domain.AuditEntry) []domain.AuditEntry {
	if len(batch) == 0 {
		return batch
	}
	out := make([]domain.AuditEntry, len(batch))
	copy(out, batch)
	if err := e.sink.AppendAudit(ctx, e.instanceID, out); err != nil {
		e.metrics.ExportFailed()
		e.logger.Error("audit export failed",
			slog.Int("entries", len(out)),
			slog.Any("error", err))
	} else {
		e.metrics.AuditExported(len(out))
	}
	return batch[:0]
}
