// Package metrics exposes registry activity to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"addy/internal/core/domain"
)

// Collector records registry operations. A nil *Collector is valid and
// records nothing.
type Collector struct {
	operations    *prometheus.CounterVec
	auditExported prometheus.Counter
	auditDropped  prometheus.Counter
	exportErrors  prometheus.Counter
}

// New creates a collector and registers its metrics with reg. reg defaults to
// prometheus.DefaultRegisterer and namespace to "addy".
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "addy"
	}

	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operations_total",
			Help:      "Registry operations by operation and result code.",
		}, []string{"op", "result"}),
		auditExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit_export",
			Name:      "entries_total",
			Help:      "Audit entries written to the external sink.",
		}),
		auditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit_export",
			Name:      "dropped_total",
			Help:      "Audit entries dropped because the export queue was full.",
		}),
		exportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit_export",
			Name:      "errors_total",
			Help:      "Failed audit export batches.",
		}),
	}

	var err error
	if c.operations, err = register(reg, c.operations); err != nil {
		return nil, err
	}
	if c.auditExported, err = register(reg, c.auditExported); err != nil {
		return nil, err
	}
	if c.auditDropped, err = register(reg, c.auditDropped); err != nil {
		return nil, err
	}
	if c.exportErrors, err = register(reg, c.exportErrors); err != nil {
		return nil, err
	}
	return c, nil
}

// register adds m to reg, reusing an identical collector registered earlier.
func register[T prometheus.Collector](reg prometheus.Registerer, m T) (T, error) {
	err := reg.Register(m)
	if err == nil {
		return m, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return m, err
}

// ObserveOperation counts one call of op. The result label is "ok" on success
// and the error kind code otherwise.
func (c *Collector) ObserveOperation(op string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = string(domain.KindOf(err))
	}
	c.operations.WithLabelValues(op, result).Inc()
}

// AuditExported counts n entries written to the sink.
func (c *Collector) AuditExported(n int) {
	if c == nil {
		return
	}
	c.auditExported.Add(float64(n))
}

// AuditDropped counts one entry that could not be queued for export.
func (c *Collector) AuditDropped() {
	if c == nil {
		return
	}
	c.auditDropped.Inc()
}

// ExportFailed counts one failed export batch.
func (c *Collector) ExportFailed() {
	if c == nil {
		return
	}
	c.exportErrors.Inc()
}
