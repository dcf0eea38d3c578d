package registry

import (
	"sync"

	"addy/internal/core/domain"
)

// AuditLog is a bounded append-only ring of audit entries. Once capacity is
// reached every append evicts the oldest entry.
type AuditLog struct {
	mu    sync.Mutex
	buf   []domain.AuditEntry
	start int
	size  int
	total uint64
	hook  func(domain.AuditEntry)
}

// NewAuditLog creates a log holding at most capacity entries. hook, when not
// nil, observes every appended entry in append order; it runs under the log's
// lock and must not block.
func NewAuditLog(capacity int, hook func(domain.AuditEntry)) *AuditLog {
	if capacity <= 0 {
		capacity = AuditLogEntries
	}
	return &AuditLog{buf: make([]domain.AuditEntry, capacity), hook: hook}
}

// Append records e.
func (l *AuditLog) Append(e domain.AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size < len(l.buf) {
		l.buf[(l.start+l.size)%len(l.buf)] = e
		l.size++
	} else {
		l.buf[l.start] = e
		l.start = (l.start + 1) % len(l.buf)
	}
	l.total++
	if l.hook != nil {
		l.hook(e)
	}
}

// Entries returns the retained entries, oldest first.
func (l *AuditLog) Entries() []domain.AuditEntry {
	return l.Recent(0)
}

// Recent returns up to n of the newest entries, oldest first. n <= 0 returns
// every retained entry.
func (l *AuditLog) Recent(n int) []domain.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > l.size {
		n = l.size
	}
	out := make([]domain.AuditEntry, n)
	skip := l.size - n
	for i := range out {
		out[i] = l.buf[(l.start+skip+i)%len(l.buf)]
	}
	return out
}

// Len returns the number of retained entries.
func (l *AuditLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Total returns the number of entries ever appended, evicted ones included.
func (l *AuditLog) Total() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Capacity returns the ring size.
func (l *AuditLog) Capacity() int { return len(l.buf) }
