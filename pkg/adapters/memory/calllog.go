package memory

import (
	"context"
	"sync"

	"github.com/voxflow/voxflow/pkg/domain"
)

// CallLog implements ports.CallLogStore in memory, keeping at most
// Capacity entries (newest first). Safe for concurrent use.
type CallLog struct {
	mu       sync.Mutex
	entries  []domain.CallLog
	capacity int
}

// DefaultCallLogCapacity bounds the in-memory log so a busy number cannot
// grow it without limit.
const DefaultCallLogCapacity = 1000

// NewCallLog creates an in-memory call log. capacity <= 0 uses the default.
func NewCallLog(capacity int) *CallLog {
	if capacity <= 0 {
		capacity = DefaultCallLogCapacity
	}
	return &CallLog{capacity: capacity}
}

// Append records one call-progress event.
func (l *CallLog) Append(ctx context.Context, entry domain.CallLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]domain.CallLog{entry}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (l *CallLog) Recent(ctx context.Context, n int) ([]domain.CallLog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]domain.CallLog, n)
	copy(out, l.entries[:n])
	return out, nil
}
