package ports

import (
	"context"

	"github.com/voxflow/voxflow/pkg/domain"
)

// CallLogStore records call-progress events. Appends are best-effort from
// the webhook's point of view: a failed write is logged, never surfaced to
// the live call.
type CallLogStore interface {
	Append(ctx context.Context, entry domain.CallLog) error

	// Recent returns up to n entries, newest first.
	Recent(ctx context.Context, n int) ([]domain.CallLog, error)
}
