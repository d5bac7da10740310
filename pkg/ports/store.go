package ports

import (
	"context"

	"github.com/voxflow/voxflow/pkg/domain"
)

// FlowResolver is the read boundary against the flow store: given a dialed
// number it returns the matching flow. Matching is on canonical number
// equality; zero matches yield domain.ErrFlowNotFound and multiple matches
// yield domain.ErrAmbiguousNumber. The interpreter only ever reads flows.
type FlowResolver interface {
	Resolve(ctx context.Context, dialedNumber string) (*domain.Flow, error)
}

// FlowStore is a resolver that also owns the flow lifecycle. The visual
// editor (out of scope here) writes through this surface.
type FlowStore interface {
	FlowResolver

	// Put stores or replaces the flow for its phone number.
	Put(ctx context.Context, flow *domain.Flow) error

	// Delete removes the flow stored for the given number.
	Delete(ctx context.Context, number string) error

	// List returns the canonical numbers that have a flow.
	List(ctx context.Context) ([]string, error)
}
