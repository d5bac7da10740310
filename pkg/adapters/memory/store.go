// Package memory provides in-memory flow and call-log stores.
// They back tests and single-process deployments; nothing here survives a
// restart.
package memory

import (
	"context"
	"sync"

	"github.com/voxflow/voxflow/pkg/domain"
)

// Store implements ports.FlowStore in memory. Safe for concurrent use.
//
// Flows are indexed by the canonical form of their number, but entries
// with distinct raw numbers that normalize to the same canonical form are
// kept side by side so that Resolve can report the ambiguity instead of
// silently picking one.
type Store struct {
	mu    sync.RWMutex
	flows map[string][]*domain.Flow // canonical number -> stored flows
}

// NewStore creates an empty in-memory flow store.
func NewStore() *Store {
	return &Store{flows: make(map[string][]*domain.Flow)}
}

// Resolve returns the flow for a dialed number by canonical equality.
func (s *Store) Resolve(ctx context.Context, dialedNumber string) (*domain.Flow, error) {
	key := domain.NormalizeNumber(dialedNumber)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.flows[key]
	switch len(matches) {
	case 0:
		return nil, domain.ErrFlowNotFound
	case 1:
		return copyFlow(matches[0]), nil
	default:
		return nil, domain.ErrAmbiguousNumber
	}
}

// Put stores or replaces the flow for its phone number. Replacement is by
// exact raw number; a different raw number with the same canonical form
// is stored alongside and will surface as ErrAmbiguousNumber on Resolve.
func (s *Store) Put(ctx context.Context, flow *domain.Flow) error {
	key := domain.NormalizeNumber(flow.Number)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.flows[key]
	for i, existing := range entries {
		if existing.Number == flow.Number {
			entries[i] = copyFlow(flow)
			return nil
		}
	}
	s.flows[key] = append(entries, copyFlow(flow))
	return nil
}

// Delete removes every flow stored under the number's canonical form.
func (s *Store) Delete(ctx context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, domain.NormalizeNumber(number))
	return nil
}

// List returns the canonical numbers that have at least one flow.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	numbers := make([]string, 0, len(s.flows))
	for key := range s.flows {
		numbers = append(numbers, key)
	}
	return numbers, nil
}

// copyFlow isolates callers from the stored value so neither side can
// mutate the other through a shared node slice, config map or edge list.
// Values nested inside a config map (option lists and the like) are
// treated as immutable once stored and stay shared.
func copyFlow(f *domain.Flow) *domain.Flow {
	cp := *f
	cp.Nodes = make([]domain.Node, len(f.Nodes))
	for i, n := range f.Nodes {
		if n.Config != nil {
			config := make(map[string]any, len(n.Config))
			for k, v := range n.Config {
				config[k] = v
			}
			n.Config = config
		}
		n.Next = append([]string(nil), n.Next...)
		cp.Nodes[i] = n
	}
	return &cp
}
