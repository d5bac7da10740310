// Package file loads call flows from YAML documents on disk, one flow per
// file, and serves them through an in-memory index. It is the store behind
// `voxflow serve --flows <dir>` and the validate/graph commands.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/voxflow/voxflow/pkg/adapters/memory"
	"github.com/voxflow/voxflow/pkg/domain"
)

// Store implements ports.FlowResolver over a directory of *.yaml flow
// files. Edits on disk are picked up with Reload; resolution itself never
// touches the filesystem.
type Store struct {
	dir string

	mu    sync.RWMutex
	index *memory.Store
}

// New creates a file store and loads the directory once.
func New(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every flow file in the directory, replacing the index
// atomically. A malformed file fails the whole reload so a half-applied
// edit can never serve calls.
func (s *Store) Reload() error {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("listing flow directory %s: %w", s.dir, err)
	}

	index := memory.NewStore()
	for _, f := range files {
		flow, err := ReadFlow(f)
		if err != nil {
			return err
		}
		if err := index.Put(context.Background(), flow); err != nil {
			return fmt.Errorf("indexing %s: %w", f, err)
		}
	}

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()
	return nil
}

// Resolve returns the flow for a dialed number by canonical equality.
func (s *Store) Resolve(ctx context.Context, dialedNumber string) (*domain.Flow, error) {
	s.mu.RLock()
	index := s.index
	s.mu.RUnlock()
	return index.Resolve(ctx, dialedNumber)
}

// List returns the canonical numbers that have a flow on disk.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	index := s.index
	s.mu.RUnlock()
	return index.List(ctx)
}

// ReadFlow parses a single YAML flow document.
func ReadFlow(path string) (*domain.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flow file %s: %w", path, err)
	}

	var flow domain.Flow
	if err := yaml.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("parsing flow file %s: %w", path, err)
	}
	if flow.Number == "" {
		return nil, fmt.Errorf("flow file %s has no phone number", path)
	}

	return &flow, nil
}
