// Package redis provides Redis-backed flow and call-log stores for
// multi-instance deployments, where the provider's callbacks have no
// affinity to a particular server.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/voxflow/voxflow/pkg/domain"
)

// Store implements ports.FlowStore on Redis. Flows are stored as JSON
// under their canonical number, so resolution is a single GET and
// ambiguity cannot arise from formatting differences.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix for flow keys.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets an expiration on stored flows. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "voxflow:flow:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(number string) string {
	return s.prefix + domain.NormalizeNumber(number)
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Resolve returns the flow for a dialed number.
func (s *Store) Resolve(ctx context.Context, dialedNumber string) (*domain.Flow, error) {
	val, err := s.client.Get(ctx, s.key(dialedNumber)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrFlowNotFound
		}
		return nil, fmt.Errorf("flow lookup in redis: %w", err)
	}

	var flow domain.Flow
	if err := json.Unmarshal([]byte(val), &flow); err != nil {
		return nil, fmt.Errorf("unmarshalling flow for %s: %w", dialedNumber, err)
	}
	return &flow, nil
}

// Put stores or replaces the flow for its phone number.
func (s *Store) Put(ctx context.Context, flow *domain.Flow) error {
	data, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("marshalling flow for %s: %w", flow.Number, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(flow.Number), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), domain.NormalizeNumber(flow.Number))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving flow to redis: %w", err)
	}
	return nil
}

// Delete removes the flow stored for the given number.
func (s *Store) Delete(ctx context.Context, number string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(number))
	pipe.SRem(ctx, s.indexKey(), domain.NormalizeNumber(number))
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the canonical numbers that have a flow.
func (s *Store) List(ctx context.Context) ([]string, error) {
	numbers, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing flows from redis: %w", err)
	}
	return numbers, nil
}

// Client exposes the underlying client so other adapters (the call log)
// can share the connection.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
