// Package voxflow is the high-level entry point for embedding the call
// flow interpreter: it wires a flow store, the interpreter engine and the
// webhook handler together behind a small options API.
package voxflow

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/voxflow/voxflow/internal/adapters/http"
	"github.com/voxflow/voxflow/internal/interp"
	"github.com/voxflow/voxflow/internal/logging"
	"github.com/voxflow/voxflow/pkg/adapters/file"
	"github.com/voxflow/voxflow/pkg/ports"
)

// Version is the release version of voxflow.
const Version = "0.4.0"

// Service bundles a configured interpreter with its webhook handler.
type Service struct {
	resolver ports.FlowResolver
	logs     ports.CallLogStore
	logger   *slog.Logger
	baseURL  string
	engine   *interp.Engine
	metrics  *httpadapter.Metrics

	registerer prometheus.Registerer

	handlerOnce sync.Once
	handler     nethttp.Handler
}

// Option configures the Service.
type Option func(*Service)

// WithResolver injects a custom flow resolver, bypassing the default
// file-store initialization. Use this to serve flows from Redis or from
// an in-memory store in tests.
func WithResolver(r ports.FlowResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithCallLog records call-progress events to the given store.
func WithCallLog(logs ports.CallLogStore) Option {
	return func(s *Service) {
		s.logs = logs
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithBaseURL sets the externally reachable webhook endpoint embedded in
// continuation URLs, e.g. "https://voice.example.com/voice".
func WithBaseURL(u string) Option {
	return func(s *Service) {
		s.baseURL = u
	}
}

// WithRegisterer sets the Prometheus registry metrics attach to
// (default: the global registry). Tests use a private registry so
// repeated New calls do not collide.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = reg
	}
}

// New creates a Service. flowsDir is loaded through the file store unless
// WithResolver overrides it.
func New(flowsDir string, opts ...Option) (*Service, error) {
	s := &Service{
		logger:     logging.New(slog.LevelInfo),
		baseURL:    "/voice",
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.resolver == nil {
		store, err := file.New(flowsDir)
		if err != nil {
			return nil, fmt.Errorf("loading flows from %s: %w", flowsDir, err)
		}
		s.resolver = store
	}

	s.metrics = httpadapter.NewMetrics(s.registerer)
	s.engine = interp.New(s.resolver, s.baseURL,
		interp.WithLogger(s.logger),
		interp.WithObserver(s.metrics.ObserveNode),
	)
	return s, nil
}

// Engine returns the underlying interpreter.
func (s *Service) Engine() *interp.Engine {
	return s.engine
}

// Resolver returns the flow resolver in use.
func (s *Service) Resolver() ports.FlowResolver {
	return s.resolver
}

// Handler returns the webhook HTTP handler. It is built once and reused.
func (s *Service) Handler() nethttp.Handler {
	s.handlerOnce.Do(func() {
		opts := []httpadapter.Option{
			httpadapter.WithLogger(s.logger),
			httpadapter.WithMetrics(s.metrics),
		}
		if s.logs != nil {
			opts = append(opts, httpadapter.WithCallLog(s.logs))
		}
		s.handler = httpadapter.NewHandler(s.engine, opts...)
	})
	return s.handler
}
