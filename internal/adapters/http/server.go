// Package http exposes the call-flow interpreter as the telephony
// provider's webhook. The contract at this boundary is strict: whatever
// goes wrong, the response is a single well-formed XML envelope with
// status 200 — the provider cannot turn a bare 5xx into a voice action,
// so an unhandled fault here strands a live phone call in silence.
package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voxflow/voxflow/internal/interp"
	"github.com/voxflow/voxflow/internal/twiml"
	"github.com/voxflow/voxflow/pkg/domain"
	"github.com/voxflow/voxflow/pkg/ports"
)

// Server handles provider webhooks.
type Server struct {
	engine  *interp.Engine
	logs    ports.CallLogStore
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithCallLog records every call-progress event to the given store.
func WithCallLog(logs ports.CallLogStore) Option {
	return func(s *Server) {
		s.logs = logs
	}
}

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics sets pre-built collectors (the default registers on the
// global Prometheus registry).
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewHandler builds the webhook router: POST and GET /voice for the
// provider, /health and /metrics for operators.
func NewHandler(engine *interp.Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(prometheus.DefaultRegisterer)
	}

	r := chi.NewRouter()
	r.Post("/voice", s.handleVoice)
	r.Get("/voice", s.handleVoice)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// handleVoice answers one call-progress event.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	// Last line of defense: a panic anywhere below still produces an
	// audible envelope.
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("webhook panic", "panic", rec, "path", r.URL.Path)
			s.metrics.Requests.WithLabelValues("panic").Inc()
			writeEnvelope(w, s.logger, interp.Unavailable())
		}
	}()

	in := callInput(r)

	resp, outcome := s.engine.Respond(r.Context(), in)

	s.metrics.Requests.WithLabelValues(string(outcome)).Inc()
	s.metrics.Duration.Observe(time.Since(started).Seconds())
	s.appendCallLog(r, in)

	writeEnvelope(w, s.logger, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// callInput reconstructs the ephemeral call state from the webhook. The
// provider posts To/From/CallSid/Digits as form fields; node and attempt
// arrive as query parameters set on the previous response's callback URL.
func callInput(r *http.Request) domain.CallInput {
	if err := r.ParseForm(); err != nil {
		// Fall through with whatever the query carried; the engine
		// answers unresolvable input with a spoken apology.
		return domain.CallInput{
			To:     r.URL.Query().Get("To"),
			NodeID: r.URL.Query().Get("node"),
		}
	}

	to := r.PostFormValue("To")
	if to == "" {
		to = r.FormValue("To")
	}

	attempt, err := strconv.Atoi(r.URL.Query().Get("attempt"))
	if err != nil || attempt < 0 {
		attempt = 0
	}

	return domain.CallInput{
		To:      to,
		From:    r.FormValue("From"),
		CallID:  r.FormValue("CallSid"),
		NodeID:  r.URL.Query().Get("node"),
		Digits:  r.FormValue("Digits"),
		Attempt: attempt,
	}
}

// appendCallLog is best-effort: a failed write is logged and the call
// proceeds.
func (s *Server) appendCallLog(r *http.Request, in domain.CallInput) {
	if s.logs == nil {
		return
	}
	entry := domain.CallLog{
		ID:     uuid.New().String(),
		CallID: in.CallID,
		To:     in.To,
		From:   in.From,
		NodeID: in.NodeID,
		Digits: in.Digits,
		At:     time.Now().UTC(),
	}
	if err := s.logs.Append(r.Context(), entry); err != nil {
		s.logger.Warn("call log append failed", "err", err, "call_id", in.CallID)
	}
}

func writeEnvelope(w http.ResponseWriter, logger *slog.Logger, resp *twiml.Response) {
	body, err := resp.Render()
	if err != nil {
		// Rendering only fails on a marshalling bug; answer with the
		// static fallback rather than nothing.
		logger.Error("envelope render failed", "err", err)
		body, _ = interp.Unavailable().Render()
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
