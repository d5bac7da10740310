// Package interp walks a call flow one webhook at a time. The engine is a
// pure reducer: (flow, node id, digits, attempt) in, one markup envelope
// out. All conversation state travels in the callback URLs it emits, so
// concurrent callbacks for different calls (or different legs of the same
// call) never share anything.
package interp

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/voxflow/voxflow/internal/twiml"
	"github.com/voxflow/voxflow/pkg/domain"
	"github.com/voxflow/voxflow/pkg/ports"
)

// Outcome classifies how a webhook request was answered. The HTTP adapter
// labels its metrics with it.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeFlowNotFound Outcome = "flow_not_found"
	OutcomeAmbiguous    Outcome = "ambiguous_number"
	OutcomeStoreError   Outcome = "store_error"
)

// Observer is notified for every node the engine interprets.
type Observer func(nodeID, nodeType string)

// Engine interprets call flows. It holds only immutable configuration
// (resolver, callback base URL, logger); per-call state lives entirely in
// the request and the rendered continuation URLs.
type Engine struct {
	resolver ports.FlowResolver
	cont     Continuation
	logger   *slog.Logger
	observe  Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithObserver registers a per-node callback, used by the HTTP adapter to
// count node visits.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observe = o
	}
}

// New creates an engine. baseURL is the externally reachable webhook
// endpoint that continuation URLs point back to.
func New(resolver ports.FlowResolver, baseURL string, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		cont:     Continuation{BaseURL: baseURL},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Respond resolves the flow for the dialed number and interprets one step.
// Every resolver failure degrades to a rendered apology-and-hangup; an
// unhandled fault at this boundary would strand the live call with no
// audio, so nothing escapes as an error.
func (e *Engine) Respond(ctx context.Context, in domain.CallInput) (*twiml.Response, Outcome) {
	flow, err := e.resolver.Resolve(ctx, in.To)
	switch {
	case errors.Is(err, domain.ErrFlowNotFound):
		e.logger.Info("no flow for dialed number", "to", in.To)
		return terminal(msgNotConfigured), OutcomeFlowNotFound
	case errors.Is(err, domain.ErrAmbiguousNumber):
		e.logger.Warn("dialed number matches multiple flows", "to", in.To)
		return terminal(msgAmbiguousNumber), OutcomeAmbiguous
	case err != nil:
		e.logger.Error("flow store lookup failed", "to", in.To, "err", err)
		return terminal(msgUnavailable), OutcomeStoreError
	}

	return e.Interpret(flow, in), OutcomeOK
}

// Interpret computes the control-markup response for one call-progress
// event. It is a pure function of its arguments: identical inputs yield
// byte-identical envelopes.
func (e *Engine) Interpret(flow *domain.Flow, in domain.CallInput) *twiml.Response {
	node, ok := e.currentNode(flow, in.NodeID)
	if !ok {
		if len(flow.Nodes) == 0 {
			return terminal(msgEmptyFlow)
		}
		e.logger.Warn("node not found in flow", "to", in.To, "node", in.NodeID)
		return terminal(msgNodeNotFound)
	}

	if e.observe != nil {
		e.observe(node.ID, node.Type)
	}

	switch node.Type {
	case domain.NodeTypeSay:
		return e.say(node, in)
	case domain.NodeTypeGather:
		return e.gather(node, in)
	case domain.NodeTypeForward:
		return e.forward(node)
	case domain.NodeTypeMultiForward:
		return e.multiForward(node)
	case domain.NodeTypePause:
		return e.pause(node, in)
	case domain.NodeTypePlay:
		return e.play(node, in)
	case domain.NodeTypeSMS:
		return e.sms(node)
	case domain.NodeTypeHangup:
		return twiml.New().Hangup()
	default:
		e.logger.Warn("unknown node type", "node", node.ID, "type", node.Type)
		return terminal(msgInvalidNode)
	}
}

// currentNode resolves the node the callback addresses, defaulting to the
// flow's entry node when no id was carried.
func (e *Engine) currentNode(flow *domain.Flow, nodeID string) (domain.Node, bool) {
	if nodeID == "" {
		return flow.Entry()
	}
	return flow.NodeByID(nodeID)
}

func (e *Engine) say(node domain.Node, in domain.CallInput) *twiml.Response {
	cfg, err := node.SayConfig()
	if err != nil {
		e.logger.Warn("bad say config", "node", node.ID, "err", err)
		return terminal(msgInvalidNode)
	}

	resp := twiml.New()
	switch {
	case cfg.Text != "" && cfg.Voice != "":
		resp.SayVoice(cfg.Text, cfg.Voice)
	case cfg.Text != "":
		resp.Say(cfg.Text)
	default:
		// Audio playback is not modeled at this layer; a say node with
		// only an audio reference still has to produce something audible.
		resp.Say(msgNothingToSay)
	}

	return e.continueTo(resp, node, in)
}

func (e *Engine) play(node domain.Node, in domain.CallInput) *twiml.Response {
	cfg, err := node.PlayConfig()
	if err != nil || cfg.URL == "" {
		e.logger.Warn("bad play config", "node", node.ID, "err", err)
		return terminal(msgInvalidNode)
	}

	return e.continueTo(twiml.New().Play(cfg.URL), node, in)
}

func (e *Engine) pause(node domain.Node, in domain.CallInput) *twiml.Response {
	cfg, err := node.PauseConfig()
	if err != nil {
		e.logger.Warn("bad pause config", "node", node.ID, "err", err)
		return terminal(msgInvalidNode)
	}
	seconds := cfg.Seconds
	if seconds <= 0 {
		seconds = 1
	}

	return e.continueTo(twiml.New().Pause(seconds), node, in)
}

// continueTo appends the linear continuation of a node: a redirect to its
// single outgoing edge, or a hangup when the edge is absent.
func (e *Engine) continueTo(resp *twiml.Response, node domain.Node, in domain.CallInput) *twiml.Response {
	next := node.FirstNext()
	if next == "" {
		return resp.Hangup()
	}
	return resp.Redirect(e.cont.URL(in.To, next, 0))
}

func (e *Engine) gather(node domain.Node, in domain.CallInput) *twiml.Response {
	cfg, err := node.GatherConfig()
	if err != nil {
		e.logger.Warn("bad gather config", "node", node.ID, "err", err)
		return terminal(msgInvalidNode)
	}

	// No digits: either the first visit or a silence fall-through from a
	// previous prompt's trailing redirect. Silence consumes retries like a
	// wrong digit does, so once the attempt carried in the URL passes the
	// budget the caller gets the goodbye instead of another prompt.
	if in.Digits == "" {
		if in.Attempt > cfg.MaxRetries {
			return goodbye(cfg)
		}
		text := cfg.Prompt
		if in.Attempt > 0 && cfg.RetryPrompt != "" {
			text = cfg.RetryPrompt
		}
		return e.prompt(node, cfg, in.To, in.Attempt, text)
	}

	if opt, ok := cfg.Match(in.Digits); ok {
		// blockId takes priority over the inline response text.
		if opt.BlockID != "" {
			return twiml.New().Redirect(e.cont.URL(in.To, opt.BlockID, 0))
		}
		if opt.Response != "" {
			return terminal(opt.Response)
		}
		return twiml.New().Hangup()
	}

	// Unmatched digit: goodbye only once the attempts are used up, so a
	// maxRetries of N hangs up on the (N+1)-th consecutive miss.
	if in.Attempt >= cfg.MaxRetries {
		return goodbye(cfg)
	}

	retry := cfg.RetryPrompt
	if retry == "" {
		retry = cfg.Prompt
	}
	return e.prompt(node, cfg, in.To, in.Attempt+1, retry)
}

// prompt renders the single-digit collection window. The action URL points
// back at this same node carrying the attempt counter; the trailing
// redirect covers the provider timing out with no digit at all, which
// consumes a retry just like a wrong digit.
func (e *Engine) prompt(node domain.Node, cfg domain.GatherConfig, to string, attempt int, text string) *twiml.Response {
	g := twiml.Gather{
		Action:    e.cont.URL(to, node.ID, attempt),
		Method:    "POST",
		NumDigits: 1,
		Timeout:   cfg.Timeout,
	}
	if text != "" {
		g.Say = &twiml.Say{Text: text}
	}

	return twiml.New().
		Gather(g).
		Redirect(e.cont.URL(to, node.ID, attempt+1))
}

func (e *Engine) forward(node domain.Node) *twiml.Response {
	cfg, err := node.ForwardConfig()
	if err != nil || cfg.Number == "" {
		e.logger.Warn("bad forward config", "node", node.ID, "err", err)
		return terminal(msgInvalidNode)
	}

	return twiml.New().Dial(twiml.Dial{
		Timeout:  cfg.Timeout,
		CallerID: cfg.CallerID,
		Numbers:  []twiml.Number{{Text: cfg.Number}},
	})
}

func (e *Engine) multiForward(node domain.Node) *twiml.Response {
	cfg, err := node.MultiForwardConfig()
	if err != nil || len(cfg.Targets) == 0 {
		e.logger.Warn("bad multi_forward config", "node", node.ID, "err", err)
		return terminal(msgInvalidNode)
	}

	targets := cfg.Targets
	if cfg.Strategy == domain.StrategyPriority {
		targets = append([]domain.MultiForwardTarget(nil), targets...)
		sort.SliceStable(targets, func(i, j int) bool {
			return targets[i].Priority < targets[j].Priority
		})
	}
	if len(targets) > domain.MaxForwardTargets {
		targets = targets[:domain.MaxForwardTargets]
	}

	d := twiml.Dial{
		Timeout:  cfg.Timeout,
		Strategy: cfg.Strategy,
	}
	for _, t := range targets {
		d.Numbers = append(d.Numbers, twiml.Number{Text: t.Number})
	}

	return twiml.New().Dial(d)
}

func (e *Engine) sms(node domain.Node) *twiml.Response {
	cfg, err := node.SMSConfig()
	if err != nil || cfg.Body == "" {
		e.logger.Warn("bad sms config", "node", node.ID, "err", err)
		return terminal(msgInvalidNode)
	}

	return twiml.New().
		Sms(twiml.Sms{To: cfg.To, From: cfg.From, Body: cfg.Body}).
		Hangup()
}

// terminal renders a spoken message followed by a hangup.
func terminal(message string) *twiml.Response {
	return twiml.New().Say(message).Hangup()
}

// goodbye renders the gather's configured goodbye, or the default one.
func goodbye(cfg domain.GatherConfig) *twiml.Response {
	msg := cfg.Goodbye
	if msg == "" {
		msg = msgDefaultGoodbye
	}
	return terminal(msg)
}

// Unavailable is the envelope of last resort, used by the HTTP adapter's
// recovery path when the engine itself cannot be reached.
func Unavailable() *twiml.Response {
	return terminal(msgUnavailable)
}
