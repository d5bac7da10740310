package domain

import "time"

// CallInput is the ephemeral per-request state of one call-progress event.
// It is reconstructed from webhook form fields and callback query
// parameters on every request and discarded after the response is sent;
// the interpreter holds no state between callbacks.
type CallInput struct {
	// To is the dialed number, used to resolve the flow.
	To string
	// From is the caller's number, when the provider supplies it.
	From string
	// CallID is the provider's call identifier (e.g. CallSid).
	CallID string
	// NodeID is the current node, carried via the callback URL set on the
	// previous response. Empty means "use the flow's entry node".
	NodeID string
	// Digits holds DTMF input collected since the last prompt.
	Digits string
	// Attempt counts consecutive failed gather tries at the current node.
	Attempt int
}

// CallLog is one call-progress event as persisted by a CallLogStore.
type CallLog struct {
	ID     string    `json:"id"`
	CallID string    `json:"call_id,omitempty"`
	To     string    `json:"to"`
	From   string    `json:"from,omitempty"`
	NodeID string    `json:"node_id,omitempty"`
	Digits string    `json:"digits,omitempty"`
	At     time.Time `json:"at"`
}
