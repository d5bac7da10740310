package domain

// Node type constants define the control behavior of each step in a call flow.
const (
	// NodeTypeSay speaks text to the caller and continues to the next node.
	NodeTypeSay = "say"
	// NodeTypeGather collects a single DTMF digit and branches on it.
	NodeTypeGather = "gather"
	// NodeTypeForward bridges the call to a single destination number.
	NodeTypeForward = "forward"
	// NodeTypeMultiForward rings a group of destination numbers.
	NodeTypeMultiForward = "multi_forward"
	// NodeTypePause holds the line silently before continuing.
	NodeTypePause = "pause"
	// NodeTypePlay plays a recorded audio file to the caller.
	NodeTypePlay = "play"
	// NodeTypeHangup terminates the call.
	NodeTypeHangup = "hangup"
	// NodeTypeSMS sends a text message and ends the call.
	NodeTypeSMS = "sms"
)

// KnownNodeType reports whether t is a member of the closed node-kind set.
func KnownNodeType(t string) bool {
	switch t {
	case NodeTypeSay, NodeTypeGather, NodeTypeForward, NodeTypeMultiForward,
		NodeTypePause, NodeTypePlay, NodeTypeHangup, NodeTypeSMS:
		return true
	}
	return false
}

// Node is one step in a call flow.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`

	// Config holds the type-specific payload (prompt text, menu options,
	// destination numbers, durations). Decode it with the typed accessors
	// in config.go rather than reading the map directly.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`

	// Next lists downstream node IDs. Linear nodes (say, play, pause) use
	// at most the first entry; gather branches through option blockIds
	// instead; forward, hangup and sms are terminal.
	Next []string `json:"next,omitempty" yaml:"next,omitempty"`
}

// FirstNext returns the first outgoing edge, or "" for a terminal node.
func (n Node) FirstNext() string {
	if len(n.Next) == 0 {
		return ""
	}
	return n.Next[0]
}

// Flow is a user-authored call flow attached to one phone number.
// Node order is insignificant for execution except that the first node is
// the conventional entry point when no explicit node ID is given.
type Flow struct {
	Number string `json:"number" yaml:"number"`
	Nodes  []Node `json:"nodes" yaml:"nodes"`
}

// Entry returns the flow's entry node. ok is false for an empty flow.
func (f *Flow) Entry() (Node, bool) {
	if len(f.Nodes) == 0 {
		return Node{}, false
	}
	return f.Nodes[0], true
}

// NodeByID looks up a node by its identifier.
func (f *Flow) NodeByID(id string) (Node, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
