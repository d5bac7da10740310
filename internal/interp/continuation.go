package interp

import (
	"net/url"
	"strconv"
)

// Continuation builds the callback URLs that carry conversation state
// between otherwise independent webhook requests. The provider cannot
// guarantee callback affinity to a server instance, so the target node,
// the dialed number and the gather attempt counter are URL-encoded into
// the next callback instead of being held in a server-side session.
type Continuation struct {
	// BaseURL is the externally reachable webhook endpoint,
	// e.g. "https://voice.example.com/voice".
	BaseURL string
}

// URL returns the callback URL that resumes the call at the given node.
func (c Continuation) URL(to, nodeID string, attempt int) string {
	v := url.Values{}
	if nodeID != "" {
		v.Set("node", nodeID)
	}
	if to != "" {
		v.Set("To", to)
	}
	if attempt > 0 {
		v.Set("attempt", strconv.Itoa(attempt))
	}
	if len(v) == 0 {
		return c.BaseURL
	}
	return c.BaseURL + "?" + v.Encode()
}
