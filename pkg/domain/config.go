package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Defaults applied when a node config omits a value.
const (
	// DefaultMaxRetries is how many failed digit-collection attempts a
	// gather node tolerates before saying goodbye.
	DefaultMaxRetries = 3
	// DefaultGatherTimeout is how long (seconds) the provider waits for a
	// digit before falling through the gather.
	DefaultGatherTimeout = 5
	// DefaultDialTimeout is how long (seconds) a forwarded leg rings.
	DefaultDialTimeout = 30
)

// MaxForwardTargets caps the number of destinations a multi_forward node
// may ring at once.
const MaxForwardTargets = 10

// Ring strategies for multi_forward. "priority" is pass-through
// configuration: the renderer orders targets by priority, actual ringing
// semantics belong to the telephony provider.
const (
	StrategySimultaneous = "simultaneous"
	StrategySequential   = "sequential"
	StrategyPriority     = "priority"
)

// SayConfig configures a say node. Audio playback is not modeled at this
// layer; Text is always what gets spoken.
type SayConfig struct {
	Text     string `mapstructure:"text"`
	AudioURL string `mapstructure:"audioUrl"`
	Voice    string `mapstructure:"voice"`
}

// GatherOption maps one DTMF digit to a downstream node or an inline
// spoken response. When both BlockID and Response are set, BlockID wins
// and the response text is ignored.
type GatherOption struct {
	Digit    string `mapstructure:"digit"`
	BlockID  string `mapstructure:"blockId"`
	Response string `mapstructure:"response"`
}

// GatherConfig configures a gather (menu) node.
type GatherConfig struct {
	Prompt      string         `mapstructure:"prompt"`
	RetryPrompt string         `mapstructure:"retryPrompt"`
	Goodbye     string         `mapstructure:"goodbye"`
	MaxRetries  int            `mapstructure:"maxRetries"`
	Timeout     int            `mapstructure:"timeout"`
	Options     []GatherOption `mapstructure:"options"`
}

// Match returns the option configured for the given digits.
func (c GatherConfig) Match(digits string) (GatherOption, bool) {
	for _, o := range c.Options {
		if o.Digit != "" && o.Digit == digits {
			return o, true
		}
	}
	return GatherOption{}, false
}

// ForwardConfig configures a forward node.
type ForwardConfig struct {
	Number   string `mapstructure:"number"`
	CallerID string `mapstructure:"callerId"`
	Timeout  int    `mapstructure:"timeout"`
}

// MultiForwardTarget is one destination of a multi_forward node.
type MultiForwardTarget struct {
	Number   string `mapstructure:"number"`
	Priority int    `mapstructure:"priority"`
}

// MultiForwardConfig configures a multi_forward node.
type MultiForwardConfig struct {
	Strategy string               `mapstructure:"strategy"`
	Timeout  int                  `mapstructure:"timeout"`
	Targets  []MultiForwardTarget `mapstructure:"targets"`
}

// PauseConfig configures a pause node.
type PauseConfig struct {
	Seconds int `mapstructure:"seconds"`
}

// PlayConfig configures a play node.
type PlayConfig struct {
	URL string `mapstructure:"url"`
}

// SMSConfig configures an sms node.
type SMSConfig struct {
	To   string `mapstructure:"to"`
	From string `mapstructure:"from"`
	Body string `mapstructure:"body"`
}

// SayConfig decodes the node's payload as a say config.
func (n Node) SayConfig() (SayConfig, error) {
	var c SayConfig
	err := decodeConfig(n, &c)
	return c, err
}

// GatherConfig decodes the node's payload as a gather config, applying
// retry and timeout defaults.
func (n Node) GatherConfig() (GatherConfig, error) {
	var c GatherConfig
	if err := decodeConfig(n, &c); err != nil {
		return c, err
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultGatherTimeout
	}
	return c, nil
}

// ForwardConfig decodes the node's payload as a forward config.
func (n Node) ForwardConfig() (ForwardConfig, error) {
	var c ForwardConfig
	if err := decodeConfig(n, &c); err != nil {
		return c, err
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultDialTimeout
	}
	return c, nil
}

// MultiForwardConfig decodes the node's payload as a multi_forward config.
func (n Node) MultiForwardConfig() (MultiForwardConfig, error) {
	var c MultiForwardConfig
	if err := decodeConfig(n, &c); err != nil {
		return c, err
	}
	if c.Strategy == "" {
		c.Strategy = StrategySimultaneous
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultDialTimeout
	}
	return c, nil
}

// PauseConfig decodes the node's payload as a pause config.
func (n Node) PauseConfig() (PauseConfig, error) {
	var c PauseConfig
	err := decodeConfig(n, &c)
	return c, err
}

// PlayConfig decodes the node's payload as a play config.
func (n Node) PlayConfig() (PlayConfig, error) {
	var c PlayConfig
	err := decodeConfig(n, &c)
	return c, err
}

// SMSConfig decodes the node's payload as an sms config.
func (n Node) SMSConfig() (SMSConfig, error) {
	var c SMSConfig
	err := decodeConfig(n, &c)
	return c, err
}

// decodeConfig maps the untyped config payload onto a typed struct.
// WeaklyTypedInput tolerates the string/number looseness of JSON-authored
// flows (e.g. "maxRetries": "3" from the visual editor).
func decodeConfig(n Node, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("building config decoder for node %q: %w", n.ID, err)
	}
	if err := dec.Decode(n.Config); err != nil {
		return fmt.Errorf("decoding %s config for node %q: %w", n.Type, n.ID, err)
	}
	return nil
}
