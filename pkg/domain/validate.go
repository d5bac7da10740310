package domain

import (
	"fmt"
	"strings"
)

// Validate checks a flow for authoring mistakes that the interpreter would
// otherwise only surface mid-call: duplicate or empty node IDs, unknown
// node types, edges pointing at missing nodes, duplicate gather digits and
// oversized multi-forward target lists. An empty flow is valid input (the
// interpreter renders a spoken apology for it).
func Validate(f *Flow) error {
	var problems []string

	ids := make(map[string]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.ID == "" {
			problems = append(problems, fmt.Sprintf("node of type %q has no id", n.Type))
			continue
		}
		if ids[n.ID] {
			problems = append(problems, fmt.Sprintf("duplicate node id %q", n.ID))
		}
		ids[n.ID] = true
	}

	for _, n := range f.Nodes {
		if !KnownNodeType(n.Type) {
			problems = append(problems, fmt.Sprintf("node %q has unknown type %q", n.ID, n.Type))
			continue
		}

		for _, next := range n.Next {
			if next != "" && !ids[next] {
				problems = append(problems, fmt.Sprintf("node %q points at missing node %q", n.ID, next))
			}
		}

		switch n.Type {
		case NodeTypeGather:
			problems = append(problems, validateGather(n, ids)...)
		case NodeTypeMultiForward:
			cfg, err := n.MultiForwardConfig()
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			if len(cfg.Targets) == 0 {
				problems = append(problems, fmt.Sprintf("multi_forward node %q has no targets", n.ID))
			}
			if len(cfg.Targets) > MaxForwardTargets {
				problems = append(problems, fmt.Sprintf("multi_forward node %q has %d targets, max is %d", n.ID, len(cfg.Targets), MaxForwardTargets))
			}
			switch cfg.Strategy {
			case StrategySimultaneous, StrategySequential, StrategyPriority:
			default:
				problems = append(problems, fmt.Sprintf("multi_forward node %q has unknown strategy %q", n.ID, cfg.Strategy))
			}
		case NodeTypeForward:
			cfg, err := n.ForwardConfig()
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			if cfg.Number == "" {
				problems = append(problems, fmt.Sprintf("forward node %q has no destination number", n.ID))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("flow for %s has %d problems:\n- %s", f.Number, len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}

func validateGather(n Node, ids map[string]bool) []string {
	var problems []string

	cfg, err := n.GatherConfig()
	if err != nil {
		return []string{err.Error()}
	}

	seen := make(map[string]bool, len(cfg.Options))
	for _, o := range cfg.Options {
		if o.Digit == "" {
			problems = append(problems, fmt.Sprintf("gather node %q has an option without a digit", n.ID))
			continue
		}
		if seen[o.Digit] {
			problems = append(problems, fmt.Sprintf("gather node %q maps digit %q twice", n.ID, o.Digit))
		}
		seen[o.Digit] = true

		if o.BlockID != "" && !ids[o.BlockID] {
			problems = append(problems, fmt.Sprintf("gather node %q digit %q points at missing node %q", n.ID, o.Digit, o.BlockID))
		}
	}

	return problems
}
