package graph

import (
	"strings"
	"testing"

	"github.com/voxflow/voxflow/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	flow := &domain.Flow{
		Number: "+15550001111",
		Nodes: []domain.Node{
			{ID: "greeting", Type: domain.NodeTypeSay, Next: []string{"main-menu"}},
			{
				ID:   "main-menu",
				Type: domain.NodeTypeGather,
				Config: map[string]any{
					"prompt": "Press 1 for sales.",
					"options": []any{
						map[string]any{"digit": "1", "blockId": "sales"},
						map[string]any{"digit": "2", "response": "inline only"},
					},
				},
			},
			{ID: "sales", Type: domain.NodeTypeForward, Config: map[string]any{"number": "+15552223333"}},
			{ID: "bye", Type: domain.NodeTypeHangup},
		},
	}

	out := GenerateMermaid(flow)

	if !strings.HasPrefix(out, "graph TD\n") {
		t.Errorf("missing flowchart header: %s", out)
	}

	for _, want := range []string{
		// Shapes by node kind.
		`greeting["greeting <br/> say"]`,
		`main_menu[/"main-menu <br/> gather"/]`,
		`sales[["sales <br/> forward"]]`,
		`bye(("bye <br/> hangup"))`,
		// Linear edge with sanitized target.
		"greeting --> main_menu",
		// Gather option edge labeled with its digit.
		`main_menu -- "1" --> sales`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	// Inline-response options have no target node, so no edge.
	if strings.Contains(out, `-- "2" -->`) {
		t.Errorf("inline-response option must not produce an edge:\n%s", out)
	}
}

func TestGenerateMermaid_EmptyFlow(t *testing.T) {
	out := GenerateMermaid(&domain.Flow{Number: "+15550001111"})
	if out != "graph TD\n" {
		t.Errorf("empty flow should render a bare header, got %q", out)
	}
}

func TestSanitizeMermaidID(t *testing.T) {
	cases := map[string]string{
		"plain":         "plain",
		"with-dash":     "with_dash",
		"dot.and space": "dot_and_space",
		"a/b\\c":        "a_b_c",
	}
	for in, want := range cases {
		if got := sanitizeMermaidID(in); got != want {
			t.Errorf("sanitizeMermaidID(%q) = %q, want %q", in, got, want)
		}
	}
}
