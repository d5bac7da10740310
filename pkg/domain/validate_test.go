package domain

import (
	"strings"
	"testing"
)

func validFlow() *Flow {
	return &Flow{
		Number: "+15550001111",
		Nodes: []Node{
			{
				ID:   "menu",
				Type: NodeTypeGather,
				Config: map[string]any{
					"prompt": "Press 1 or 2.",
					"options": []any{
						map[string]any{"digit": "1", "blockId": "sales"},
						map[string]any{"digit": "2", "response": "We are closed."},
					},
				},
			},
			{ID: "sales", Type: NodeTypeForward, Config: map[string]any{"number": "+15552223333"}},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validFlow()); err != nil {
		t.Errorf("valid flow rejected: %v", err)
	}
}

func TestValidate_EmptyFlowOK(t *testing.T) {
	if err := Validate(&Flow{Number: "+15550001111"}); err != nil {
		t.Errorf("empty flow should validate: %v", err)
	}
}

func TestValidate_Problems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Flow)
		want   string
	}{
		{
			"missing node id",
			func(f *Flow) { f.Nodes[1].ID = "" },
			"has no id",
		},
		{
			"duplicate node id",
			func(f *Flow) { f.Nodes[1].ID = "menu" },
			"duplicate node id",
		},
		{
			"unknown node type",
			func(f *Flow) { f.Nodes[1].Type = "teleport" },
			"unknown type",
		},
		{
			"dangling next edge",
			func(f *Flow) { f.Nodes[1].Next = []string{"ghost"} },
			`points at missing node "ghost"`,
		},
		{
			"dangling blockId",
			func(f *Flow) {
				f.Nodes[0].Config["options"] = []any{
					map[string]any{"digit": "1", "blockId": "ghost"},
				}
			},
			`points at missing node "ghost"`,
		},
		{
			"duplicate gather digit",
			func(f *Flow) {
				f.Nodes[0].Config["options"] = []any{
					map[string]any{"digit": "1", "blockId": "sales"},
					map[string]any{"digit": "1", "response": "again"},
				}
			},
			"maps digit \"1\" twice",
		},
		{
			"gather option without digit",
			func(f *Flow) {
				f.Nodes[0].Config["options"] = []any{
					map[string]any{"response": "hello"},
				}
			},
			"option without a digit",
		},
		{
			"forward without number",
			func(f *Flow) { f.Nodes[1].Config = map[string]any{} },
			"no destination number",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFlow()
			tc.mutate(f)
			err := Validate(f)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidate_MultiForward(t *testing.T) {
	targets := func(n int) []any {
		out := make([]any, n)
		for i := range out {
			out[i] = map[string]any{"number": "+15550000001"}
		}
		return out
	}

	t.Run("no targets", func(t *testing.T) {
		f := &Flow{Number: "+15550001111", Nodes: []Node{
			{ID: "ring", Type: NodeTypeMultiForward, Config: map[string]any{}},
		}}
		if err := Validate(f); err == nil || !strings.Contains(err.Error(), "no targets") {
			t.Errorf("expected no-targets problem, got %v", err)
		}
	})

	t.Run("too many targets", func(t *testing.T) {
		f := &Flow{Number: "+15550001111", Nodes: []Node{
			{ID: "ring", Type: NodeTypeMultiForward, Config: map[string]any{"targets": targets(11)}},
		}}
		if err := Validate(f); err == nil || !strings.Contains(err.Error(), "max is 10") {
			t.Errorf("expected target-cap problem, got %v", err)
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		f := &Flow{Number: "+15550001111", Nodes: []Node{
			{ID: "ring", Type: NodeTypeMultiForward, Config: map[string]any{
				"strategy": "roulette",
				"targets":  targets(2),
			}},
		}}
		if err := Validate(f); err == nil || !strings.Contains(err.Error(), "unknown strategy") {
			t.Errorf("expected strategy problem, got %v", err)
		}
	})

	t.Run("at the cap is fine", func(t *testing.T) {
		f := &Flow{Number: "+15550001111", Nodes: []Node{
			{ID: "ring", Type: NodeTypeMultiForward, Config: map[string]any{"targets": targets(10)}},
		}}
		if err := Validate(f); err != nil {
			t.Errorf("ten targets should validate: %v", err)
		}
	})
}
