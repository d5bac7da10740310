// Package graph renders call flows as Mermaid flowcharts, for the
// `voxflow graph` command and for pasting into docs.
package graph

import (
	"fmt"
	"strings"

	"github.com/voxflow/voxflow/pkg/domain"
)

// GenerateMermaid produces Mermaid flowchart syntax for a flow.
// Node shapes follow the node kind:
//   - gather: [/Parallelogram/] (input)
//   - forward / multi_forward / sms: [[Subroutine]] (external side effect)
//   - hangup: ((Circle)) (sink)
//   - everything else: [Rectangle]
//
// Gather option edges are labeled with their digit.
func GenerateMermaid(flow *domain.Flow) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range flow.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeGather:
			opener, closer = "[/", "/]"
		case domain.NodeTypeForward, domain.NodeTypeMultiForward, domain.NodeTypeSMS:
			opener, closer = "[[", "]]"
		case domain.NodeTypeHangup:
			opener, closer = "((", "))"
		}

		label := node.ID
		if node.Type != "" {
			label = fmt.Sprintf("%s <br/> %s", node.ID, node.Type)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, next := range node.Next {
			if next == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(next)))
		}

		if node.Type == domain.NodeTypeGather {
			cfg, err := node.GatherConfig()
			if err != nil {
				continue
			}
			for _, opt := range cfg.Options {
				if opt.BlockID == "" {
					continue
				}
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
					safeID, opt.Digit, sanitizeMermaidID(opt.BlockID)))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
