package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxflow/voxflow/internal/presentation/graph"
	"github.com/voxflow/voxflow/pkg/adapters/file"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <flow-file>",
	Short: "Export a flow visualization",
	Long:  `Parses one YAML flow file and outputs a Mermaid diagram (graph TD) of its call handling logic.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flow, err := file.ReadFlow(args[0])
		if err != nil {
			fmt.Printf("Error reading flow: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(flow))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
