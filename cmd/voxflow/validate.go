package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/voxflow/voxflow/pkg/adapters/file"
	"github.com/voxflow/voxflow/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check flow files for consistency",
	Long: `Parses every YAML flow in the flows directory and reports authoring
mistakes: duplicate node ids, unknown node types, edges pointing at missing
nodes, duplicate gather digits, oversized multi-forward target lists.`,
	Run: func(cmd *cobra.Command, args []string) {
		flowsDir, _ := cmd.Flags().GetString("flows")
		if len(args) > 0 {
			flowsDir = args[0]
		}

		if err := runValidate(flowsDir); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All flows are valid")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no flow files found in %s", dir)
	}

	var failed bool
	for _, f := range files {
		flow, err := file.ReadFlow(f)
		if err != nil {
			fmt.Printf("%s: %v\n", f, err)
			failed = true
			continue
		}
		if err := domain.Validate(flow); err != nil {
			fmt.Printf("%s: %v\n", f, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("some flows have problems")
	}
	return nil
}
