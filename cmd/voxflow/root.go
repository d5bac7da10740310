package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "voxflow",
	Short: "Voxflow is a stateless call flow interpreter",
	Long: `Voxflow answers telephony provider webhooks by walking user-authored
call flows (say, gather, forward, ...) and returning XML control markup.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("flows", "flows", "Directory containing YAML flow files")
}
