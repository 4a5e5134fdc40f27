package cmd

import (
	"fmt"
	"os"

	"flamtunes/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flamtunes",
	Short: "Flam Tunes is an AI-hosted internet radio station backend.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
