package cmd

import (
	"flamtunes/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Flam Tunes HTTP server",
	Long:  `Start the HTTP server serving the listener site, artist back office, admin back office and the orchestrator ingestion endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
