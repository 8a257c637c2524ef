package main

import (
	"github.com/spf13/cobra"
)

// rootCmd runs the API server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "health-record-api",
	Short: "Personal health record backend",
	Long: `Personal health record backend. Usage:

	health-record-api serve
	health-record-api ensure-indexes
`,
	SilenceUsage: true,
	RunE:         runServe,
}
