package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rise-and-shine/flatbread/logger"
)

var rootCmd = &cobra.Command{
	Use:   "flatbread",
	Short: "Flatbread prints readouts while building tables",
	Long: `Flatbread runs table-building steps and prints diagnostic readouts around them:
messages, column aggregates, table shapes and timings.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = logger.Sync()
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
