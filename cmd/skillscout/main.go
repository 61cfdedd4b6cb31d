// Package main provides the skillscout CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:          "skillscout",
	Short:        "Job and tutorial video search",
	Long:         "skillscout finds remote job listings and tutorial videos for a skill, over HTTP or from the command line.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", formatJSON, "Output format: json or text")
	rootCmd.PersistentPreRunE = checkFormat
}

func checkFormat(_ *cobra.Command, _ []string) error {
	switch outputFormat {
	case formatJSON, formatText:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", outputFormat, formatJSON, formatText)
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
