// Package main implements the brainctl CLI for manual operations against the
// second-brain HTTP API and the media worker.
package main

import (
	"os"

	"hybrid-brain/internal/config"
	"hybrid-brain/pkg/brainapi"

	"github.com/spf13/cobra"
)

var (
	// apiURL is the base URL for the second-brain API
	apiURL string
	// version information
	version = "dev"

	client *brainapi.Client
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brainctl",
	Short: "CLI for the second-brain API",
	Long: `brainctl is a command-line interface for the second-brain assistant.
It submits videos for processing, watches background jobs, asks questions
against the knowledge base and manages the category tree.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if apiURL == "" {
			apiURL = config.Load().Client.APIBaseURL
		}
		client = brainapi.NewClient(apiURL)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "second-brain API base URL (default from BRAIN_API_URL)")
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(healthCmd)
}
