package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API health",
	Long: `Check the health status of the second-brain API.

Examples:
  # Check health
  brainctl health

  # Check a different deployment
  brainctl health --api http://localhost:8090/api`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := client.Health(ctx)
	if err != nil {
		color.Red("✘ unreachable: %v", err)
		return err
	}

	color.Green("✔ %s", status.Status)
	if status.Version != "" {
		fmt.Printf("version: %s\n", status.Version)
	}
	return nil
}
