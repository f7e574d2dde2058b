package main

import (
	"context"
	"fmt"
	"time"

	"hybrid-brain/pkg/brainapi"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List background processing jobs",
	Long: `List all background processing jobs with their status and progress.

Examples:
  # List jobs
  brainctl jobs

  # Show aggregate stats
  brainctl jobs --stats`,
	RunE: runJobs,
}

var (
	jobsShowStats bool
	jobsRetryId   string
	jobsDeleteId  string
)

func init() {
	jobsCmd.Flags().BoolVar(&jobsShowStats, "stats", false, "show aggregate job stats instead of the list")
	jobsCmd.Flags().StringVar(&jobsRetryId, "retry", "", "re-queue the job with this id")
	jobsCmd.Flags().StringVar(&jobsDeleteId, "delete", "", "delete the job with this id")
}

func runJobs(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if jobsRetryId != "" {
		job, err := client.RetryJob(ctx, jobsRetryId)
		if err != nil {
			return err
		}
		fmt.Printf("Job %s re-queued (status: %s)\n", job.Id, job.Status)
		return nil
	}

	if jobsDeleteId != "" {
		if err := client.DeleteJob(ctx, jobsDeleteId); err != nil {
			return err
		}
		fmt.Printf("Job %s deleted\n", jobsDeleteId)
		return nil
	}

	if jobsShowStats {
		stats, err := client.JobStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Total: %d  Active: %d  Completed: %d  Failed: %d\n",
			stats.Total, stats.Active, stats.Completed, stats.Failed)
		return nil
	}

	jobs, err := client.ListJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs.")
		return nil
	}
	for _, job := range jobs {
		printJob(job)
	}
	return nil
}

func printJob(job brainapi.ProcessingJob) {
	statusText := statusColor(job.Status).Sprintf("%-13s", job.Status)
	title := job.Title
	if title == "" {
		title = job.URL
	}
	fmt.Printf("%s  %s %3d%%  %s\n", shortId(job.Id), statusText, job.Progress, title)
	if job.Error != "" {
		color.Red("            %s", job.Error)
	}
}

func shortId(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusColor(status brainapi.JobStatus) *color.Color {
	switch status {
	case brainapi.JobStatusFailed:
		return color.New(color.FgRed)
	case brainapi.JobStatusReady, brainapi.JobStatusSaved:
		return color.New(color.FgGreen)
	case brainapi.JobStatusPending:
		return color.New(color.FgWhite)
	default:
		return color.New(color.FgYellow)
	}
}
