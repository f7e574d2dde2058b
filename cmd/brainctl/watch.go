package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hybrid-brain/internal/jobs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live job dashboard in the terminal",
	Long: `Watch background jobs in a continuously refreshing terminal view.
Polling only runs while at least one job is still processing; once all jobs
settle the view stays up but the API is left alone.

Examples:
  # Watch jobs
  brainctl watch`,
	RunE: runWatch,
}

var watchInterval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Second, "poll interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	watcher := jobs.NewWatcher(client, watchInterval)
	go watcher.Start(ctx)

	render := time.NewTicker(time.Second)
	defer render.Stop()

	renderJobs(watcher)
	for {
		select {
		case <-sigCh:
			cancel()
			watcher.Wait()
			fmt.Print("\033[?25h") // show cursor
			return nil
		case <-render.C:
			renderJobs(watcher)
		}
	}
}

func renderJobs(watcher *jobs.Watcher) {
	var sb strings.Builder

	// Clear screen, move cursor to top-left, hide cursor
	sb.WriteString("\033[2J\033[H\033[?25l")

	sb.WriteString("  ")
	sb.WriteString(color.New(color.FgCyan, color.Bold).Sprint("brainctl"))
	sb.WriteString(color.New(color.Faint).Sprint(" — job watcher"))
	sb.WriteString("\n\n")

	if err := watcher.Err(); err != nil {
		sb.WriteString("  ")
		sb.WriteString(color.RedString("poll error: %v", err))
		sb.WriteString("\n\n")
	}

	list := watcher.Jobs()
	if len(list) == 0 {
		sb.WriteString("  ")
		sb.WriteString(color.New(color.Faint).Sprint("no jobs"))
		sb.WriteString("\n")
	}

	active := 0
	for _, job := range list {
		if !job.Status.IsTerminal() {
			active++
		}
		title := job.Title
		if title == "" {
			title = job.URL
		}
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s  %s %s %s\n",
			shortId(job.Id),
			statusColor(job.Status).Sprintf("%-13s", job.Status),
			progressBar(job.Progress),
			title,
		))
	}

	sb.WriteString("\n  ")
	if active > 0 {
		sb.WriteString(color.YellowString("%d active", active))
		sb.WriteString(color.New(color.Faint).Sprint(" · polling"))
	} else {
		sb.WriteString(color.New(color.Faint).Sprint("all settled · polling paused"))
	}
	sb.WriteString(color.New(color.Faint).Sprint("  Ctrl-C to quit"))
	sb.WriteString("\n")

	fmt.Print(sb.String())
}

func progressBar(progress int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress / 10
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "]"
}
