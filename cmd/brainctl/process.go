package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"hybrid-brain/internal/progress"
	"hybrid-brain/pkg/media"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <url>",
	Short: "Submit a video URL for processing",
	Long: `Submit a YouTube or Instagram URL and follow the processing pipeline
live over SSE: download, transcription, summarization, and the final result.
The URL is validated locally before anything is sent.

Examples:
  # Process a video and watch progress
  brainctl process https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # File the result under a category
  brainctl process --category <id> https://youtu.be/abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

var processCategory string

func init() {
	processCmd.Flags().StringVar(&processCategory, "category", "", "category id to file the result under")
}

func runProcess(cmd *cobra.Command, args []string) error {
	videoURL := args[0]
	if !media.ValidateURL(videoURL) {
		return errors.New("not a supported video URL (expected a YouTube or Instagram link)")
	}

	stream, err := client.ProcessStreamPreview(context.Background(), videoURL, processCategory)
	if err != nil {
		return err
	}
	defer stream.Close()

	machine := progress.NewMachine()

	for {
		event, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			machine.Fail(err.Error())
			return fmt.Errorf("stream broke: %w", err)
		}

		switch event.Type {
		case "status":
			if machine.Apply(event.Status, event.Progress) {
				color.New(color.FgCyan).Printf("→ %s\n", machine.State())
			}
		case "token":
			fmt.Print(event.Token)
		case "error":
			machine.Fail(event.Message)
			return fmt.Errorf("processing failed: %s", event.Message)
		case "done":
			machine.Apply(string(progress.StateDone), 100)
			fmt.Println()
			color.Green("✔ done")
			return nil
		}
	}

	if machine.State() != progress.StateDone {
		return errors.New("stream ended before processing finished")
	}
	return nil
}
