package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hybrid-brain/internal/chat"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the knowledge base a question",
	Long: `Ask a question and stream the answer token by token.

Examples:
  # Direct lookup
  brainctl ask "what did the video about Go generics conclude?"

  # Vector-similarity retrieval
  brainctl ask --semantic "tradeoffs of goroutine pools"

  # Restrict to a category
  brainctl ask --category <id> "summary of the kubernetes talks"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var (
	askSemantic bool
	askCategory string
)

func init() {
	askCmd.Flags().BoolVar(&askSemantic, "semantic", false, "use vector-similarity retrieval")
	askCmd.Flags().StringVar(&askCategory, "category", "", "restrict retrieval to one category id")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	session := chat.NewSession(client, askSemantic)
	if err := session.Ask(context.Background(), question, askCategory); err != nil {
		return err
	}

	// Poor man's live rendering: print whatever arrived since the last look.
	printed := 0
	for session.Streaming() {
		answer := session.Answer()
		if len(answer) > printed {
			fmt.Print(answer[printed:])
			printed = len(answer)
		}
		time.Sleep(50 * time.Millisecond)
	}
	answer := session.Answer()
	if len(answer) > printed {
		fmt.Print(answer[printed:])
	}
	fmt.Println()

	if msg := session.ErrMessage(); msg != "" {
		return fmt.Errorf("stream failed: %s", msg)
	}

	sources := session.Sources()
	if len(sources) > 0 {
		fmt.Println()
		color.New(color.Faint).Println("Sources:")
		for _, source := range sources {
			fmt.Printf("  - %s (%s)\n", source.Title, source.URL)
		}
	}
	return nil
}
