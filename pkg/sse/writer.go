package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
)

// WriteJSON writes one "data: <json>\n\n" frame and flushes it so the
// client sees the event immediately.
func WriteJSON(w *bufio.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal sse payload: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

// WriteComment writes a ": <text>" comment frame. Used as a keepalive so
// idle streams aren't dropped by intermediaries.
func WriteComment(w *bufio.Writer, text string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", text); err != nil {
		return err
	}
	return w.Flush()
}
