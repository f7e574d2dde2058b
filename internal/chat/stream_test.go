package chat

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hybrid-brain/pkg/brainapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseHandler(frames ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frame := range frames {
			io.WriteString(w, frame)
			flusher.Flush()
		}
	}
}

func TestSessionAccumulatesAnswer(t *testing.T) {
	server := httptest.NewServer(sseHandler(
		"data: {\"type\":\"token\",\"token\":\"Go \"}\n\n",
		"data: {\"type\":\"token\",\"token\":\"rocks\"}\n\n",
		"data: {\"type\":\"sources\",\"sources\":[{\"id\":\"s1\",\"title\":\"Talk\",\"url\":\"https://youtu.be/a\"}]}\n\n",
		"data: {\"type\":\"done\"}\n\n",
	))
	defer server.Close()

	session := NewSession(brainapi.NewClient(server.URL), false)
	require.NoError(t, session.Ask(context.Background(), "is go good", ""))

	waitForStreamEnd(t, session)

	assert.Equal(t, "Go rocks", session.Answer())
	require.Len(t, session.Sources(), 1)
	assert.Equal(t, "Talk", session.Sources()[0].Title)
	assert.Empty(t, session.ErrMessage())

	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, "Go rocks", history[1].Content)
}

func TestMalformedFrameDoesNotCorruptAnswer(t *testing.T) {
	server := httptest.NewServer(sseHandler(
		"data: {\"type\":\"token\",\"token\":\"keep\"}\n\n",
		"data: {{{broken\n\n",
		"data: {\"type\":\"token\",\"token\":\" this\"}\n\n",
		"data: {\"type\":\"done\"}\n\n",
	))
	defer server.Close()

	session := NewSession(brainapi.NewClient(server.URL), false)
	require.NoError(t, session.Ask(context.Background(), "q", ""))
	waitForStreamEnd(t, session)

	assert.Equal(t, "keep this", session.Answer())
	assert.Empty(t, session.ErrMessage())
}

func TestErrorEventSurfaced(t *testing.T) {
	server := httptest.NewServer(sseHandler(
		"data: {\"type\":\"error\",\"message\":\"index unavailable\"}\n\n",
		"data: {\"type\":\"done\"}\n\n",
	))
	defer server.Close()

	session := NewSession(brainapi.NewClient(server.URL), true)
	require.NoError(t, session.Ask(context.Background(), "q", ""))
	waitForStreamEnd(t, session)

	assert.Equal(t, "index unavailable", session.ErrMessage())
}

func TestNewAskAbortsExactlyOnePriorStream(t *testing.T) {
	var cancelled atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		io.WriteString(w, "data: {\"type\":\"token\",\"token\":\"partial\"}\n\n")
		flusher.Flush()
		// Block until the client aborts this stream.
		<-r.Context().Done()
		cancelled.Add(1)
	}))
	defer server.Close()

	session := NewSession(brainapi.NewClient(server.URL), false)
	require.NoError(t, session.Ask(context.Background(), "first", ""))

	waitForAnswer(t, session, "partial")

	require.NoError(t, session.Ask(context.Background(), "second", ""))
	waitForAnswer(t, session, "partial")

	// Cancellation propagates to the server asynchronously.
	deadline := time.Now().Add(5 * time.Second)
	for cancelled.Load() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("expected exactly 1 aborted stream, got %d", cancelled.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}

	session.Abort()
	assert.False(t, session.Streaming())
	// An abort is not an error.
	assert.Empty(t, session.ErrMessage())
}

func waitForStreamEnd(t *testing.T, session *Session) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for session.Streaming() {
		if time.Now().After(deadline) {
			t.Fatal("stream never finished")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func waitForAnswer(t *testing.T, session *Session, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for session.Answer() != want {
		if time.Now().After(deadline) {
			t.Fatalf("answer never reached %q, got %q", want, session.Answer())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
