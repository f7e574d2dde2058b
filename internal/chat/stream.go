// Package chat consumes streaming answers from the ask endpoints and
// accumulates them into a conversation buffer. At most one stream is active
// per Session; starting a new one aborts the previous stream first.
package chat

import (
	"context"
	"errors"
	"io"
	"sync"

	"hybrid-brain/pkg/brainapi"
)

// StreamOpener abstracts the API client so tests can inject canned streams.
type StreamOpener interface {
	AskStream(ctx context.Context, question, categoryId string) (*brainapi.Stream, error)
	AskSemanticStream(ctx context.Context, question, categoryId string) (*brainapi.Stream, error)
}

// Message is one completed turn of the conversation.
type Message struct {
	Role    string
	Content string
	Sources []brainapi.Source
}

// Session accumulates one streamed answer at a time. Readers may inspect
// the partial answer while the consumer goroutine appends to it.
type Session struct {
	opener   StreamOpener
	semantic bool

	mu       sync.Mutex
	history  []Message
	answer   string
	sources  []brainapi.Source
	errMsg   string
	active   *brainapi.Stream
	cancel   context.CancelFunc
	streamWg sync.WaitGroup
}

func NewSession(opener StreamOpener, semantic bool) *Session {
	return &Session{opener: opener, semantic: semantic}
}

// Ask aborts any in-flight stream, resets the answer buffer and starts
// consuming a new one. It returns once the stream is open; consumption
// continues in the background until done, error or abort.
func (s *Session) Ask(ctx context.Context, question, categoryId string) error {
	s.Abort()

	streamCtx, cancel := context.WithCancel(ctx)

	var stream *brainapi.Stream
	var err error
	if s.semantic {
		stream, err = s.opener.AskSemanticStream(streamCtx, question, categoryId)
	} else {
		stream, err = s.opener.AskStream(streamCtx, question, categoryId)
	}
	if err != nil {
		cancel()
		s.mu.Lock()
		s.errMsg = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.history = append(s.history, Message{Role: "user", Content: question})
	s.answer = ""
	s.sources = nil
	s.errMsg = ""
	s.active = stream
	s.cancel = cancel
	s.mu.Unlock()

	s.streamWg.Add(1)
	go s.consume(streamCtx, stream)
	return nil
}

func (s *Session) consume(ctx context.Context, stream *brainapi.Stream) {
	defer s.streamWg.Done()
	defer stream.Close()

	for {
		event, err := stream.Recv()
		if err != nil {
			s.mu.Lock()
			if errors.Is(err, io.EOF) || errors.Is(ctx.Err(), context.Canceled) {
				// A cleanly closed or aborted stream is not an error state,
				// whatever accumulated so far stays visible.
				s.finishLocked()
			} else {
				s.errMsg = err.Error()
			}
			s.clearActiveLocked(stream)
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		switch event.Type {
		case "token":
			s.answer += event.Token
		case "sources":
			s.sources = event.Sources
		case "error":
			s.errMsg = event.Message
		case "done":
			s.finishLocked()
			s.clearActiveLocked(stream)
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// finishLocked promotes the accumulated answer into the history.
func (s *Session) finishLocked() {
	if s.answer == "" && len(s.sources) == 0 {
		return
	}
	s.history = append(s.history, Message{
		Role:    "assistant",
		Content: s.answer,
		Sources: s.sources,
	})
}

func (s *Session) clearActiveLocked(stream *brainapi.Stream) {
	if s.active == stream {
		s.active = nil
		s.cancel = nil
	}
}

// Abort cancels the in-flight stream, if any, and waits for its consumer to
// settle. Aborting is not an error: the partial answer is kept.
func (s *Session) Abort() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.streamWg.Wait()
}

// Answer returns the partial or complete text of the current answer.
func (s *Session) Answer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer
}

func (s *Session) Sources() []brainapi.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	sources := make([]brainapi.Source, len(s.sources))
	copy(sources, s.sources)
	return sources
}

func (s *Session) ErrMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]Message, len(s.history))
	copy(history, s.history)
	return history
}

// Streaming reports whether a stream is currently being consumed.
func (s *Session) Streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}
