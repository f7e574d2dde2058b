package brainapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"hybrid-brain/pkg/sse"
)

// StreamEvent is one decoded frame of an SSE endpoint. Type is the
// discriminator: token, sources, status, done or error.
type StreamEvent struct {
	Type     string          `json:"type"`
	Token    string          `json:"token,omitempty"`
	Status   string          `json:"status,omitempty"`
	Progress int             `json:"progress,omitempty"`
	Message  string          `json:"message,omitempty"`
	Sources  []Source        `json:"sources,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Source is a cited document attached to a streamed answer.
type Source struct {
	Id    string  `json:"id"`
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float32 `json:"score,omitempty"`
}

// Stream is a live SSE connection. Recv blocks until the next well-formed
// event arrives; malformed data lines are skipped silently. Close aborts
// the underlying request, which Recv then reports as the context error.
type Stream struct {
	body    io.ReadCloser
	decoder *sse.Decoder
	cancel  context.CancelFunc
}

// Recv returns the next event. io.EOF means the server closed the stream
// cleanly without a done event.
func (s *Stream) Recv() (*StreamEvent, error) {
	for {
		payload, err := s.decoder.Next()
		if err != nil {
			return nil, err
		}
		var event StreamEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			// Skip malformed frames, already-received content stays intact.
			continue
		}
		return &event, nil
	}
}

func (s *Stream) Close() error {
	s.cancel()
	return s.body.Close()
}

// openStream issues a GET and hands back the response body as an SSE stream.
// The returned Stream owns a derived context so Close cancels only this
// request, not the caller's context.
func (c *Client) openStream(ctx context.Context, path string, query url.Values) (*Stream, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// Streaming responses must not be bounded by the default client timeout.
	streamClient := &http.Client{Transport: c.httpClient.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return &Stream{
		body:    resp.Body,
		decoder: sse.NewDecoder(resp.Body),
		cancel:  cancel,
	}, nil
}
