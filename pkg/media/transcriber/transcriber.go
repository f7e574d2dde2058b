package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Segment is one timestamped slice of a transcription.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is a completed transcription.
type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
}

// WordCount returns the number of whitespace-separated words in the transcript.
func (r *Result) WordCount() int {
	return len(strings.Fields(r.Text))
}

// Transcriber sends audio files to a Whisper-compatible HTTP service
// (e.g. a faster-whisper server) and parses the transcription response.
// The remote model is loaded lazily on first use; Load/Unload manage it
// explicitly to control memory on the inference host.
type Transcriber struct {
	BaseURL string
	Model   string
	Client  *http.Client

	mu     sync.Mutex
	loaded bool
}

func New(baseURL, model string) *Transcriber {
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}
	if model == "" {
		model = "small"
	}
	return &Transcriber{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 30 * time.Minute, // long audio takes long
		},
	}
}

type transcribeResponse struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
}

// Transcribe uploads an audio file and returns the parsed result.
// language may be empty for auto-detection.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string, language string, includeTimestamps bool) (*Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("audio file not found: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio_file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	_ = writer.WriteField("model", t.Model)
	if language != "" {
		_ = writer.WriteField("language", language)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	url := t.BaseURL + "/transcribe"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper returned %d: %s", resp.StatusCode, string(respBytes))
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return nil, fmt.Errorf("parse whisper response: %w", err)
	}

	t.mu.Lock()
	t.loaded = true
	t.mu.Unlock()

	result := &Result{
		Text:     parsed.Text,
		Segments: parsed.Segments,
		Language: parsed.Language,
		Duration: parsed.Duration,
	}
	if !includeTimestamps {
		result.Segments = nil
	}

	return result, nil
}

// Load asks the inference host to pre-load the model, reducing first-request latency.
func (t *Transcriber) Load(ctx context.Context, model string) error {
	if model == "" {
		model = t.Model
	}

	payload, _ := json.Marshal(map[string]string{"model": model})
	req, err := http.NewRequestWithContext(ctx, "POST", t.BaseURL+"/model/load", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper load failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whisper load returned %d: %s", resp.StatusCode, string(body))
	}

	t.mu.Lock()
	t.Model = model
	t.loaded = true
	t.mu.Unlock()

	return nil
}

// Unload releases the model on the inference host.
func (t *Transcriber) Unload(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "POST", t.BaseURL+"/model/unload", nil)
	if err != nil {
		return err
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper unload failed: %w", err)
	}
	defer resp.Body.Close()

	t.mu.Lock()
	t.loaded = false
	t.mu.Unlock()

	return nil
}

// IsLoaded reports whether a transcription has succeeded or the model was
// loaded explicitly since the last Unload.
func (t *Transcriber) IsLoaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}
