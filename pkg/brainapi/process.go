package brainapi

import (
	"context"
	"net/url"
)

type ProcessRequest struct {
	URL        string `json:"url"`
	CategoryId string `json:"category_id,omitempty"`
	Summarize  bool   `json:"summarize"`
}

type ProcessResult struct {
	JobId      string `json:"job_id"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
}

// Process submits a URL for synchronous processing.
func (c *Client) Process(ctx context.Context, request ProcessRequest) (*ProcessResult, error) {
	var result ProcessResult
	if err := c.post(ctx, "/process", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProcessStreamPreview opens an SSE stream of processing progress: status
// frames as the pipeline advances, token frames while summarizing, and a
// final done frame with the result.
func (c *Client) ProcessStreamPreview(ctx context.Context, videoURL, categoryId string) (*Stream, error) {
	query := url.Values{}
	query.Set("url", videoURL)
	if categoryId != "" {
		query.Set("category_id", categoryId)
	}
	return c.openStream(ctx, "/process/stream-preview", query)
}

type SaveProcessedRequest struct {
	JobId      string   `json:"job_id"`
	CategoryId string   `json:"category_id,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// SaveProcessed persists a previewed result into the knowledge base.
func (c *Client) SaveProcessed(ctx context.Context, request SaveProcessedRequest) error {
	return c.post(ctx, "/process/save", request, nil)
}
