package brainapi

import (
	"context"
	"net/url"
)

type AskRequest struct {
	Question   string `json:"question"`
	CategoryId string `json:"category_id,omitempty"`
}

type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Ask sends a question and waits for the complete answer.
func (c *Client) Ask(ctx context.Context, request AskRequest) (*AskResponse, error) {
	var response AskResponse
	if err := c.post(ctx, "/ask", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// AskStream opens a streaming answer. The caller must Close the stream.
func (c *Client) AskStream(ctx context.Context, question, categoryId string) (*Stream, error) {
	query := url.Values{}
	query.Set("q", question)
	if categoryId != "" {
		query.Set("category_id", categoryId)
	}
	return c.openStream(ctx, "/ask/stream", query)
}

// AskSemanticStream is AskStream backed by vector similarity retrieval
// instead of direct lookup.
func (c *Client) AskSemanticStream(ctx context.Context, question, categoryId string) (*Stream, error) {
	query := url.Values{}
	query.Set("q", question)
	if categoryId != "" {
		query.Set("category_id", categoryId)
	}
	return c.openStream(ctx, "/ask/semantic/stream", query)
}
