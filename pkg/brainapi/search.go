package brainapi

import "context"

type SearchRequest struct {
	Query      string `json:"query"`
	CategoryId string `json:"category_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type SearchHit struct {
	Id      string  `json:"id"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float32 `json:"score"`
}

func (c *Client) Search(ctx context.Context, request SearchRequest) ([]SearchHit, error) {
	var hits []SearchHit
	if err := c.post(ctx, "/search", request, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}
