package brainapi

import (
	"context"
	"time"
)

// IndexStatus describes the vector index over the knowledge base.
type IndexStatus struct {
	TotalPages   int        `json:"total_pages"`
	IndexedPages int        `json:"indexed_pages"`
	Indexing     bool       `json:"indexing"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
}

type IndexedPage struct {
	Id        string     `json:"id"`
	Title     string     `json:"title"`
	Indexed   bool       `json:"indexed"`
	IndexedAt *time.Time `json:"indexed_at,omitempty"`
}

func (c *Client) IndexStatus(ctx context.Context) (*IndexStatus, error) {
	var status IndexStatus
	if err := c.get(ctx, "/index/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) IndexPages(ctx context.Context) ([]IndexedPage, error) {
	var pages []IndexedPage
	if err := c.get(ctx, "/index/pages", &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// TriggerIndex starts a full reindex run on the server.
func (c *Client) TriggerIndex(ctx context.Context) error {
	return c.post(ctx, "/index/trigger", nil, nil)
}

// IndexPage (re)indexes a single page.
func (c *Client) IndexPage(ctx context.Context, pageId string) error {
	return c.post(ctx, "/index/page/"+pageId, nil, nil)
}

// RemoveIndexedPage drops a page from the index.
func (c *Client) RemoveIndexedPage(ctx context.Context, pageId string) error {
	return c.delete(ctx, "/index/page/"+pageId)
}
