package brainapi

import (
	"context"
	"fmt"
)

const (
	categoriesCacheKey   = "categories"
	categoryTreeCacheKey = "categories:tree"
)

// Category is one node of the category tree. ParentId is nil for roots.
type Category struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	ParentId *string `json:"parent_id"`
}

// CategoryNode is a server-materialized tree node.
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children"`
}

// ListCategories returns the flat category list. Results are cached briefly,
// every mutating call invalidates the cache.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	if cached, found := c.cache.Get(categoriesCacheKey); found {
		return cached.([]Category), nil
	}

	var categories []Category
	if err := c.get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	c.cache.SetDefault(categoriesCacheKey, categories)
	return categories, nil
}

func (c *Client) CategoryTree(ctx context.Context) ([]CategoryNode, error) {
	if cached, found := c.cache.Get(categoryTreeCacheKey); found {
		return cached.([]CategoryNode), nil
	}

	var tree []CategoryNode
	if err := c.get(ctx, "/categories/tree", &tree); err != nil {
		return nil, err
	}
	c.cache.SetDefault(categoryTreeCacheKey, tree)
	return tree, nil
}

type CreateCategoryRequest struct {
	Name     string  `json:"name"`
	ParentId *string `json:"parent_id,omitempty"`
}

func (c *Client) CreateCategory(ctx context.Context, request CreateCategoryRequest) (*Category, error) {
	var category Category
	if err := c.post(ctx, "/categories", request, &category); err != nil {
		return nil, err
	}
	c.invalidateCategories()
	return &category, nil
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentId *string `json:"parent_id"`
}

func (c *Client) UpdateCategory(ctx context.Context, id string, request UpdateCategoryRequest) (*Category, error) {
	var category Category
	if err := c.put(ctx, "/categories/"+id, request, &category); err != nil {
		return nil, err
	}
	c.invalidateCategories()
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/categories/"+id); err != nil {
		return err
	}
	c.invalidateCategories()
	return nil
}

// ReparentCategory moves a category under a new parent. A nil parent moves
// it to the root. Cycle prevention is the caller's responsibility, the
// server rejects cycles too but only after a round trip.
func (c *Client) ReparentCategory(ctx context.Context, id string, parentId *string) (*Category, error) {
	request := UpdateCategoryRequest{ParentId: parentId}
	category, err := c.UpdateCategory(ctx, id, request)
	if err != nil {
		return nil, fmt.Errorf("reparent category %s: %w", id, err)
	}
	return category, nil
}

func (c *Client) invalidateCategories() {
	c.cache.Delete(categoriesCacheKey)
	c.cache.Delete(categoryTreeCacheKey)
}
