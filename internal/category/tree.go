// Package category builds and manipulates the client-side category tree.
// The one invariant that must hold before any reparent request is issued:
// a category may never become its own ancestor.
package category

import (
	"errors"

	"hybrid-brain/pkg/brainapi"
)

var (
	ErrNotFound       = errors.New("category not found")
	ErrCycle          = errors.New("cannot move a category under its own descendant")
	ErrReparentToSelf = errors.New("cannot move a category under itself")
)

// Node is one materialized tree node.
type Node struct {
	brainapi.Category
	Children []*Node
}

// BuildTree materializes the flat category list into a forest of roots.
// Nodes referencing a missing parent are treated as roots rather than
// dropped.
func BuildTree(categories []brainapi.Category) []*Node {
	byId := make(map[string]*Node, len(categories))
	for i := range categories {
		byId[categories[i].Id] = &Node{Category: categories[i]}
	}

	var roots []*Node
	for i := range categories {
		node := byId[categories[i].Id]
		if node.ParentId == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byId[*node.ParentId]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// Find locates a node by id anywhere in the forest.
func Find(roots []*Node, id string) *Node {
	for _, root := range roots {
		if found := FindInSubtree(root, id); found != nil {
			return found
		}
	}
	return nil
}

// FindInSubtree searches node and all its descendants for id.
func FindInSubtree(node *Node, id string) *Node {
	if node == nil {
		return nil
	}
	if node.Id == id {
		return node
	}
	for _, child := range node.Children {
		if found := FindInSubtree(child, id); found != nil {
			return found
		}
	}
	return nil
}

// ValidateReparent checks whether category id may be moved under newParentId
// without creating a cycle. A nil newParentId (move to root) is always
// allowed for an existing node. The check walks the dragged node's subtree,
// so an illegal drop is rejected without any network call.
func ValidateReparent(roots []*Node, id string, newParentId *string) error {
	node := Find(roots, id)
	if node == nil {
		return ErrNotFound
	}
	if newParentId == nil {
		return nil
	}
	if *newParentId == id {
		return ErrReparentToSelf
	}
	if Find(roots, *newParentId) == nil {
		return ErrNotFound
	}
	if FindInSubtree(node, *newParentId) != nil {
		return ErrCycle
	}
	return nil
}
