package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hybrid-brain/internal/category"
	"hybrid-brain/pkg/brainapi"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show and reorganize the category tree",
	Long: `Show the category tree, create categories, or move one under a new
parent. Moves are validated locally first: a category can never be moved
under one of its own descendants, and an illegal move is rejected without
touching the API.

Examples:
  # Show the tree
  brainctl categories

  # Create a root category
  brainctl categories --create "Engineering"

  # Create a child
  brainctl categories --create "Go" --parent <id>

  # Move a category (empty parent moves it to the root)
  brainctl categories --move <id> --parent <new-parent-id>`,
	RunE: runCategories,
}

var (
	categoryCreate string
	categoryMove   string
	categoryParent string
)

func init() {
	categoriesCmd.Flags().StringVar(&categoryCreate, "create", "", "create a category with this name")
	categoriesCmd.Flags().StringVar(&categoryMove, "move", "", "move the category with this id")
	categoriesCmd.Flags().StringVar(&categoryParent, "parent", "", "parent category id for --create/--move")
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if categoryCreate != "" {
		return createCategory(ctx)
	}
	if categoryMove != "" {
		return moveCategory(ctx)
	}
	return showTree(ctx)
}

func createCategory(ctx context.Context) error {
	request := brainapi.CreateCategoryRequest{Name: categoryCreate}
	if categoryParent != "" {
		request.ParentId = &categoryParent
	}

	created, err := client.CreateCategory(ctx, request)
	if err != nil {
		return err
	}
	fmt.Printf("Created category %s (%s)\n", created.Name, created.Id)
	return nil
}

func moveCategory(ctx context.Context) error {
	categories, err := client.ListCategories(ctx)
	if err != nil {
		return err
	}
	roots := category.BuildTree(categories)

	var newParent *string
	if categoryParent != "" {
		newParent = &categoryParent
	}

	if err := category.ValidateReparent(roots, categoryMove, newParent); err != nil {
		return fmt.Errorf("move rejected: %w", err)
	}

	if _, err := client.ReparentCategory(ctx, categoryMove, newParent); err != nil {
		return err
	}
	fmt.Println("Category moved.")
	return showTree(ctx)
}

func showTree(ctx context.Context) error {
	categories, err := client.ListCategories(ctx)
	if err != nil {
		return err
	}
	roots := category.BuildTree(categories)
	if len(roots) == 0 {
		fmt.Println("No categories.")
		return nil
	}
	for _, root := range roots {
		printNode(root, 0)
	}
	return nil
}

func printNode(node *category.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s\n", indent, node.Name, color.New(color.Faint).Sprintf("(%s)", node.Id))
	for _, child := range node.Children {
		printNode(child, depth+1)
	}
}
