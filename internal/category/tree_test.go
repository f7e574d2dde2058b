package category

import (
	"errors"
	"testing"

	"hybrid-brain/pkg/brainapi"
)

func ptr(s string) *string { return &s }

// fixture:
//
//	a
//	├── b
//	│   └── d
//	└── c
//	e
func fixture() []*Node {
	return BuildTree([]brainapi.Category{
		{Id: "a", Name: "A"},
		{Id: "b", Name: "B", ParentId: ptr("a")},
		{Id: "c", Name: "C", ParentId: ptr("a")},
		{Id: "d", Name: "D", ParentId: ptr("b")},
		{Id: "e", Name: "E"},
	})
}

func TestBuildTree(t *testing.T) {
	roots := fixture()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	a := Find(roots, "a")
	if a == nil || len(a.Children) != 2 {
		t.Fatalf("node a missing or wrong child count")
	}
	if FindInSubtree(a, "d") == nil {
		t.Error("d must be reachable inside a's subtree")
	}
	if FindInSubtree(a, "e") != nil {
		t.Error("e is a separate root, not in a's subtree")
	}
}

func TestBuildTreeOrphanBecomesRoot(t *testing.T) {
	roots := BuildTree([]brainapi.Category{
		{Id: "x", Name: "X", ParentId: ptr("missing")},
	})
	if len(roots) != 1 || roots[0].Id != "x" {
		t.Fatal("orphaned node must be promoted to root, not dropped")
	}
}

func TestValidateReparent(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		newParent *string
		wantErr   error
	}{
		{"valid sibling move", "c", ptr("b"), nil},
		{"move to root", "d", nil, nil},
		{"onto own child", "a", ptr("b"), ErrCycle},
		{"onto deep descendant", "a", ptr("d"), ErrCycle},
		{"onto itself", "b", ptr("b"), ErrReparentToSelf},
		{"unknown node", "zzz", ptr("a"), ErrNotFound},
		{"unknown parent", "b", ptr("zzz"), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReparent(fixture(), tt.id, tt.newParent)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
