package doctree

import (
	"reflect"
	"testing"
)

// sampleTree builds a small tree:
//
//	section (sec)
//	  container (box)
//	    text (t1)
//	    text (t2)
//	text (root-text)
func sampleTree() []Element {
	return []Element{
		{
			ID: "sec", Type: TypeSection,
			Children: []Element{
				{
					ID: "box", Type: TypeContainer,
					Children: []Element{
						{ID: "t1", Type: TypeText, Content: map[string]any{"text": "one"}},
						{ID: "t2", Type: TypeText, Content: map[string]any{"text": "two"}},
					},
				},
			},
		},
		{ID: "root-text", Type: TypeText, Content: map[string]any{"text": "root"}},
	}
}

func TestFindByID(t *testing.T) {
	tree := sampleTree()

	el, ok := FindByID(tree, "t2")
	if !ok {
		t.Fatal("expected to find t2")
	}
	if el.ContentString("text") != "two" {
		t.Errorf("content: got %q, want %q", el.ContentString("text"), "two")
	}

	// The returned element is a copy; mutating it must not touch the tree.
	el.Content["text"] = "mutated"
	again, _ := FindByID(tree, "t2")
	if again.ContentString("text") != "two" {
		t.Error("FindByID result shares state with the tree")
	}

	if _, ok := FindByID(tree, "nope"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestParentID(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		id     string
		parent string
		found  bool
	}{
		{"t1", "box", true},
		{"box", "sec", true},
		{"sec", "", true},
		{"root-text", "", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		parent, found := ParentID(tree, tt.id)
		if found != tt.found || parent != tt.parent {
			t.Errorf("ParentID(%q): got (%q, %v), want (%q, %v)",
				tt.id, parent, found, tt.parent, tt.found)
		}
	}
}

func TestUpdateByID(t *testing.T) {
	tree := sampleTree()

	updated := Element{ID: "t1", Type: TypeText, Content: map[string]any{"text": "changed"}}
	next := UpdateByID(tree, updated)

	el, _ := FindByID(next, "t1")
	if el.ContentString("text") != "changed" {
		t.Errorf("updated content: got %q", el.ContentString("text"))
	}

	// Original tree untouched.
	orig, _ := FindByID(tree, "t1")
	if orig.ContentString("text") != "one" {
		t.Error("UpdateByID mutated its input")
	}

	// Missing id returns the input unchanged, same backing slice.
	same := UpdateByID(tree, Element{ID: "ghost", Type: TypeText})
	if !reflect.DeepEqual(same, tree) {
		t.Error("expected identity for missing id")
	}
}

func TestRemoveByIDCascades(t *testing.T) {
	tree := sampleTree()

	next := RemoveByID(tree, "box")
	if ContainsID(next, "box") || ContainsID(next, "t1") || ContainsID(next, "t2") {
		t.Error("expected box and its subtree removed")
	}
	if got := CountNodes(next); got != 2 {
		t.Errorf("nodes after removal: got %d, want 2", got)
	}

	// Input unchanged.
	if got := CountNodes(tree); got != 5 {
		t.Errorf("input nodes: got %d, want 5", got)
	}

	same := RemoveByID(tree, "ghost")
	if !reflect.DeepEqual(same, tree) {
		t.Error("expected identity for missing id")
	}
}

func TestInsert(t *testing.T) {
	tree := sampleTree()

	t.Run("at index", func(t *testing.T) {
		el := Element{ID: "new", Type: TypeText}
		next, ok := Insert(tree, "box", 1, el)
		if !ok {
			t.Fatal("insert failed")
		}
		box, _ := FindByID(next, "box")
		if len(box.Children) != 3 || box.Children[1].ID != "new" {
			t.Errorf("expected new at index 1, got %+v", box.Children)
		}
	})

	t.Run("append on out-of-range index", func(t *testing.T) {
		el := Element{ID: "new", Type: TypeText}
		next, ok := Insert(tree, "box", 99, el)
		if !ok {
			t.Fatal("insert failed")
		}
		box, _ := FindByID(next, "box")
		if box.Children[len(box.Children)-1].ID != "new" {
			t.Error("expected append for out-of-range index")
		}
	})

	t.Run("root", func(t *testing.T) {
		el := Element{ID: "new", Type: TypeHeader}
		next, ok := Insert(tree, "", 0, el)
		if !ok {
			t.Fatal("insert failed")
		}
		if next[0].ID != "new" {
			t.Error("expected new at root index 0")
		}
	})

	t.Run("containment violation", func(t *testing.T) {
		// A text element is a leaf; nothing can be inserted into it.
		el := Element{ID: "new", Type: TypeText}
		next, ok := Insert(tree, "t1", 0, el)
		if ok {
			t.Fatal("expected insert into leaf to fail")
		}
		if !reflect.DeepEqual(next, tree) {
			t.Error("failed insert changed the tree")
		}
	})

	t.Run("disallowed child type", func(t *testing.T) {
		// Headers do not accept tables.
		header := []Element{{ID: "h", Type: TypeHeader}}
		next, ok := Insert(header, "h", 0, Element{ID: "tbl", Type: TypeTable})
		if ok {
			t.Fatal("expected header to reject table")
		}
		if !reflect.DeepEqual(next, header) {
			t.Error("failed insert changed the tree")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, ok := Insert(tree, "box", 0, Element{ID: "x", Type: Type("widget")})
		if ok {
			t.Error("expected unknown type to be rejected")
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		_, ok := Insert(tree, "ghost", 0, Element{ID: "x", Type: TypeText})
		if ok {
			t.Error("expected missing parent to fail")
		}
	})
}

func TestReorder(t *testing.T) {
	tree := sampleTree()

	t.Run("down then up", func(t *testing.T) {
		next, ok := Reorder(tree, "t1", MoveDown)
		if !ok {
			t.Fatal("expected move")
		}
		box, _ := FindByID(next, "box")
		if box.Children[0].ID != "t2" || box.Children[1].ID != "t1" {
			t.Errorf("after down: %s, %s", box.Children[0].ID, box.Children[1].ID)
		}

		back, ok := Reorder(next, "t1", MoveUp)
		if !ok {
			t.Fatal("expected move")
		}
		box, _ = FindByID(back, "box")
		if box.Children[0].ID != "t1" {
			t.Error("expected t1 back at index 0")
		}
	})

	t.Run("boundary is a no-op", func(t *testing.T) {
		if _, ok := Reorder(tree, "t1", MoveUp); ok {
			t.Error("up at the top should not move")
		}
		if _, ok := Reorder(tree, "t2", MoveDown); ok {
			t.Error("down at the bottom should not move")
		}
		if _, ok := Reorder(tree, "t1", MoveFirst); ok {
			t.Error("first while first should not move")
		}
	})

	t.Run("first and last", func(t *testing.T) {
		three := []Element{
			{ID: "a", Type: TypeText},
			{ID: "b", Type: TypeText},
			{ID: "c", Type: TypeText},
		}
		next, ok := Reorder(three, "c", MoveFirst)
		if !ok || next[0].ID != "c" || next[1].ID != "a" || next[2].ID != "b" {
			t.Errorf("after first: %v", []string{next[0].ID, next[1].ID, next[2].ID})
		}
		next, ok = Reorder(three, "a", MoveLast)
		if !ok || next[0].ID != "b" || next[1].ID != "c" || next[2].ID != "a" {
			t.Errorf("after last: %v", []string{next[0].ID, next[1].ID, next[2].ID})
		}
	})

	t.Run("node count preserved", func(t *testing.T) {
		next, _ := Reorder(tree, "t1", MoveDown)
		if CountNodes(next) != CountNodes(tree) {
			t.Error("reorder changed node count")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, ok := Reorder(tree, "ghost", MoveDown); ok {
			t.Error("expected false for missing id")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid tree", func(t *testing.T) {
		if problems := Validate(sampleTree()); len(problems) != 0 {
			t.Errorf("unexpected problems: %v", problems)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		tree := []Element{{ID: "a", Type: Type("widget")}}
		problems := Validate(tree)
		if len(problems) != 1 {
			t.Fatalf("problems: %v", problems)
		}
	})

	t.Run("duplicate and missing ids", func(t *testing.T) {
		tree := []Element{
			{ID: "a", Type: TypeText},
			{ID: "a", Type: TypeText},
			{Type: TypeText},
		}
		problems := Validate(tree)
		if len(problems) != 2 {
			t.Fatalf("problems: %v", problems)
		}
	})

	t.Run("containment violation", func(t *testing.T) {
		tree := []Element{
			{ID: "h", Type: TypeHeader, Children: []Element{
				{ID: "tbl", Type: TypeTable},
			}},
		}
		problems := Validate(tree)
		if len(problems) != 1 {
			t.Fatalf("problems: %v", problems)
		}
	})

	t.Run("leaf with children", func(t *testing.T) {
		tree := []Element{
			{ID: "t", Type: TypeText, Children: []Element{
				{ID: "x", Type: TypeText},
			}},
		}
		problems := Validate(tree)
		if len(problems) != 1 {
			t.Fatalf("problems: %v", problems)
		}
	})

	t.Run("column layout below minimum children", func(t *testing.T) {
		tree := []Element{
			{ID: "cols", Type: TypeColumnLayout, Children: []Element{
				{ID: "only", Type: TypeContainer},
			}},
		}
		problems := Validate(tree)
		if len(problems) != 1 {
			t.Fatalf("problems: %v", problems)
		}

		// A fresh instance carries enough default children to be valid.
		el, err := New(TypeColumnLayout)
		if err != nil {
			t.Fatal(err)
		}
		if problems := Validate([]Element{el}); len(problems) != 0 {
			t.Errorf("fresh column layout: %v", problems)
		}
	})
}
