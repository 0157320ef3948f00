package doctree

import (
	"testing"
)

func TestNewAssignsFreshIDs(t *testing.T) {
	a, err := New(TypeHeader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(TypeHeader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if a.ID == "" || a.ID == b.ID {
		t.Error("expected distinct non-empty ids")
	}

	// Default children exist and carry their own fresh ids.
	if len(a.Children) == 0 {
		t.Fatal("expected header default children")
	}
	seen := map[string]bool{a.ID: true}
	Walk(a.Children, func(el Element, _ string) {
		if el.ID == "" {
			t.Error("default child without id")
		}
		if seen[el.ID] {
			t.Errorf("duplicate id %s", el.ID)
		}
		seen[el.ID] = true
	})
	Walk(b.Children, func(el Element, _ string) {
		if seen[el.ID] {
			t.Errorf("id %s shared between instances", el.ID)
		}
	})
}

func TestNewClonesDefaults(t *testing.T) {
	a, _ := New(TypeText)
	b, _ := New(TypeText)

	a.Content["text"] = "mutated"
	if b.ContentString("text") != "Text" {
		t.Error("instances share default content")
	}

	c, _ := New(TypeText)
	if c.ContentString("text") != "Text" {
		t.Error("registry default content was mutated")
	}

	a.Style.Font.Color = "#ff0000"
	if b.Style.Font.Color != "#1f2937" {
		t.Error("instances share default style")
	}
}

func TestNewUnknownType(t *testing.T) {
	if _, err := New(Type("widget")); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestNewValidates(t *testing.T) {
	// Every instantiable type must produce a tree that passes validation.
	for _, def := range Palette() {
		el, err := New(def.Type)
		if err != nil {
			t.Fatalf("New(%s): %v", def.Type, err)
		}
		if problems := Validate([]Element{el}); len(problems) != 0 {
			t.Errorf("New(%s) invalid: %v", def.Type, problems)
		}
	}
}

func TestPalette(t *testing.T) {
	palette := Palette()
	if len(palette) != len(registry) {
		t.Errorf("palette entries: got %d, want %d", len(palette), len(registry))
	}
	// Presentation order is stable: layout types lead.
	if palette[0].Type != TypeHeader {
		t.Errorf("first palette entry: got %s, want %s", palette[0].Type, TypeHeader)
	}
}

func TestContainmentInversion(t *testing.T) {
	// CanBeContainedIn is derived from CanContain; the two directions must
	// agree for every pairing.
	for childType, def := range registry {
		for _, parentType := range def.CanBeContainedIn {
			pdef, ok := Lookup(parentType)
			if !ok {
				t.Fatalf("%s lists unknown parent %s", childType, parentType)
			}
			if !pdef.Allows(childType) {
				t.Errorf("%s claims containment in %s, but %s does not allow it",
					childType, parentType, parentType)
			}
		}
	}
	for parentType, def := range registry {
		for _, childType := range def.CanContain {
			cdef, _ := Lookup(childType)
			found := false
			for _, p := range cdef.CanBeContainedIn {
				if p == parentType {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s allows %s, but %s does not list it", parentType, childType, childType)
			}
		}
	}
}
