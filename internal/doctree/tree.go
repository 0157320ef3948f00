// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// tree.go contains the pure operations over the root element sequence:
// lookup, replace, delete, insert, and sibling reordering. Every operation
// is copy-on-write along the affected path and shares untouched subtrees
// with its input. Operating on an id that no longer exists is a no-op, not
// an error — the editor must never crash on a stale selection reference.

package doctree

import "strconv"

// Direction names the four sibling reorder moves.
type Direction string

const (
	MoveUp    Direction = "up"
	MoveDown  Direction = "down"
	MoveFirst Direction = "first"
	MoveLast  Direction = "last"
)

// FindByID returns a deep copy of the element with the given id, searching
// depth-first through every container. The copy keeps retained snapshots
// safe from caller mutation.
func FindByID(elements []Element, id string) (Element, bool) {
	for i := range elements {
		if elements[i].ID == id {
			return elements[i].Clone(), true
		}
		if found, ok := FindByID(elements[i].Children, id); ok {
			return found, true
		}
	}
	return Element{}, false
}

// ContainsID reports whether the id occurs anywhere in the tree.
func ContainsID(elements []Element, id string) bool {
	for i := range elements {
		if elements[i].ID == id {
			return true
		}
		if ContainsID(elements[i].Children, id) {
			return true
		}
	}
	return false
}

// ParentID returns the id of the element that directly contains id, or ""
// when the element sits at the root. Parent lookup is always this derived
// search — no back-reference is ever stored on an element.
func ParentID(elements []Element, id string) (string, bool) {
	return parentIn(elements, "", id)
}

func parentIn(elements []Element, parent, id string) (string, bool) {
	for i := range elements {
		if elements[i].ID == id {
			return parent, true
		}
		if p, ok := parentIn(elements[i].Children, elements[i].ID, id); ok {
			return p, true
		}
	}
	return "", false
}

// UpdateByID replaces the element whose id matches updated.ID, wherever it
// occurs, preserving siblings and unrelated subtrees. Returns the input
// unchanged when the id is absent.
func UpdateByID(elements []Element, updated Element) []Element {
	if !ContainsID(elements, updated.ID) {
		return elements
	}
	out := make([]Element, len(elements))
	for i := range elements {
		if elements[i].ID == updated.ID {
			out[i] = updated.Clone()
			continue
		}
		el := elements[i]
		el.Children = UpdateByID(el.Children, updated)
		out[i] = el
	}
	return out
}

// RemoveByID deletes the element and its entire subtree. Returns the input
// unchanged when the id is absent.
func RemoveByID(elements []Element, id string) []Element {
	if !ContainsID(elements, id) {
		return elements
	}
	out := make([]Element, 0, len(elements))
	for i := range elements {
		if elements[i].ID == id {
			continue
		}
		el := elements[i]
		el.Children = RemoveByID(el.Children, id)
		out = append(out, el)
	}
	return out
}

// Insert places el into the children of parentID at the given index
// (negative or out-of-range index appends). An empty parentID targets the
// root sequence. Insertion into a parent whose registry entry does not
// allow el's type fails with the tree unchanged — the containment
// constraint is enforced on every insert, not just at creation.
func Insert(elements []Element, parentID string, index int, el Element) ([]Element, bool) {
	if !KnownType(el.Type) {
		return elements, false
	}
	if parentID == "" {
		return insertAt(elements, index, el), true
	}
	if !ContainsID(elements, parentID) {
		return elements, false
	}

	allowed := true
	out := insertInto(elements, parentID, index, el, &allowed)
	if !allowed {
		return elements, false
	}
	return out, true
}

func insertInto(elements []Element, parentID string, index int, el Element, allowed *bool) []Element {
	out := make([]Element, len(elements))
	for i := range elements {
		node := elements[i]
		if node.ID == parentID {
			def, ok := Lookup(node.Type)
			if !ok || !def.Allows(el.Type) {
				*allowed = false
				return elements
			}
			if def.MaxChildren >= 0 && len(node.Children) >= def.MaxChildren {
				*allowed = false
				return elements
			}
			node.Children = insertAt(node.Children, index, el)
			out[i] = node
			continue
		}
		node.Children = insertInto(node.Children, parentID, index, el, allowed)
		out[i] = node
	}
	return out
}

// insertAt splices el into a copy of list at index, appending when the
// index is negative or past the end.
func insertAt(list []Element, index int, el Element) []Element {
	if index < 0 || index > len(list) {
		index = len(list)
	}
	out := make([]Element, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, el)
	out = append(out, list[index:]...)
	return out
}

// Reorder repositions an element within whichever sibling list contains it:
// up/down swap with the adjacent sibling, and first/last splice to the
// respective end. The second return is false for a boundary move (up at
// the top, down at the bottom, already first/last) and for a missing id,
// with the input returned unchanged.
func Reorder(elements []Element, id string, dir Direction) ([]Element, bool) {
	if !ContainsID(elements, id) {
		return elements, false
	}
	return reorderIn(elements, id, dir)
}

func reorderIn(elements []Element, id string, dir Direction) ([]Element, bool) {
	for i := range elements {
		if elements[i].ID == id {
			return reorderList(elements, i, dir)
		}
	}
	moved := false
	out := make([]Element, len(elements))
	for i := range elements {
		el := elements[i]
		if !moved {
			if next, ok := reorderIn(el.Children, id, dir); ok {
				el.Children = next
				moved = true
			}
		}
		out[i] = el
	}
	if !moved {
		return elements, false
	}
	return out, true
}

func reorderList(list []Element, i int, dir Direction) ([]Element, bool) {
	switch dir {
	case MoveUp, MoveFirst:
		if i == 0 {
			return list, false
		}
	case MoveDown, MoveLast:
		if i == len(list)-1 {
			return list, false
		}
	}
	out := make([]Element, len(list))
	copy(out, list)
	switch dir {
	case MoveUp:
		out[i-1], out[i] = out[i], out[i-1]
	case MoveDown:
		out[i], out[i+1] = out[i+1], out[i]
	case MoveFirst:
		el := out[i]
		copy(out[1:i+1], out[:i])
		out[0] = el
	case MoveLast:
		el := out[i]
		copy(out[i:], out[i+1:])
		out[len(out)-1] = el
	}
	return out, true
}

// CountNodes returns the total number of elements in the tree.
func CountNodes(elements []Element) int {
	n := 0
	for i := range elements {
		n += 1 + CountNodes(elements[i].Children)
	}
	return n
}

// Walk visits every element depth-first, parents before children.
func Walk(elements []Element, fn func(el Element, parentID string)) {
	walk(elements, "", fn)
}

func walk(elements []Element, parentID string, fn func(el Element, parentID string)) {
	for i := range elements {
		fn(elements[i], parentID)
		walk(elements[i].Children, elements[i].ID, fn)
	}
}

// Validate checks a loaded or submitted tree against the registry: every
// type must be known, ids must be unique across the whole tree and
// non-empty, and every parent/child pairing must satisfy the parent's
// containment constraints. It returns all problems found, not just the
// first, so a client can report them together.
func Validate(elements []Element) []string {
	var problems []string
	seen := make(map[string]bool)

	var visit func(els []Element, parent *Element)
	visit = func(els []Element, parent *Element) {
		for i := range els {
			el := &els[i]
			if el.ID == "" {
				problems = append(problems, "element of type "+string(el.Type)+" has no id")
			} else if seen[el.ID] {
				problems = append(problems, "duplicate element id "+el.ID)
			} else {
				seen[el.ID] = true
			}

			def, known := Lookup(el.Type)
			if !known {
				problems = append(problems, "unknown element type "+string(el.Type))
				continue
			}
			if parent != nil {
				pdef, _ := Lookup(parent.Type)
				if !pdef.Allows(el.Type) {
					problems = append(problems,
						string(parent.Type)+" cannot contain "+string(el.Type))
				}
			}
			if !def.IsContainer() && len(el.Children) > 0 {
				problems = append(problems, string(el.Type)+" cannot have children")
				continue
			}
			if def.MinChildren > 0 && len(el.Children) < def.MinChildren {
				problems = append(problems,
					string(el.Type)+" requires at least "+strconv.Itoa(def.MinChildren)+" children")
			}
			visit(el.Children, el)
		}
	}
	visit(elements, nil)
	return problems
}
