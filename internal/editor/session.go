// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor implements the headless template editing session: the
// element tree, selection, drag state, and undo history behind the
// template builder. It has no UI dependency, so the same engine drives
// interactive editing, server-side template validation, and tests.
//
// Exactly one mutation is ever in flight — editing is driven by discrete
// user input events — so Session needs no locking. Every committed
// mutation pushes exactly one snapshot to the history.
package editor

import (
	"facturio/internal/doctree"
)

// Session is the state of one template being edited.
type Session struct {
	elements []doctree.Element
	history  *doctree.History
	selected string
	drag     *dragState
}

// NewSession starts an editing session over the given tree. The initial
// state becomes the first (and only) history snapshot.
func NewSession(initial []doctree.Element) *Session {
	els := doctree.CloneTree(initial)
	return &Session{
		elements: els,
		history:  doctree.NewHistory(els),
	}
}

// Elements returns a deep copy of the current tree.
func (s *Session) Elements() []doctree.Element {
	return doctree.CloneTree(s.elements)
}

// Load replaces the tree with a stored template and resets history to a
// single snapshot, discarding any previous undo states.
func (s *Session) Load(elements []doctree.Element) {
	s.elements = doctree.CloneTree(elements)
	s.history.Reset(s.elements)
	s.selected = ""
	s.drag = nil
}

// Select marks an element as selected. Selecting an id that is not in the
// tree clears the selection instead of erroring.
func (s *Session) Select(id string) {
	if doctree.ContainsID(s.elements, id) {
		s.selected = id
		return
	}
	s.selected = ""
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.selected = ""
}

// Selected returns the selected element, if any. A selection that became
// stale (element deleted since) reads as no selection.
func (s *Session) Selected() (doctree.Element, bool) {
	if s.selected == "" {
		return doctree.Element{}, false
	}
	return doctree.FindByID(s.elements, s.selected)
}

// UpdateElement replaces an element wherever it occurs in the tree and
// commits the change. Updating a missing id is a no-op and commits
// nothing.
func (s *Session) UpdateElement(updated doctree.Element) bool {
	if !doctree.ContainsID(s.elements, updated.ID) {
		return false
	}
	s.commit(doctree.UpdateByID(s.elements, updated))
	return true
}

// RemoveElement deletes an element and its whole subtree. The selection is
// cleared if it pointed inside the removed subtree.
func (s *Session) RemoveElement(id string) bool {
	if !doctree.ContainsID(s.elements, id) {
		return false
	}
	next := doctree.RemoveByID(s.elements, id)
	s.commit(next)
	if s.selected != "" && !doctree.ContainsID(s.elements, s.selected) {
		s.selected = ""
	}
	return true
}

// ReorderElement moves an element within its sibling list. Boundary moves
// (up at the top, down at the bottom) commit nothing.
func (s *Session) ReorderElement(id string, dir doctree.Direction) bool {
	next, ok := doctree.Reorder(s.elements, id, dir)
	if !ok {
		return false
	}
	s.commit(next)
	return true
}

// SetContentField updates one content field on an element and commits.
// This is the completion path for asynchronous work such as image uploads:
// if the user deleted the element while the upload was in flight, the
// update is a no-op against the current tree.
func (s *Session) SetContentField(id, key string, value any) bool {
	el, ok := doctree.FindByID(s.elements, id)
	if !ok {
		return false
	}
	if el.Content == nil {
		el.Content = make(map[string]any)
	}
	el.Content[key] = value
	s.commit(doctree.UpdateByID(s.elements, el))
	return true
}

// ApplyImageContent sets the source URL of an image-bearing element once
// its upload finishes. Returns false when the element no longer exists.
func (s *Session) ApplyImageContent(id, src string) bool {
	return s.SetContentField(id, "src", src)
}

// Undo steps back one committed state.
func (s *Session) Undo() bool {
	state, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.elements = state
	return true
}

// Redo steps forward one committed state.
func (s *Session) Redo() bool {
	state, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.elements = state
	return true
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// commit installs a new tree and pushes one history snapshot.
func (s *Session) commit(next []doctree.Element) {
	s.elements = next
	s.history.Push(next)
}
