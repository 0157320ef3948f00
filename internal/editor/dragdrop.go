// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// dragdrop.go is the placement engine: it interprets drag gestures against
// drop targets and computes the resulting tree mutation. Two kinds of drag
// sources exist — a palette type (new element pending creation) and a
// canvas element (existing subtree being relocated). Target resolution
// order: indexed drop zone, then direct container hover, then root append.
//
// A containment violation never surfaces as an error: the drop is silently
// rejected and the tree stays unchanged. Hover affordances in the UI are
// the prevention mechanism; the engine only guarantees no invalid tree can
// be produced.

package editor

import (
	"fmt"

	"facturio/internal/doctree"
)

// dragState captures the dragged identity for the duration of a gesture.
type dragState struct {
	fromPalette bool
	paletteType doctree.Type
	elementID   string
}

// DropZone is an explicit indexed insertion point: the gap before/after/
// between siblings within ParentID's children (root when ParentID is "").
type DropZone struct {
	ParentID string
	Index    int
}

// DropTarget describes where a drag gesture ended. Zone takes priority
// over ContainerID; with neither set the drop appends to the root
// sequence. A nil *DropTarget means the gesture ended over nothing.
type DropTarget struct {
	Zone        *DropZone
	ContainerID string
}

// StartPaletteDrag begins dragging a new element of the given type out of
// the palette. Unknown types are rejected up front.
func (s *Session) StartPaletteDrag(t doctree.Type) error {
	if !doctree.KnownType(t) {
		return fmt.Errorf("unknown element type %q", t)
	}
	s.drag = &dragState{fromPalette: true, paletteType: t}
	return nil
}

// StartCanvasDrag begins relocating an existing element and its subtree.
func (s *Session) StartCanvasDrag(id string) error {
	if !doctree.ContainsID(s.elements, id) {
		return fmt.Errorf("no element with id %q", id)
	}
	s.drag = &dragState{elementID: id}
	return nil
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool {
	return s.drag != nil
}

// CancelDrag abandons the gesture without touching the tree.
func (s *Session) CancelDrag() {
	s.drag = nil
}

// Drop ends the gesture at the given target and applies the resulting
// mutation, if any. It returns true only when the tree changed, in which
// case exactly one history snapshot was pushed. All failure modes — no
// target, stale dragged id, containment violation, vanished target —
// leave the tree unchanged.
//
// Relocating a canvas element is remove-then-insert: the dragged subtree
// is stripped first and the target resolved against the post-removal
// tree, so a container can never validate a drop into its own
// soon-to-be-removed content.
func (s *Session) Drop(target *DropTarget) bool {
	drag := s.drag
	s.drag = nil
	if drag == nil || target == nil {
		return false
	}

	working := s.elements
	var el doctree.Element
	if drag.fromPalette {
		created, err := doctree.New(drag.paletteType)
		if err != nil {
			return false
		}
		el = created
	} else {
		found, ok := doctree.FindByID(working, drag.elementID)
		if !ok {
			return false
		}
		el = found
		working = doctree.RemoveByID(working, drag.elementID)
	}

	next, ok := s.resolveDrop(working, target, el)
	if !ok {
		return false
	}
	s.commit(next)
	return true
}

// resolveDrop applies the target priority order against the working tree.
func (s *Session) resolveDrop(working []doctree.Element, target *DropTarget, el doctree.Element) ([]doctree.Element, bool) {
	switch {
	case target.Zone != nil:
		return doctree.Insert(working, target.Zone.ParentID, target.Zone.Index, el)
	case target.ContainerID != "":
		return doctree.Insert(working, target.ContainerID, -1, el)
	default:
		return doctree.Insert(working, "", -1, el)
	}
}
