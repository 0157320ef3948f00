// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package doctree

// maxSnapshots bounds how many editor states the undo stack retains.
// When the cap is reached the oldest snapshot is dropped.
const maxSnapshots = 50

// History is a bounded undo/redo stack over whole-tree snapshots. Each
// snapshot is a deep copy of the root element sequence, so no later edit
// can corrupt a retained state. Pushing after stepping back discards the
// redo states beyond the cursor.
type History struct {
	snapshots [][]Element
	cursor    int
}

// NewHistory starts a history at a single snapshot of the initial state.
func NewHistory(initial []Element) *History {
	return &History{
		snapshots: [][]Element{CloneTree(initial)},
		cursor:    0,
	}
}

// Push records a new committed state. Any redo states are truncated, and
// the oldest snapshot is dropped once the cap is reached.
func (h *History) Push(state []Element) {
	h.snapshots = append(h.snapshots[:h.cursor+1], CloneTree(state))
	if len(h.snapshots) > maxSnapshots {
		h.snapshots = h.snapshots[len(h.snapshots)-maxSnapshots:]
	}
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back one state and returns a copy of it. The
// second return is false when there is nothing to undo.
func (h *History) Undo() ([]Element, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return CloneTree(h.snapshots[h.cursor]), true
}

// Redo steps the cursor forward one state and returns a copy of it.
func (h *History) Redo() ([]Element, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return CloneTree(h.snapshots[h.cursor]), true
}

// CanUndo reports whether an earlier state is retained.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later state is retained.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Reset discards all history and starts fresh at a single snapshot. Used
// when loading an existing template into the editor.
func (h *History) Reset(state []Element) {
	h.snapshots = [][]Element{CloneTree(state)}
	h.cursor = 0
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}
