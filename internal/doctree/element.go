// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package doctree implements the document tree that invoice and quote
// templates are built from: a recursive sequence of typed elements with
// content, style, and children. All tree operations are pure — they return
// new trees and never mutate their input — so retained snapshots (undo
// history, stored revisions) stay valid after later edits.
package doctree

import (
	"encoding/json"
	"time"
)

// Type tags an element with its kind. The set of valid tags is closed and
// defined by the schema registry in this package.
type Type string

const (
	TypeText            Type = "text"
	TypeImage           Type = "image"
	TypeVariable        Type = "variable"
	TypeTable           Type = "table"
	TypeContainer       Type = "container"
	TypeHeader          Type = "header"
	TypeFooter          Type = "footer"
	TypeSection         Type = "section"
	TypeDivider         Type = "divider"
	TypeSpacer          Type = "spacer"
	TypeQRCode          Type = "qrcode"
	TypeBarcode         Type = "barcode"
	TypeDate            Type = "date"
	TypeSignature       Type = "signature"
	TypeLogo            Type = "logo"
	TypeCalculator      Type = "calculator"
	TypeBadge           Type = "badge"
	TypeStatus          Type = "status"
	TypeLineBreak       Type = "line-break"
	TypePageBreak       Type = "page-break"
	TypeBackgroundShape Type = "background-shape"
	TypeBorderFrame     Type = "border-frame"
	TypeColumnLayout    Type = "column-layout"
	TypeGridLayout      Type = "grid-layout"
	TypeFlexLayout      Type = "flex-layout"
	TypeCardLayout      Type = "card-layout"
)

// Element is one node of the document tree. Children are owned by value:
// the nesting under Children is the single source of truth for structure,
// and parent lookup is always a derived search from the root.
//
// Content is a type-specific free-form payload (text string, image src,
// table column definitions, ...). Constraints are never stored on the
// element — they derive from the type's registry entry and are recomputed
// on load rather than trusted from storage.
type Element struct {
	ID       string         `json:"id"`
	Type     Type           `json:"type"`
	Content  map[string]any `json:"content,omitempty"`
	Style    *Style         `json:"style,omitempty"`
	Children []Element      `json:"children,omitempty"`
}

// Clone returns a deep copy of the element and its entire subtree.
func (e Element) Clone() Element {
	out := e
	out.Content = cloneContent(e.Content)
	out.Style = e.Style.clone()
	if e.Children != nil {
		out.Children = CloneTree(e.Children)
	}
	return out
}

// CloneTree deep-copies a root-level element sequence.
func CloneTree(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for i, el := range elements {
		out[i] = el.Clone()
	}
	return out
}

// Document is the persistence unit exchanged with clients and stored in
// template rows: a named root element sequence plus its last-modified time.
type Document struct {
	Name      string    `json:"name"`
	Elements  []Element `json:"elements"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// cloneContent deep-copies a content payload, including nested maps and
// slices produced by JSON decoding.
func cloneContent(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneContent(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

// contentString reads a string field from a content payload, returning ""
// when the field is absent or not a string.
func contentString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// ContentString is the exported accessor for string content fields, used
// by the renderer and handlers.
func (e Element) ContentString(key string) string {
	return contentString(e.Content, key)
}

// MarshalDocument serializes a document in the exchange format. Element
// constraints are intentionally not part of the payload.
func MarshalDocument(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

// UnmarshalDocument parses a stored or submitted document. It does not
// validate the tree; callers run Validate separately so that a useful
// error list can be returned to the client.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// UnmarshalElements parses a bare element array, as stored in the
// templates table.
func UnmarshalElements(data []byte) ([]Element, error) {
	var elements []Element
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, err
	}
	return elements, nil
}
