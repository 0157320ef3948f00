// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package style

import (
	"strconv"
	"strings"

	"facturio/internal/doctree"
)

// Decl is one CSS declaration.
type Decl struct {
	Prop  string
	Value string
}

// Decls is an ordered CSS declaration list. Order is deterministic for a
// given style input, so rendered output is stable across runs.
type Decls []Decl

// String renders the declarations as an inline style attribute value.
func (d Decls) String() string {
	if len(d) == 0 {
		return ""
	}
	var b strings.Builder
	for i, decl := range d {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(decl.Prop)
		b.WriteString(": ")
		b.WriteString(decl.Value)
	}
	return b.String()
}

// Get returns the value of a property, if declared.
func (d Decls) Get(prop string) (string, bool) {
	for _, decl := range d {
		if decl.Prop == prop {
			return decl.Value, true
		}
	}
	return "", false
}

// Compose maps an element style onto concrete CSS declarations.
//
// Override rules, both deliberate:
//   - a non-empty flex configuration forces display:flex over any stored
//     display value, since older saved templates may carry a stale one;
//   - x/y coordinates apply only under position:absolute, so toggling the
//     position type never loses previously entered coordinates.
func Compose(s *doctree.Style) Decls {
	if s == nil {
		return nil
	}
	var out Decls
	add := func(prop, value string) {
		out = append(out, Decl{Prop: prop, Value: value})
	}

	// Display resolution: flex wins, then grid, then the stored value.
	switch {
	case !s.Flex.IsEmpty():
		add("display", "flex")
	case !s.Grid.IsEmpty():
		add("display", "grid")
	case s.Display != "":
		add("display", s.Display)
	}

	if p := s.Position; p != nil {
		if p.Type != "" {
			add("position", p.Type)
		}
		if p.Type == "absolute" {
			add("left", Length(p.X))
			add("top", Length(p.Y))
		}
		if p.ZIndex != 0 {
			add("z-index", strconv.Itoa(p.ZIndex))
		}
	}

	if sz := s.Size; sz != nil {
		if !sz.Width.IsZero() {
			add("width", Length(sz.Width))
		}
		if !sz.Height.IsZero() {
			add("height", Length(sz.Height))
		}
	}

	if !s.Padding.IsZero() {
		add("padding", spacingValue(s.Padding))
	}
	if !s.Margin.IsZero() {
		add("margin", spacingValue(s.Margin))
	}

	if s.Background != "" {
		add("background-color", s.Background)
	}

	if b := s.Border; b != nil {
		if !b.Width.IsZero() || b.Style != "" {
			add("border", borderValue(b))
		}
		if !b.Radius.IsZero() {
			add("border-radius", Length(b.Radius))
		}
	}

	if f := s.Font; f != nil {
		if f.Family != "" {
			add("font-family", f.Family)
		}
		if !f.Size.IsZero() {
			add("font-size", Length(f.Size))
		}
		if f.Weight != "" {
			add("font-weight", f.Weight)
		}
		if f.Color != "" {
			add("color", f.Color)
		}
		if f.Align != "" {
			add("text-align", f.Align)
		}
	}

	if f := s.Flex; !f.IsEmpty() {
		if f.Direction != "" {
			add("flex-direction", f.Direction)
		}
		if f.Justify != "" {
			add("justify-content", normalizeAlignment(f.Justify))
		}
		if f.Align != "" {
			add("align-items", normalizeAlignment(f.Align))
		}
		if f.Wrap != "" {
			add("flex-wrap", f.Wrap)
		}
		if !f.Gap.IsZero() {
			add("gap", Length(f.Gap))
		}
	}

	if g := s.Grid; !g.IsEmpty() {
		if g.Columns > 0 {
			add("grid-template-columns", repeatTracks(g.Columns))
		}
		if g.Rows > 0 {
			add("grid-template-rows", repeatTracks(g.Rows))
		}
		if !g.Gap.IsZero() {
			add("gap", Length(g.Gap))
		}
	}

	return out
}

// normalizeAlignment maps the short "start"/"end" forms to their flexbox
// spellings. Both forms appear in stored templates.
func normalizeAlignment(v string) string {
	switch v {
	case "start":
		return "flex-start"
	case "end":
		return "flex-end"
	default:
		return v
	}
}

// spacingValue renders a four-sided spacing as a top/right/bottom/left
// shorthand. Unset sides read as 0px.
func spacingValue(s *doctree.Spacing) string {
	return Length(s.Top) + " " + Length(s.Right) + " " + Length(s.Bottom) + " " + Length(s.Left)
}

// borderValue composes the single border shorthand from width, style, and
// color, defaulting the style to solid and the color to near-black.
func borderValue(b *doctree.Border) string {
	width := Length(b.Width)
	bstyle := b.Style
	if bstyle == "" {
		bstyle = "solid"
	}
	color := b.Color
	if color == "" {
		color = "#111827"
	}
	return width + " " + bstyle + " " + color
}

func repeatTracks(n int) string {
	return "repeat(" + strconv.Itoa(n) + ", 1fr)"
}
