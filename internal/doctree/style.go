// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package doctree

import (
	"encoding/json"
	"strconv"
)

// Dim holds a dimension value as either a bare number (interpreted as
// pixels downstream) or a unit-suffixed string ("50%", "1.5em", "auto").
// Stored templates contain both forms, so Dim accepts both from JSON.
type Dim struct {
	v any
}

// DimOf wraps a raw value (number, string, or nil) as a Dim.
func DimOf(v any) Dim {
	return Dim{v: v}
}

// Px builds a numeric pixel dimension.
func Px(n float64) Dim {
	return Dim{v: n}
}

// Value returns the underlying raw value: float64, string, or nil.
func (d Dim) Value() any {
	return d.v
}

// IsZero reports whether the dimension was never set.
func (d Dim) IsZero() bool {
	return d.v == nil
}

// UnmarshalJSON accepts numbers and strings. Other JSON values leave the
// dimension unset rather than failing the whole document load.
func (d *Dim) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		d.v = num
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.v = s
		return nil
	}
	d.v = nil
	return nil
}

// MarshalJSON writes the dimension back in the form it was set with.
func (d Dim) MarshalJSON() ([]byte, error) {
	switch v := d.v.(type) {
	case nil:
		return []byte("null"), nil
	case float64:
		return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case int:
		return []byte(strconv.Itoa(v)), nil
	case string:
		return json.Marshal(v)
	default:
		return json.Marshal(v)
	}
}

// Position controls element placement. X/Y apply only when Type is
// "absolute"; for any other type they remain stored but inert, so a user
// can toggle the position type without losing entered coordinates.
type Position struct {
	Type   string  `json:"type,omitempty"` // "relative", "absolute", "static"
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ZIndex int     `json:"zIndex,omitempty"`
}

// Size holds element dimensions. Either side may be a number, a unit
// string, or "auto".
type Size struct {
	Width  Dim `json:"width,omitempty"`
	Height Dim `json:"height,omitempty"`
}

// Spacing is a four-sided padding or margin specification.
type Spacing struct {
	Top    Dim `json:"top,omitempty"`
	Right  Dim `json:"right,omitempty"`
	Bottom Dim `json:"bottom,omitempty"`
	Left   Dim `json:"left,omitempty"`
}

// IsZero reports whether no side was set.
func (s *Spacing) IsZero() bool {
	return s == nil || (s.Top.IsZero() && s.Right.IsZero() && s.Bottom.IsZero() && s.Left.IsZero())
}

// Border describes a uniform border plus corner radius.
type Border struct {
	Width  Dim    `json:"width,omitempty"`
	Style  string `json:"style,omitempty"` // "solid", "dashed", "dotted"
	Color  string `json:"color,omitempty"`
	Radius Dim    `json:"radius,omitempty"`
}

// Font holds typography settings.
type Font struct {
	Family string `json:"family,omitempty"`
	Size   Dim    `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
	Color  string `json:"color,omitempty"`
	Align  string `json:"align,omitempty"`
}

// Flex holds flexbox configuration. A non-empty Flex forces the element's
// display to "flex" regardless of any stored Display value.
type Flex struct {
	Direction string `json:"direction,omitempty"`
	Justify   string `json:"justify,omitempty"`
	Align     string `json:"align,omitempty"`
	Wrap      string `json:"wrap,omitempty"`
	Gap       Dim    `json:"gap,omitempty"`
}

// IsEmpty reports whether no flex property is set.
func (f *Flex) IsEmpty() bool {
	return f == nil || (f.Direction == "" && f.Justify == "" && f.Align == "" && f.Wrap == "" && f.Gap.IsZero())
}

// Grid holds CSS-grid configuration expressed as equal-fraction tracks.
type Grid struct {
	Columns int `json:"columns,omitempty"`
	Rows    int `json:"rows,omitempty"`
	Gap     Dim `json:"gap,omitempty"`
}

// IsEmpty reports whether no grid property is set.
func (g *Grid) IsEmpty() bool {
	return g == nil || (g.Columns == 0 && g.Rows == 0 && g.Gap.IsZero())
}

// Style is the declarative visual description attached to an element.
// The style compositor turns it into concrete CSS declarations; both the
// static and the canvas render paths share that computation.
type Style struct {
	Position   *Position `json:"position,omitempty"`
	Size       *Size     `json:"size,omitempty"`
	Padding    *Spacing  `json:"padding,omitempty"`
	Margin     *Spacing  `json:"margin,omitempty"`
	Background string    `json:"background,omitempty"`
	Border     *Border   `json:"border,omitempty"`
	Font       *Font     `json:"font,omitempty"`
	Display    string    `json:"display,omitempty"`
	Flex       *Flex     `json:"flex,omitempty"`
	Grid       *Grid     `json:"grid,omitempty"`
}

// clone deep-copies a style. All leaf fields are values, so copying the
// pointed-to structs is sufficient.
func (s *Style) clone() *Style {
	if s == nil {
		return nil
	}
	out := *s
	if s.Position != nil {
		p := *s.Position
		out.Position = &p
	}
	if s.Size != nil {
		sz := *s.Size
		out.Size = &sz
	}
	if s.Padding != nil {
		p := *s.Padding
		out.Padding = &p
	}
	if s.Margin != nil {
		m := *s.Margin
		out.Margin = &m
	}
	if s.Border != nil {
		b := *s.Border
		out.Border = &b
	}
	if s.Font != nil {
		f := *s.Font
		out.Font = &f
	}
	if s.Flex != nil {
		f := *s.Flex
		out.Flex = &f
	}
	if s.Grid != nil {
		g := *s.Grid
		out.Grid = &g
	}
	return &out
}
