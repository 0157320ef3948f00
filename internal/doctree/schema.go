// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// schema.go defines the element type registry: the closed catalogue of
// element types with their containment constraints, palette metadata, and
// default content/style payloads. Every element creation and every
// containment check goes through this registry.

package doctree

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Category groups element types for palette presentation only. It has no
// bearing on containment rules.
type Category string

const (
	CategoryLayout     Category = "layout"
	CategoryContent    Category = "content"
	CategoryFormatting Category = "formatting"
)

// Definition is one registry entry: the constraints and defaults for a
// single element type.
type Definition struct {
	Type     Type
	Label    string
	Category Category

	// CanContain lists the child types this element accepts. Empty means
	// the element is a leaf.
	CanContain []Type
	// CanBeContainedIn is the inverse relation, derived at init from the
	// CanContain sets of all other definitions. Root placement is always
	// allowed and is not part of this list.
	CanBeContainedIn []Type

	MinChildren int
	MaxChildren int // -1 = unlimited, 0 = leaf
	Resizable   bool
	Movable     bool

	DefaultStyle    *Style
	DefaultContent  map[string]any
	DefaultChildren []Element
}

// Allows reports whether this definition accepts a child of the given type.
func (d Definition) Allows(child Type) bool {
	for _, t := range d.CanContain {
		if t == child {
			return true
		}
	}
	return false
}

// IsContainer reports whether the type can hold children at all.
func (d Definition) IsContainer() bool {
	return len(d.CanContain) > 0
}

// generalContent is the child set shared by the general-purpose containers
// (container, section, column/flex/grid/card layouts).
var generalContent = []Type{
	TypeText, TypeImage, TypeVariable, TypeTable, TypeDate, TypeSignature,
	TypeLogo, TypeQRCode, TypeBarcode, TypeCalculator, TypeBadge, TypeStatus,
	TypeDivider, TypeSpacer, TypeLineBreak,
	TypeContainer, TypeColumnLayout, TypeGridLayout, TypeFlexLayout,
	TypeCardLayout, TypeBackgroundShape, TypeBorderFrame,
}

// registry is the closed catalogue of element types. Unknown types are
// rejected at creation; nothing outside this map can enter a tree.
var registry = map[Type]Definition{
	TypeContainer: {
		Type: TypeContainer, Label: "Container", Category: CategoryLayout,
		CanContain: generalContent, MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Padding: &Spacing{Top: Px(8), Right: Px(8), Bottom: Px(8), Left: Px(8)},
		},
	},
	TypeSection: {
		Type: TypeSection, Label: "Section", Category: CategoryLayout,
		CanContain: generalContent, MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Padding: &Spacing{Top: Px(16), Bottom: Px(16)},
			Margin:  &Spacing{Bottom: Px(12)},
		},
	},
	TypeHeader: {
		Type: TypeHeader, Label: "Header", Category: CategoryLayout,
		CanContain: []Type{
			TypeLogo, TypeImage, TypeText, TypeVariable, TypeDate,
			TypeBadge, TypeStatus, TypeContainer,
		},
		MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Padding: &Spacing{Top: Px(16), Right: Px(0), Bottom: Px(16), Left: Px(0)},
			Border:  &Border{Width: Px(0)},
		},
		DefaultChildren: []Element{
			{Type: TypeLogo, Content: map[string]any{"src": "{{company.logo}}", "alt": "Logo"}},
			{
				Type: TypeContainer,
				Children: []Element{
					{Type: TypeText, Content: map[string]any{"text": "{{company.name}}"},
						Style: &Style{Font: &Font{Size: Px(16), Weight: "bold"}}},
					{Type: TypeText, Content: map[string]any{"text": "{{company.address}}"}},
					{Type: TypeText, Content: map[string]any{"text": "{{company.city}}, {{company.country}}"}},
				},
			},
			{
				Type: TypeContainer,
				Children: []Element{
					{Type: TypeText, Content: map[string]any{"text": "{{company.email}}"}},
					{Type: TypeText, Content: map[string]any{"text": "{{company.phone}}"}},
					{Type: TypeText, Content: map[string]any{"text": "SIRET {{company.siret}}"}},
				},
			},
		},
	},
	TypeFooter: {
		Type: TypeFooter, Label: "Footer", Category: CategoryLayout,
		CanContain: []Type{
			TypeText, TypeVariable, TypeDate, TypeDivider, TypeLineBreak,
			TypeLogo, TypeImage, TypeContainer,
		},
		MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Padding: &Spacing{Top: Px(12), Bottom: Px(12)},
			Font:    &Font{Size: Px(10), Color: "#6b7280", Align: "center"},
		},
		DefaultChildren: []Element{
			{Type: TypeText, Content: map[string]any{
				"text": "{{company.name}} — SIRET {{company.siret}} — TVA {{company.vat}}",
			}},
		},
	},
	TypeColumnLayout: {
		Type: TypeColumnLayout, Label: "Columns", Category: CategoryLayout,
		CanContain: generalContent, MinChildren: 2, MaxChildren: -1,
		Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Flex: &Flex{Direction: "row", Gap: Px(16)},
		},
		DefaultChildren: []Element{
			{Type: TypeContainer},
			{Type: TypeContainer},
		},
	},
	TypeFlexLayout: {
		Type: TypeFlexLayout, Label: "Flex Layout", Category: CategoryLayout,
		CanContain: generalContent, MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Flex: &Flex{Direction: "row", Justify: "start", Align: "center", Gap: Px(8)},
		},
	},
	TypeGridLayout: {
		Type: TypeGridLayout, Label: "Grid Layout", Category: CategoryLayout,
		CanContain: generalContent, MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Grid: &Grid{Columns: 2, Gap: Px(8)},
		},
	},
	TypeCardLayout: {
		Type: TypeCardLayout, Label: "Card", Category: CategoryLayout,
		CanContain: generalContent, MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Padding:    &Spacing{Top: Px(16), Right: Px(16), Bottom: Px(16), Left: Px(16)},
			Background: "#f9fafb",
			Border:     &Border{Width: Px(1), Style: "solid", Color: "#e5e7eb", Radius: Px(8)},
		},
	},
	TypeBackgroundShape: {
		Type: TypeBackgroundShape, Label: "Background", Category: CategoryFormatting,
		CanContain: []Type{
			TypeText, TypeImage, TypeVariable, TypeLogo, TypeBadge,
			TypeStatus, TypeContainer,
		},
		MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Background: "#eff6ff",
			Padding:    &Spacing{Top: Px(12), Right: Px(12), Bottom: Px(12), Left: Px(12)},
			Border:     &Border{Radius: Px(6)},
		},
	},
	TypeBorderFrame: {
		Type: TypeBorderFrame, Label: "Frame", Category: CategoryFormatting,
		CanContain: []Type{
			TypeText, TypeImage, TypeVariable, TypeLogo, TypeBadge,
			TypeStatus, TypeContainer, TypeTable,
		},
		MaxChildren: -1, Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Padding: &Spacing{Top: Px(12), Right: Px(12), Bottom: Px(12), Left: Px(12)},
			Border:  &Border{Width: Px(1), Style: "solid", Color: "#374151"},
		},
	},

	TypeText: {
		Type: TypeText, Label: "Text", Category: CategoryContent,
		Resizable: true, Movable: true,
		DefaultContent: map[string]any{"text": "Text", "format": "plain"},
		DefaultStyle: &Style{
			Font: &Font{Size: Px(12), Color: "#1f2937"},
		},
	},
	TypeImage: {
		Type: TypeImage, Label: "Image", Category: CategoryContent,
		Resizable: true, Movable: true,
		DefaultContent: map[string]any{"src": "", "alt": "Image"},
		DefaultStyle: &Style{
			Size: &Size{Width: DimOf(float64(120)), Height: DimOf("auto")},
		},
	},
	TypeVariable: {
		Type: TypeVariable, Label: "Variable", Category: CategoryContent,
		Resizable: false, Movable: true,
		DefaultContent: map[string]any{"path": "invoice.number", "format": "text"},
	},
	TypeTable: {
		Type: TypeTable, Label: "Line Items", Category: CategoryContent,
		Resizable: true, Movable: true,
		DefaultContent: map[string]any{
			"dataSource": "items",
			"columns": []any{
				map[string]any{"id": "description"},
				map[string]any{"id": "quantity"},
				map[string]any{"id": "unitPrice"},
				map[string]any{"id": "total"},
			},
			"totalRows": []any{
				map[string]any{"type": "subtotal", "label": "Sous-total"},
				map[string]any{"type": "tax", "label": "TVA"},
				map[string]any{"type": "total", "label": "Total"},
			},
			"stripeRows": true,
		},
		DefaultStyle: &Style{
			Size: &Size{Width: DimOf("100%")},
			Font: &Font{Size: Px(11)},
		},
	},
	TypeDate: {
		Type: TypeDate, Label: "Date", Category: CategoryContent,
		Resizable: false, Movable: true,
		DefaultContent: map[string]any{"source": "invoice.date", "format": "date"},
	},
	TypeSignature: {
		Type: TypeSignature, Label: "Signature", Category: CategoryContent,
		Resizable: true, Movable: true,
		DefaultContent: map[string]any{"label": "Signature"},
		DefaultStyle: &Style{
			Size:   &Size{Width: DimOf(float64(200)), Height: DimOf(float64(80))},
			Border: &Border{Width: Px(1), Style: "dashed", Color: "#9ca3af"},
		},
	},
	TypeLogo: {
		Type: TypeLogo, Label: "Logo", Category: CategoryContent,
		Resizable: true, Movable: true,
		DefaultContent: map[string]any{"src": "{{company.logo}}", "alt": "Logo"},
		DefaultStyle: &Style{
			Size: &Size{Width: DimOf(float64(96)), Height: DimOf("auto")},
		},
	},
	TypeQRCode: {
		Type: TypeQRCode, Label: "QR Code", Category: CategoryContent,
		Resizable: true, Movable: true,
		DefaultContent: map[string]any{"data": "{{invoice.number}}", "size": float64(96)},
	},
	TypeBarcode: {
		Type: TypeBarcode, Label: "Barcode", Category: CategoryContent,
		Resizable: true, Movable: true,
		DefaultContent: map[string]any{"data": "{{invoice.number}}", "height": float64(48)},
	},
	TypeCalculator: {
		Type: TypeCalculator, Label: "Computed Total", Category: CategoryContent,
		Resizable: false, Movable: true,
		DefaultContent: map[string]any{
			"operation": "total", "label": "Total dû", "format": "currency",
		},
		DefaultStyle: &Style{
			Font: &Font{Size: Px(14), Weight: "bold"},
		},
	},
	TypeBadge: {
		Type: TypeBadge, Label: "Badge", Category: CategoryContent,
		Resizable: false, Movable: true,
		DefaultContent: map[string]any{"text": "PAYÉ"},
		DefaultStyle: &Style{
			Background: "#dcfce7",
			Font:       &Font{Size: Px(10), Weight: "bold", Color: "#166534"},
			Padding:    &Spacing{Top: Px(2), Right: Px(8), Bottom: Px(2), Left: Px(8)},
			Border:     &Border{Radius: Px(9999)},
		},
	},
	TypeStatus: {
		Type: TypeStatus, Label: "Status", Category: CategoryContent,
		Resizable: false, Movable: true,
		DefaultContent: map[string]any{"path": "invoice.status"},
		DefaultStyle: &Style{
			Font: &Font{Size: Px(10), Weight: "bold"},
		},
	},

	TypeDivider: {
		Type: TypeDivider, Label: "Divider", Category: CategoryFormatting,
		Resizable: false, Movable: true,
		DefaultStyle: &Style{
			Border: &Border{Width: Px(1), Style: "solid", Color: "#e5e7eb"},
			Margin: &Spacing{Top: Px(8), Bottom: Px(8)},
		},
	},
	TypeSpacer: {
		Type: TypeSpacer, Label: "Spacer", Category: CategoryFormatting,
		Resizable: true, Movable: true,
		DefaultStyle: &Style{
			Size: &Size{Height: DimOf(float64(24))},
		},
	},
	TypeLineBreak: {
		Type: TypeLineBreak, Label: "Line Break", Category: CategoryFormatting,
		Resizable: false, Movable: true,
	},
	TypePageBreak: {
		Type: TypePageBreak, Label: "Page Break", Category: CategoryFormatting,
		Resizable: false, Movable: true,
	},
}

// ordered palette listing; map iteration order is not stable.
var paletteOrder = []Type{
	TypeHeader, TypeFooter, TypeSection, TypeContainer, TypeColumnLayout,
	TypeFlexLayout, TypeGridLayout, TypeCardLayout,
	TypeText, TypeVariable, TypeImage, TypeLogo, TypeTable, TypeDate,
	TypeQRCode, TypeBarcode, TypeCalculator, TypeBadge, TypeStatus,
	TypeSignature,
	TypeDivider, TypeSpacer, TypeLineBreak, TypePageBreak,
	TypeBackgroundShape, TypeBorderFrame,
}

func init() {
	// Derive CanBeContainedIn by inverting the CanContain sets, so the two
	// directions can never drift apart.
	parents := make(map[Type][]Type)
	for parentType, def := range registry {
		for _, child := range def.CanContain {
			parents[child] = append(parents[child], parentType)
		}
	}
	for t, def := range registry {
		list := parents[t]
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		def.CanBeContainedIn = list
		if def.IsContainer() && def.MaxChildren == 0 {
			def.MaxChildren = -1
		}
		registry[t] = def
	}
}

// Lookup returns the registry entry for a type.
func Lookup(t Type) (Definition, bool) {
	def, ok := registry[t]
	return def, ok
}

// KnownType reports whether t is part of the closed type set.
func KnownType(t Type) bool {
	_, ok := registry[t]
	return ok
}

// Palette returns all definitions in presentation order.
func Palette() []Definition {
	out := make([]Definition, 0, len(paletteOrder))
	for _, t := range paletteOrder {
		out = append(out, registry[t])
	}
	return out
}

// New instantiates an element of the given type from its registry defaults.
// Defaults are deep-cloned so no two instances ever share content, style,
// or child structures, and every node (including default children) gets a
// fresh id. Unknown types are rejected.
func New(t Type) (Element, error) {
	def, ok := registry[t]
	if !ok {
		return Element{}, fmt.Errorf("unknown element type %q", t)
	}

	el := Element{
		ID:      uuid.NewString(),
		Type:    t,
		Content: cloneContent(def.DefaultContent),
		Style:   def.DefaultStyle.clone(),
	}
	if len(def.DefaultChildren) > 0 {
		el.Children = make([]Element, len(def.DefaultChildren))
		for i, child := range def.DefaultChildren {
			el.Children[i] = assignIDs(child.Clone())
		}
	}
	return el, nil
}

// assignIDs gives an element and its whole subtree fresh ids.
func assignIDs(el Element) Element {
	el.ID = uuid.NewString()
	for i := range el.Children {
		el.Children[i] = assignIDs(el.Children[i])
	}
	return el
}
