// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns a document tree into HTML. Two modes share the
// same style computation and data binding: ModeStatic produces the final
// document, ModeCanvas additionally marks elements with their ids and
// emits the indexed drop-zone markers the builder UI uses as drag
// targets. Rendering is driven by a dispatch table keyed by element type,
// so adding a type is a registry entry plus one function here.
package render

import (
	"html"
	"log/slog"
	"strconv"
	"strings"

	"facturio/internal/doctree"
	"facturio/internal/markdown"
	"facturio/internal/style"
	"facturio/internal/vars"
)

// Mode selects the render surface.
type Mode int

const (
	// ModeStatic renders the final data-bound document.
	ModeStatic Mode = iota
	// ModeCanvas renders the editable surface: same visual output plus
	// element ids and indexed drop zones.
	ModeCanvas
)

// Renderer carries the state of one document render.
type Renderer struct {
	mode   Mode
	bag    vars.Bag
	symbol string
	buf    strings.Builder
}

// renderFuncs dispatches on element type. Populated in init to allow the
// container renderer to recurse through the table.
var renderFuncs map[doctree.Type]func(*Renderer, doctree.Element)

func init() {
	container := (*Renderer).renderContainer
	renderFuncs = map[doctree.Type]func(*Renderer, doctree.Element){
		doctree.TypeContainer:       container,
		doctree.TypeSection:         container,
		doctree.TypeHeader:          container,
		doctree.TypeFooter:          container,
		doctree.TypeColumnLayout:    container,
		doctree.TypeFlexLayout:      container,
		doctree.TypeGridLayout:      container,
		doctree.TypeCardLayout:      container,
		doctree.TypeBackgroundShape: container,
		doctree.TypeBorderFrame:     container,

		doctree.TypeText:       (*Renderer).renderText,
		doctree.TypeVariable:   (*Renderer).renderVariable,
		doctree.TypeImage:      (*Renderer).renderImage,
		doctree.TypeLogo:       (*Renderer).renderImage,
		doctree.TypeDate:       (*Renderer).renderDate,
		doctree.TypeTable:      (*Renderer).renderTable,
		doctree.TypeQRCode:     (*Renderer).renderQRCode,
		doctree.TypeBarcode:    (*Renderer).renderBarcode,
		doctree.TypeCalculator: (*Renderer).renderCalculator,
		doctree.TypeBadge:      (*Renderer).renderBadge,
		doctree.TypeStatus:     (*Renderer).renderStatus,
		doctree.TypeSignature:  (*Renderer).renderSignature,

		doctree.TypeDivider:   (*Renderer).renderDivider,
		doctree.TypeSpacer:    (*Renderer).renderSpacer,
		doctree.TypeLineBreak: (*Renderer).renderLineBreak,
		doctree.TypePageBreak: (*Renderer).renderPageBreak,
	}
}

// Document renders a full element tree against the given variable bag.
func Document(elements []doctree.Element, bag vars.Bag, mode Mode) string {
	r := &Renderer{mode: mode, bag: bag, symbol: currencySymbol(bag)}
	r.buf.WriteString(`<div class="document">`)
	r.sequence(elements, "", true)
	r.buf.WriteString(`</div>`)
	return r.buf.String()
}

// currencySymbol reads the configured currency from the bag, defaulting
// to the euro sign.
func currencySymbol(bag vars.Bag) string {
	if v, ok := bag.Resolve("company.currency"); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return "€"
}

// sequence renders a sibling list. In canvas mode a drop zone is emitted
// before every element and after the last one, unless the parent opted
// out (the header renders as a compact flex row without zones).
func (r *Renderer) sequence(elements []doctree.Element, parentID string, zones bool) {
	zones = zones && r.mode == ModeCanvas
	for i := range elements {
		if zones {
			r.dropZone(parentID, i)
		}
		r.element(elements[i])
	}
	if zones {
		r.dropZone(parentID, len(elements))
	}
}

func (r *Renderer) element(el doctree.Element) {
	fn, ok := renderFuncs[el.Type]
	if !ok {
		// Unknown types can only come from hand-edited storage; skip the
		// node rather than failing the whole document.
		slog.Warn("skipping element of unknown type", "type", el.Type, "id", el.ID)
		return
	}
	fn(r, el)
}

func (r *Renderer) dropZone(parentID string, index int) {
	r.buf.WriteString(`<div class="drop-zone" data-drop-zone data-parent-id="`)
	r.buf.WriteString(html.EscapeString(parentID))
	r.buf.WriteString(`" data-index="`)
	r.buf.WriteString(strconv.Itoa(index))
	r.buf.WriteString(`"></div>`)
}

// open writes an element's opening tag with its composed style and, in
// canvas mode, its id.
func (r *Renderer) open(tag string, el doctree.Element, decls style.Decls) {
	r.buf.WriteByte('<')
	r.buf.WriteString(tag)
	r.buf.WriteString(` data-type="`)
	r.buf.WriteString(string(el.Type))
	r.buf.WriteByte('"')
	if r.mode == ModeCanvas {
		r.buf.WriteString(` data-element-id="`)
		r.buf.WriteString(html.EscapeString(el.ID))
		r.buf.WriteByte('"')
	}
	if css := decls.String(); css != "" {
		r.buf.WriteString(` style="`)
		r.buf.WriteString(html.EscapeString(css))
		r.buf.WriteByte('"')
	}
	r.buf.WriteByte('>')
}

func (r *Renderer) close(tag string) {
	r.buf.WriteString("</")
	r.buf.WriteString(tag)
	r.buf.WriteByte('>')
}

// renderContainer handles every container-capable type. The header is the
// one deliberate asymmetry: without explicit flex configuration it lays
// its children out as a horizontal row (logo | company | contact) and
// suppresses drop zones between them; every other container stacks
// children vertically with drop zones. Existing client documents depend
// on this layout difference.
func (r *Renderer) renderContainer(el doctree.Element) {
	decls := style.Compose(el.Style)
	zones := true

	if el.Type == doctree.TypeHeader && (el.Style == nil || el.Style.Flex.IsEmpty()) {
		decls = append(style.Decls{
			{Prop: "display", Value: "flex"},
			{Prop: "flex-direction", Value: "row"},
			{Prop: "justify-content", Value: "space-between"},
			{Prop: "align-items", Value: "center"},
		}, decls...)
		zones = false
	}

	r.open("div", el, decls)
	r.sequence(el.Children, el.ID, zones)
	r.close("div")
}

func (r *Renderer) renderText(el doctree.Element) {
	text := vars.Substitute(el.ContentString("text"), r.bag)
	r.open("div", el, style.Compose(el.Style))
	if el.ContentString("format") == "markdown" {
		rendered, err := markdown.ToHTML(text)
		if err != nil {
			slog.Warn("markdown conversion failed, rendering as plain text", "error", err)
			r.buf.WriteString(html.EscapeString(text))
		} else {
			r.buf.WriteString(rendered)
		}
	} else {
		r.buf.WriteString(html.EscapeString(text))
	}
	r.close("div")
}

func (r *Renderer) renderVariable(el doctree.Element) {
	path := el.ContentString("path")
	format := el.ContentString("format")

	r.open("span", el, style.Compose(el.Style))
	if v, ok := r.bag.Resolve(path); ok {
		r.buf.WriteString(html.EscapeString(vars.FormatWith(v, format, r.symbol)))
	} else {
		// Unresolved binding stays visible as the literal token.
		r.buf.WriteString(html.EscapeString("{{" + path + "}}"))
	}
	r.close("span")
}

func (r *Renderer) renderDate(el doctree.Element) {
	source := el.ContentString("source")
	r.open("span", el, style.Compose(el.Style))
	if v, ok := r.bag.Resolve(source); ok {
		r.buf.WriteString(html.EscapeString(vars.FormatWith(v, "date", r.symbol)))
	} else {
		r.buf.WriteString(html.EscapeString("{{" + source + "}}"))
	}
	r.close("span")
}

func (r *Renderer) renderImage(el doctree.Element) {
	src := vars.Substitute(el.ContentString("src"), r.bag)
	alt := el.ContentString("alt")

	// An unbound logo token or empty upload renders as nothing in the
	// static document; the canvas shows a placeholder box instead.
	if src == "" || strings.Contains(src, "{{") {
		if r.mode == ModeCanvas {
			r.open("div", el, style.Compose(el.Style))
			r.buf.WriteString(html.EscapeString(alt))
			r.close("div")
		}
		return
	}

	decls := style.Compose(el.Style)
	r.buf.WriteString(`<img src="`)
	r.buf.WriteString(html.EscapeString(src))
	r.buf.WriteString(`" alt="`)
	r.buf.WriteString(html.EscapeString(alt))
	r.buf.WriteByte('"')
	r.buf.WriteString(` data-type="` + string(el.Type) + `"`)
	if r.mode == ModeCanvas {
		r.buf.WriteString(` data-element-id="` + html.EscapeString(el.ID) + `"`)
	}
	if css := decls.String(); css != "" {
		r.buf.WriteString(` style="` + html.EscapeString(css) + `"`)
	}
	r.buf.WriteByte('>')
}

func (r *Renderer) renderCalculator(el doctree.Element) {
	op := el.ContentString("operation")
	format := el.ContentString("format")
	if format == "" {
		format = "currency"
	}
	total := vars.ComputeTotal(op, vars.Items(r.bag), r.bag)

	r.open("div", el, style.Compose(el.Style))
	if label := el.ContentString("label"); label != "" {
		r.buf.WriteString(html.EscapeString(vars.Substitute(label, r.bag)))
		r.buf.WriteString(" ")
	}
	r.buf.WriteString(html.EscapeString(vars.FormatWith(total, format, r.symbol)))
	r.close("div")
}

func (r *Renderer) renderBadge(el doctree.Element) {
	r.open("span", el, style.Compose(el.Style))
	r.buf.WriteString(html.EscapeString(vars.Substitute(el.ContentString("text"), r.bag)))
	r.close("span")
}

func (r *Renderer) renderStatus(el doctree.Element) {
	path := el.ContentString("path")
	r.open("span", el, style.Compose(el.Style))
	if v, ok := r.bag.Resolve(path); ok {
		r.buf.WriteString(html.EscapeString(strings.ToUpper(vars.Display(v))))
	} else {
		r.buf.WriteString(html.EscapeString("{{" + path + "}}"))
	}
	r.close("span")
}

func (r *Renderer) renderSignature(el doctree.Element) {
	r.open("div", el, style.Compose(el.Style))
	r.buf.WriteString(`<span class="signature-label">`)
	r.buf.WriteString(html.EscapeString(el.ContentString("label")))
	r.buf.WriteString(`</span>`)
	r.close("div")
}

func (r *Renderer) renderDivider(el doctree.Element) {
	// The stored border describes the rule itself, so it becomes a
	// border-top on an hr rather than a box border.
	decls := style.Decls{{Prop: "width", Value: "100%"}}
	if el.Style != nil {
		for _, d := range style.Compose(el.Style) {
			if d.Prop == "border" {
				d.Prop = "border-top"
			}
			decls = append(decls, d)
		}
	}
	r.open("hr", el, decls)
}

func (r *Renderer) renderSpacer(el doctree.Element) {
	r.open("div", el, style.Compose(el.Style))
	r.close("div")
}

func (r *Renderer) renderLineBreak(el doctree.Element) {
	r.buf.WriteString("<br>")
}

func (r *Renderer) renderPageBreak(el doctree.Element) {
	decls := style.Decls{{Prop: "page-break-after", Value: "always"}}
	r.open("div", el, decls)
	r.close("div")
}
