// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// table.go renders line-item tables. A table has two modes: static
// (literal rows with per-cell variable substitution) and dynamic (one row
// per entry of the runtime items collection). Columns are activated by
// membership in the stored columns array — its order is the render order —
// against a fixed candidate catalogue. Total rows are computed per
// totalRows entry from the line items.

package render

import (
	"encoding/json"
	"html"
	"strconv"

	"facturio/internal/doctree"
	"facturio/internal/style"
	"facturio/internal/vars"
)

// columnSpec defines one catalogue entry: the item field a column reads
// and how its cells are formatted by default.
type columnSpec struct {
	Label    string
	Variable string
	Format   string
}

// columnCatalogue is the fixed candidate column set. A table renders only
// the columns its content activates, in activation order.
var columnCatalogue = map[string]columnSpec{
	"description": {Label: "Description", Variable: "items.description", Format: "text"},
	"quantity":    {Label: "Qté", Variable: "items.quantity", Format: "number"},
	"unitPrice":   {Label: "Prix unitaire", Variable: "items.unitPrice", Format: "currency"},
	"discount":    {Label: "Remise", Variable: "items.discount", Format: "currency"},
	"subtotal":    {Label: "Sous-total", Variable: "items.subtotal", Format: "currency"},
	"taxRate":     {Label: "TVA %", Variable: "items.taxRate", Format: "percentage"},
	"taxAmount":   {Label: "TVA", Variable: "items.taxAmount", Format: "currency"},
	"total":       {Label: "Total", Variable: "items.total", Format: "currency"},
	"category":    {Label: "Catégorie", Variable: "items.category", Format: "text"},
	"reference":   {Label: "Référence", Variable: "items.reference", Format: "text"},
}

// tableColumn is one activated column as stored in content.columns. Any
// field left empty is filled from the catalogue entry for its id.
type tableColumn struct {
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	Variable string `json:"variable,omitempty"`
	Format   string `json:"format,omitempty"`
}

// tableConfig is the decoded table content payload.
type tableConfig struct {
	DataSource string          `json:"dataSource"`
	Columns    []tableColumn   `json:"columns"`
	Rows       [][]string      `json:"rows"`
	TotalRows  []vars.TotalRow `json:"totalRows"`
	MaxRows    int             `json:"maxRows"`
	StripeRows bool            `json:"stripeRows"`
}

// decodeTableConfig reads the free-form content payload into the typed
// config via a JSON round trip, then completes activated columns from the
// catalogue. Malformed payloads yield an empty config, which renders as
// an empty table rather than failing the document.
func decodeTableConfig(content map[string]any) tableConfig {
	var cfg tableConfig
	raw, err := json.Marshal(content)
	if err != nil {
		return cfg
	}
	_ = json.Unmarshal(raw, &cfg)

	for i := range cfg.Columns {
		col := &cfg.Columns[i]
		spec, known := columnCatalogue[col.ID]
		if !known {
			continue
		}
		if col.Label == "" {
			col.Label = spec.Label
		}
		if col.Variable == "" {
			col.Variable = spec.Variable
		}
		if col.Format == "" {
			col.Format = spec.Format
		}
	}
	return cfg
}

// stripeBackground tints alternating dynamic rows.
const stripeBackground = "#f3f4f6"

func (r *Renderer) renderTable(el doctree.Element) {
	cfg := decodeTableConfig(el.Content)

	decls := append(style.Decls{{Prop: "border-collapse", Value: "collapse"}}, style.Compose(el.Style)...)
	r.open("table", el, decls)

	// Header row from activated columns, in stored order.
	if len(cfg.Columns) > 0 {
		r.buf.WriteString("<thead><tr>")
		for _, col := range cfg.Columns {
			r.buf.WriteString("<th>")
			r.buf.WriteString(html.EscapeString(col.Label))
			r.buf.WriteString("</th>")
		}
		r.buf.WriteString("</tr></thead>")
	}

	r.buf.WriteString("<tbody>")
	if cfg.DataSource == "items" {
		r.dynamicRows(cfg)
	} else {
		r.staticRows(cfg)
	}
	r.buf.WriteString("</tbody>")

	if len(cfg.TotalRows) > 0 {
		r.totalRows(cfg)
	}
	r.close("table")
}

// staticRows renders literal rows, substituting variables independently
// per cell.
func (r *Renderer) staticRows(cfg tableConfig) {
	for _, row := range cfg.Rows {
		r.buf.WriteString("<tr>")
		for _, cell := range row {
			r.buf.WriteString("<td>")
			r.buf.WriteString(html.EscapeString(vars.Substitute(cell, r.bag)))
			r.buf.WriteString("</td>")
		}
		r.buf.WriteString("</tr>")
	}
}

// dynamicRows renders one row per line item, projecting each activated
// column's item field through its declared format. MaxRows caps the
// rendered items (0 = unlimited).
func (r *Renderer) dynamicRows(cfg tableConfig) {
	items := vars.Items(r.bag)
	for i, item := range items {
		if cfg.MaxRows > 0 && i >= cfg.MaxRows {
			break
		}
		if cfg.StripeRows && i%2 == 1 {
			r.buf.WriteString(`<tr style="background-color: ` + stripeBackground + `">`)
		} else {
			r.buf.WriteString("<tr>")
		}
		for _, col := range cfg.Columns {
			field := itemField(col.Variable)
			r.buf.WriteString("<td>")
			if v, ok := item[field]; ok {
				r.buf.WriteString(html.EscapeString(vars.FormatWith(v, col.Format, r.symbol)))
			}
			r.buf.WriteString("</td>")
		}
		r.buf.WriteString("</tr>")
	}
}

// totalRows renders the derived rows after the body: label spanning all
// but the last column, computed value in the last. The total-type row is
// bold by convention.
func (r *Renderer) totalRows(cfg tableConfig) {
	span := len(cfg.Columns) - 1
	if span < 1 {
		span = 1
	}
	items := vars.Items(r.bag)

	r.buf.WriteString("<tfoot>")
	for _, row := range cfg.TotalRows {
		format := row.Format
		if format == "" {
			format = "currency"
		}

		var value string
		if row.Type == "custom" {
			// Custom rows carry their own literal or variable-substituted
			// value, bypassing aggregation.
			if s, ok := row.Value.(string); ok {
				value = vars.Substitute(s, r.bag)
			} else {
				value = vars.FormatWith(row.Value, format, r.symbol)
			}
		} else {
			value = vars.FormatWith(vars.ComputeTotal(row.Type, items, r.bag), format, r.symbol)
		}

		if row.Type == "total" {
			r.buf.WriteString(`<tr class="total-row" style="font-weight: bold">`)
		} else {
			r.buf.WriteString(`<tr class="total-row">`)
		}
		r.buf.WriteString(`<td colspan="` + strconv.Itoa(span) + `">`)
		r.buf.WriteString(html.EscapeString(vars.Substitute(row.Label, r.bag)))
		r.buf.WriteString("</td><td>")
		r.buf.WriteString(html.EscapeString(value))
		r.buf.WriteString("</td></tr>")
	}
	r.buf.WriteString("</tfoot>")
}

// itemField maps a column variable like "items.unitPrice" onto the item
// map key.
func itemField(variable string) string {
	const prefix = "items."
	if len(variable) > len(prefix) && variable[:len(prefix)] == prefix {
		return variable[len(prefix):]
	}
	return variable
}
