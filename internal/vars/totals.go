// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package vars

// TotalRow is one derived row at the bottom of a line-item table. Rows
// are independently orderable — the order of the stored totalRows array
// is the render order.
type TotalRow struct {
	Type   string `json:"type"` // subtotal, tax, total, discount, shipping, custom
	Label  string `json:"label,omitempty"`
	Format string `json:"format,omitempty"`
	// Value feeds "custom" rows directly (literal or variable-substituted),
	// bypassing computed aggregation.
	Value any `json:"value,omitempty"`
}

// Items extracts the line-item collection from the bag, tolerating both
// the decoded-JSON shape ([]any of maps) and a prepared []map[string]any.
func Items(bag Bag) []map[string]any {
	raw, ok := bag["items"]
	if !ok {
		return nil
	}
	switch list := raw.(type) {
	case []map[string]any:
		return list
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, entry := range list {
			if m, ok := entry.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// ComputeTotal aggregates one total-row kind across the line items:
//
//	subtotal  Σ item.total (pre-tax line totals)
//	tax       Σ item.taxAmount
//	total     Σ (item.totalTTC ?? item.total) — the tax-inclusive per-line
//	          total when present, else the pre-tax one; existing client
//	          documents depend on this exact fallback
//	discount  Σ item.discount
//	shipping  invoice.shipping from the bag — an invoice-level field, not
//	          summed across items
//
// "custom" rows carry their own value and never reach this function.
func ComputeTotal(kind string, items []map[string]any, bag Bag) float64 {
	switch kind {
	case "subtotal":
		return sumField(items, "total")
	case "tax":
		return sumField(items, "taxAmount")
	case "discount":
		return sumField(items, "discount")
	case "total":
		var sum float64
		for _, item := range items {
			if f, ok := toFloat(item["totalTTC"]); ok {
				sum += f
				continue
			}
			if f, ok := toFloat(item["total"]); ok {
				sum += f
			}
		}
		return sum
	case "shipping":
		v, ok := bag.Resolve("invoice.shipping")
		if !ok {
			return 0
		}
		f, _ := toFloat(v)
		return f
	default:
		return 0
	}
}

func sumField(items []map[string]any, field string) float64 {
	var sum float64
	for _, item := range items {
		if f, ok := toFloat(item[field]); ok {
			sum += f
		}
	}
	return sum
}
