// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package vars implements the runtime variable bag that documents are
// rendered against: {{a.b.c}} token substitution, display formatting, and
// the line-item aggregation behind table total rows.
package vars

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bag is the nested runtime variable object (company, client, invoice,
// project, items). The rendering engine only ever reads it.
type Bag map[string]any

// tokenRe matches {{path.to.value}} placeholders.
var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Resolve walks a dot-separated path into the bag. The second return is
// false when any segment is missing, so callers can distinguish "absent"
// from a present nil/empty value.
func (b Bag) Resolve(path string) (any, bool) {
	var current any = map[string]any(b)
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		next, ok := m[seg]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Bag:
		return map[string]any(m), true
	default:
		return nil, false
	}
}

// Substitute replaces every {{path}} token with the resolved value. A
// token whose path does not fully resolve is left verbatim in the output:
// an unresolved binding stays visibly diagnosable in a preview instead of
// becoming an empty string or the text "undefined".
func Substitute(s string, bag Bag) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return tokenRe.ReplaceAllStringFunc(s, func(token string) string {
		path := tokenRe.FindStringSubmatch(token)[1]
		v, ok := bag.Resolve(path)
		if !ok {
			return token
		}
		return Display(v)
	})
}

// Display renders a resolved value as plain text with no format applied.
func Display(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("02/01/2006")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FormatValue renders a value under one of the declared column/cell
// formats: text, number, currency, percentage, or date. Values that do
// not fit the requested format fall back to their plain display form
// rather than erroring — stored templates may point a numeric format at a
// text field.
func FormatValue(v any, format string) string {
	return FormatWith(v, format, "€")
}

// FormatWith is FormatValue with an explicit currency symbol, used when a
// company configures one.
func FormatWith(v any, format, symbol string) string {
	switch format {
	case "currency":
		f, ok := toFloat(v)
		if !ok {
			return Display(v)
		}
		return strconv.FormatFloat(f, 'f', 2, 64) + " " + symbol
	case "percentage":
		f, ok := toFloat(v)
		if !ok {
			return Display(v)
		}
		return strconv.FormatFloat(f, 'f', 1, 64) + " %"
	case "number":
		f, ok := toFloat(v)
		if !ok {
			return Display(v)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case "date":
		return formatDate(v)
	default:
		return Display(v)
	}
}

// formatDate renders a date under the document's day/month/year
// convention. String inputs are parsed from the common stored forms and
// passed through untouched when none matches.
func formatDate(v any) string {
	switch val := v.(type) {
	case time.Time:
		return val.Format("02/01/2006")
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006"} {
			if t, err := time.Parse(layout, val); err == nil {
				return t.Format("02/01/2006")
			}
		}
		return val
	default:
		return Display(v)
	}
}

// toFloat coerces the numeric shapes that JSON decoding and stores
// produce.
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
