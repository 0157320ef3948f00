// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package style turns the declarative style object stored on template
// elements into concrete CSS declarations. Both the static document
// renderer and the editable canvas use the same computation, so an
// element looks identical in either surface.
package style

import (
	"strconv"
	"strings"

	"facturio/internal/doctree"
)

// Length normalizes a dimension value into a CSS length string. Bare
// numbers and numeric strings are assumed to be pixels; strings that
// already carry a unit (or keywords like "auto") pass through unchanged.
// Templates may be hand-edited or come from older schema versions, so an
// unrecognized string is passed through rather than rejected, and an
// unset value falls back to "0px".
func Length(v any) string {
	if d, ok := v.(doctree.Dim); ok {
		v = d.Value()
	}

	switch val := v.(type) {
	case nil:
		return "0px"
	case int:
		return strconv.Itoa(val) + "px"
	case int64:
		return strconv.FormatInt(val, 10) + "px"
	case float64:
		return formatFloat(val) + "px"
	case float32:
		return formatFloat(float64(val)) + "px"
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return "0px"
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return s + "px"
		}
		return s
	default:
		return "0px"
	}
}

// formatFloat renders a number without a trailing ".0" for whole values.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
