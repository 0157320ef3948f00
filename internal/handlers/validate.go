package handlers

import (
	"strings"
	"unicode/utf8"

	"facturio/internal/doctree"
)

// Validation limits for template fields.
const (
	maxTemplateNameLen = 200
	maxElementsBytes   = 1_000_000
	maxElementCount    = 2_000
)

// validateTemplateName checks the template name and returns the first error found.
func validateTemplateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Template name is required."
	}
	if utf8.RuneCountInString(name) > maxTemplateNameLen {
		return "Template name is too long (max 200 characters)."
	}
	return ""
}

// validateElements checks the raw element payload size, decodes it and runs
// the structural checks. Returns the decoded tree and a list of problems;
// an empty list means the tree is valid.
func validateElements(raw []byte) ([]doctree.Element, []string) {
	if len(raw) > maxElementsBytes {
		return nil, []string{"Element tree is too large (max 1 MB)."}
	}

	elements, err := doctree.UnmarshalElements(raw)
	if err != nil {
		return nil, []string{"Element tree is not valid JSON: " + err.Error()}
	}
	if doctree.CountNodes(elements) > maxElementCount {
		return nil, []string{"Element tree has too many elements (max 2,000)."}
	}
	return elements, doctree.Validate(elements)
}
