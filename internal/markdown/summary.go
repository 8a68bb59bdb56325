package markdown

import "strings"

// ExtractSummary returns the first non-empty line of the document with
// any leading heading markers stripped. It is used only for tree-context
// rendering, never for control flow.
func ExtractSummary(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	}
	return ""
}

// ExtractTitle returns the text of the first heading line, or the empty
// string if the document has no heading.
func ExtractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
