package markdown

import (
	"path/filepath"
	"regexp"
)

// dependentsSection captures the body of a "### Dependents" heading up to
// the next heading of any level or end of document.
var dependentsSection = regexp.MustCompile(`(?s)### Dependents\s*\n(.*?)(?:\n##|\n#|$)`)

// markdownLink matches [label](target.md) style links to task documents.
var markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+\.md)\)`)

// ExtractDependents returns the link targets declared in the document's
// Dependents section, in source order. A document without the section has
// no dependents. Targets are returned as written, usually relative to the
// linking document.
func ExtractDependents(text string) []string {
	section := dependentsSection.FindStringSubmatch(text)
	if section == nil {
		return nil
	}

	matches := markdownLink.FindAllStringSubmatch(section[1], -1)
	if len(matches) == 0 {
		return nil
	}

	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		targets = append(targets, m[2])
	}
	return targets
}

// ResolveDependents extracts the document's dependents and resolves each
// link relative to the directory containing taskPath, returning cleaned
// absolute-style paths. Order is preserved; it is the order dependents
// are solved.
func ResolveDependents(taskPath, text string) []string {
	targets := ExtractDependents(text)
	if len(targets) == 0 {
		return nil
	}

	dir := filepath.Dir(taskPath)
	resolved := make([]string, 0, len(targets))
	for _, target := range targets {
		if filepath.IsAbs(target) {
			resolved = append(resolved, filepath.Clean(target))
			continue
		}
		resolved = append(resolved, filepath.Clean(filepath.Join(dir, target)))
	}
	return resolved
}
