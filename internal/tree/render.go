// Package tree derives structure from the task tree on disk. The
// directory subtree rooted at the initial task file is the authoritative
// state; everything here re-reads from disk on every call so that edits
// made between the decompose and solve phases are always observed.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmhart/agenttree/internal/markdown"
	"github.com/jmhart/agenttree/pkg/models"
)

const (
	// hereMarker flags the current task in rendered tree context.
	hereMarker = " [YOU ARE HERE]"
	// summaryLimit caps summary length in rendered lines.
	summaryLimit = 60
)

// Render produces the tree context for a task: every task document under
// rootPath with its one-line summary, plan documents and non-markdown
// files excluded, and currentPath flagged. Output is deterministic for a
// given filesystem state and safe to call on partially built trees.
func Render(rootPath, currentPath string) (string, error) {
	rootAbs, err := filepath.Abs(rootPath)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", rootPath, err)
	}
	currentAbs, err := filepath.Abs(currentPath)
	if err != nil {
		return "", fmt.Errorf("resolve current task %s: %w", currentPath, err)
	}

	var b strings.Builder
	b.WriteString(filepath.Base(rootAbs) + "/")
	renderDir(&b, rootAbs, currentAbs, "")
	return b.String(), nil
}

// renderDir appends one directory level of task documents and recurses
// into each task's children directory.
func renderDir(b *strings.Builder, dir, current, prefix string) {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return
	}

	tasks := taskFiles(dir)
	for i, name := range tasks {
		path := filepath.Join(dir, name)
		last := i == len(tasks)-1

		connector := "├── "
		extension := "│   "
		if last {
			connector = "└── "
			extension = "    "
		}

		marker := ""
		if path == current {
			marker = hereMarker
		}

		fmt.Fprintf(b, "\n%s%s%s - %q%s", prefix, connector, name, summarize(path), marker)

		childrenDir := models.ChildrenDir(path)
		if info, err := os.Stat(childrenDir); err == nil && info.IsDir() {
			renderDir(b, childrenDir, current, prefix+extension)
		}
	}
}

// taskFiles lists the task documents directly inside dir, sorted
// lexicographically. A missing or unreadable directory yields nothing;
// partial trees render fine.
func taskFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !models.IsTaskFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

// summarize reads a task document's one-line summary, truncated for
// display.
func summarize(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unable to read summary"
	}

	summary := markdown.ExtractSummary(string(data))
	runes := []rune(summary)
	if len(runes) > summaryLimit {
		return string(runes[:summaryLimit-3]) + "..."
	}
	return summary
}
