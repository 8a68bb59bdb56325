package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmhart/agenttree/pkg/models"
)

// ListChildren returns the task documents inside a task's children
// directory, sorted lexicographically, plan documents excluded. A task
// without a children directory is a leaf and yields an empty list; any
// other read failure is surfaced.
func ListChildren(taskPath string) ([]string, error) {
	dir := models.ChildrenDir(taskPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read children of %s: %w", taskPath, err)
	}

	var children []string
	for _, entry := range entries {
		if entry.IsDir() || !models.IsTaskFile(entry.Name()) {
			continue
		}
		children = append(children, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(children)
	return children, nil
}

// FindRoot locates the workspace root for tree-context rendering by
// walking upward from the task file: the highest directory that still
// holds markdown files, stopping at the first parent that holds none.
// Falls back to the task's own directory.
func FindRoot(taskPath string) string {
	abs, err := filepath.Abs(taskPath)
	if err != nil {
		return filepath.Dir(taskPath)
	}

	current := filepath.Dir(abs)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		if !hasMarkdown(parent) {
			return current
		}
		current = parent
	}
	return filepath.Dir(abs)
}

// hasMarkdown reports whether dir directly contains any .md file.
func hasMarkdown(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".md" {
			return true
		}
	}
	return false
}
