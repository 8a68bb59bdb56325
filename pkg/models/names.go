package models

import (
	"path/filepath"
	"strings"
)

// The on-disk layout pairs every task document with sibling artifacts
// derived from its name:
//
//	<name>.md           task document
//	<name>_plan.md      plan document (complex tasks only)
//	<name>_children/    directory of subtask documents
//
// These names are a compatibility contract; trees written by one version
// must remain addressable by another.

const (
	planSuffix        = "_plan.md"
	childrenDirSuffix = "_children"
)

// TaskName returns the base name of a task document without its extension.
func TaskName(taskPath string) string {
	base := filepath.Base(taskPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PlanPath returns the conventional plan document path for a task.
func PlanPath(taskPath string) string {
	return filepath.Join(filepath.Dir(taskPath), TaskName(taskPath)+planSuffix)
}

// ChildrenDir returns the conventional children directory path for a task.
func ChildrenDir(taskPath string) string {
	return filepath.Join(filepath.Dir(taskPath), TaskName(taskPath)+childrenDirSuffix)
}

// IsPlanFile reports whether the file name follows the plan document
// convention. Plan documents are never traversed as tasks.
func IsPlanFile(name string) bool {
	return strings.HasSuffix(filepath.Base(name), planSuffix)
}

// IsTaskFile reports whether the file name is a markdown task document,
// excluding plan documents.
func IsTaskFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".md") && !IsPlanFile(base)
}
