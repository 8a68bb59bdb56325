// Package models defines the task document entities shared by the
// decomposition and solve engines.
package models

// Kind classifies a task document as directly solvable or needing
// further decomposition.
type Kind string

const (
	// KindUnknown is the zero value, before a document has been classified.
	KindUnknown Kind = "unknown"
	// KindSimple indicates the task can be solved directly.
	KindSimple Kind = "simple"
	// KindComplex indicates the task needs further decomposition.
	KindComplex Kind = "complex"
)

// Valid returns true if the kind is a known value.
func (k Kind) Valid() bool {
	switch k {
	case KindUnknown, KindSimple, KindComplex:
		return true
	default:
		return false
	}
}

// Task represents one markdown task document on disk.
type Task struct {
	// Path is the absolute path to the task document.
	Path string `json:"path"`
	// Name is the file stem, unique within its containing directory.
	Name string `json:"name"`
	// Title is the first heading of the document.
	Title string `json:"title,omitempty"`
	// Kind is the classification parsed from the document text.
	Kind Kind `json:"kind"`
	// Summary is the first non-empty line, used for tree rendering.
	Summary string `json:"summary,omitempty"`
	// Dependents lists resolved paths of documents that must be solved
	// before this one, in source order.
	Dependents []string `json:"dependents,omitempty"`
}
