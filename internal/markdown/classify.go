// Package markdown provides pure accessors over task document text:
// classification, dependent extraction, and summary extraction. All
// functions are total; malformed input degrades to defaults instead of
// erroring so that human-edited documents never abort a run.
package markdown

import (
	"strings"

	"github.com/jmhart/agenttree/pkg/models"
)

// Classify determines a task's kind by scanning the document for the
// first literal occurrence of "simple" or "complex"; whichever appears
// first wins. Documents containing neither token classify as simple.
//
// This is a deliberate substring match rather than a section-scoped
// parse. Trees written by earlier tooling rely on these exact semantics,
// so any stricter parser must replace this function wholesale rather
// than adjust it.
func Classify(text string) models.Kind {
	lower := strings.ToLower(text)

	simpleIdx := strings.Index(lower, "simple")
	complexIdx := strings.Index(lower, "complex")

	switch {
	case simpleIdx == -1 && complexIdx == -1:
		return models.KindSimple
	case simpleIdx == -1:
		return models.KindComplex
	case complexIdx == -1:
		return models.KindSimple
	case complexIdx < simpleIdx:
		return models.KindComplex
	default:
		return models.KindSimple
	}
}
