package markdown

import (
	"testing"

	"github.com/jmhart/agenttree/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Kind
	}{
		{"empty", "", models.KindSimple},
		{"whitespace only", "   \n\t\n  ", models.KindSimple},
		{"neither token", "# Fetch URLs\n\nDownload the pages.", models.KindSimple},
		{"only simple", "# Task\n## Type\nsimple\n", models.KindSimple},
		{"only complex", "# Task\n## Type\ncomplex\n", models.KindComplex},
		{"complex first", "this is complex work, keep it simple later", models.KindComplex},
		{"simple first", "a simple plan for a complex system", models.KindSimple},
		{"case insensitive", "## Type\nCOMPLEX\n", models.KindComplex},
		{"token inside word", "simplexity", models.KindSimple},
		{"token outside type section", "the complexity is high\n## Type\nsimple", models.KindComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Classify must never panic, whatever the input.
func TestClassifyTotal(t *testing.T) {
	inputs := []string{"", "\x00", "## Type", string(make([]byte, 1024))}
	for _, in := range inputs {
		got := Classify(in)
		if !got.Valid() || got == models.KindUnknown {
			t.Errorf("Classify(%q) = %q, want simple or complex", in, got)
		}
	}
}
