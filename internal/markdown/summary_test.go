package markdown

import "testing"

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"heading first", "# Fetch URLs\nbody", "Fetch URLs"},
		{"leading blank lines", "\n\n  \nPlain first line\n# Later", "Plain first line"},
		{"empty", "", ""},
		{"whitespace only", " \n\t\n", ""},
		{"deep heading", "### Sub task\n", "Sub task"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSummary(tt.text); got != tt.want {
				t.Errorf("ExtractSummary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple heading", "# Fetch URLs\nbody", "Fetch URLs"},
		{"heading after prose", "intro line\n# Real Title\n", "Real Title"},
		{"no heading", "just prose\nmore prose", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTitle(tt.text); got != tt.want {
				t.Errorf("ExtractTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
