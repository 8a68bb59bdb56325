package markdown

import (
	"path/filepath"
	"reflect"
	"testing"
)

const docWithDependents = `# Parse HTML

## Type
simple

## Task
Parse the downloaded pages.

### Dependents
- [Fetch URLs](fetch_urls.md)
- [Store Results](../store/store_results.md)

## Notes
Nothing else.
`

func TestExtractDependents(t *testing.T) {
	got := ExtractDependents(docWithDependents)
	want := []string{"fetch_urls.md", "../store/store_results.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractDependents = %v, want %v", got, want)
	}
}

func TestExtractDependentsMissing(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty document", ""},
		{"no section", "# Task\n## Type\nsimple\n"},
		{"section without links", "### Dependents\nNone.\n"},
		{"links outside section", "[Other](other.md)\n## Task\nbody"},
		{"non-md link in section", "### Dependents\n[Site](https://example.com)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDependents(tt.text); len(got) != 0 {
				t.Errorf("ExtractDependents = %v, want empty", got)
			}
		})
	}
}

func TestExtractDependentsOrderPreserved(t *testing.T) {
	text := "### Dependents\n[c](c.md) [a](a.md)\n[b](b.md)\n"
	got := ExtractDependents(text)
	want := []string{"c.md", "a.md", "b.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractDependents = %v, want %v", got, want)
	}
}

func TestExtractDependentsStopsAtNextHeading(t *testing.T) {
	text := "### Dependents\n[a](a.md)\n## Notes\n[b](b.md)\n"
	got := ExtractDependents(text)
	want := []string{"a.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractDependents = %v, want %v", got, want)
	}
}

func TestResolveDependents(t *testing.T) {
	taskPath := filepath.Join("/work", "root_children", "parse_html.md")
	got := ResolveDependents(taskPath, docWithDependents)
	want := []string{
		filepath.Join("/work", "root_children", "fetch_urls.md"),
		filepath.Join("/work", "store", "store_results.md"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveDependents = %v, want %v", got, want)
	}
}
