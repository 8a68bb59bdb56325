package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// buildFixtureTree creates a small decomposed tree:
//
//	root/
//	  task.md (complex)
//	  task_plan.md
//	  task_children/{a.md, b.md, b_plan.md, b_children/c.md, notes.txt}
func buildFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "task.md"), "# Root Task\n## Type\ncomplex\n")
	writeFile(t, filepath.Join(root, "task_plan.md"), "# Plan\n")
	children := filepath.Join(root, "task_children")
	writeFile(t, filepath.Join(children, "a.md"), "# Do A\n## Type\nsimple\n")
	writeFile(t, filepath.Join(children, "b.md"), "# Do B\n## Type\ncomplex\n")
	writeFile(t, filepath.Join(children, "b_plan.md"), "# Plan B\n")
	writeFile(t, filepath.Join(children, "b_children", "c.md"), "# Do C\n## Type\nsimple\n")
	writeFile(t, filepath.Join(children, "notes.txt"), "not a task\n")

	return root
}

func TestRender(t *testing.T) {
	root := buildFixtureTree(t)
	current := filepath.Join(root, "task_children", "b.md")

	got, err := Render(root, current)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := filepath.Base(root) + "/\n" +
		"└── task.md - \"Root Task\"\n" +
		"    ├── a.md - \"Do A\"\n" +
		"    └── b.md - \"Do B\" [YOU ARE HERE]\n" +
		"        └── c.md - \"Do C\""

	if got != want {
		t.Errorf("Render mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderExcludesPlanAndNonMarkdown(t *testing.T) {
	root := buildFixtureTree(t)

	got, err := Render(root, filepath.Join(root, "task.md"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, forbidden := range []string{"task_plan.md", "b_plan.md", "notes.txt"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("Render output contains %s:\n%s", forbidden, got)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	root := buildFixtureTree(t)
	current := filepath.Join(root, "task.md")

	first, err := Render(root, current)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := Render(root, current)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if first != second {
		t.Errorf("Render not deterministic\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRenderSingleLeaf(t *testing.T) {
	root := t.TempDir()
	task := filepath.Join(root, "only.md")
	writeFile(t, task, "# Only Task\n")

	got, err := Render(root, task)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := filepath.Base(root) + "/\n└── only.md - \"Only Task\" [YOU ARE HERE]"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderTruncatesLongSummaries(t *testing.T) {
	root := t.TempDir()
	long := strings.Repeat("x", 80)
	writeFile(t, filepath.Join(root, "long.md"), "# "+long+"\n")

	got, err := Render(root, filepath.Join(root, "long.md"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantSummary := fmt.Sprintf("%q", strings.Repeat("x", 57)+"...")
	if !strings.Contains(got, wantSummary) {
		t.Errorf("Render missing truncated summary %s:\n%s", wantSummary, got)
	}
}

func TestRenderEmptyDir(t *testing.T) {
	root := t.TempDir()

	got, err := Render(root, filepath.Join(root, "missing.md"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != filepath.Base(root)+"/" {
		t.Errorf("Render of empty dir = %q", got)
	}
}
