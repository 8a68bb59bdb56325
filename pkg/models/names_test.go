package models

import (
	"path/filepath"
	"testing"
)

func TestTaskName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"fetch_urls.md", "fetch_urls"},
		{"/work/tasks/parse_html.md", "parse_html"},
		{"tasks/root_children/build.md", "build"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := TaskName(tt.path); got != tt.want {
			t.Errorf("TaskName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPlanPath(t *testing.T) {
	got := PlanPath("/work/tasks/fetch_urls.md")
	want := filepath.Join("/work/tasks", "fetch_urls_plan.md")
	if got != want {
		t.Errorf("PlanPath = %q, want %q", got, want)
	}
}

func TestChildrenDir(t *testing.T) {
	got := ChildrenDir("/work/tasks/fetch_urls.md")
	want := filepath.Join("/work/tasks", "fetch_urls_children")
	if got != want {
		t.Errorf("ChildrenDir = %q, want %q", got, want)
	}
}

func TestIsPlanFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"fetch_urls_plan.md", true},
		{"/abs/path/root_plan.md", true},
		{"fetch_urls.md", false},
		{"plan.md", false},
		{"_plan.md", true},
	}

	for _, tt := range tests {
		if got := IsPlanFile(tt.name); got != tt.want {
			t.Errorf("IsPlanFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsTaskFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"fetch_urls.md", true},
		{"fetch_urls_plan.md", false},
		{"notes.txt", false},
		{"README.md", true},
	}

	for _, tt := range tests {
		if got := IsTaskFile(tt.name); got != tt.want {
			t.Errorf("IsTaskFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindUnknown, KindSimple, KindComplex} {
		if !k.Valid() {
			t.Errorf("Kind(%q).Valid() = false, want true", k)
		}
	}
	if Kind("hard").Valid() {
		t.Error("Kind(\"hard\").Valid() = true, want false")
	}
}
