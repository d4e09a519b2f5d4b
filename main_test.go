package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lixenwraith/termdeck/profile"
)

func TestListProfilePrintsEverySection(t *testing.T) {
	p := profile.Default()

	var buf bytes.Buffer
	listProfile(&buf, p)
	out := buf.String()

	if !strings.Contains(out, p.Title) {
		t.Errorf("Output missing title %q", p.Title)
	}
	for _, sec := range p.Sections {
		if !strings.Contains(out, sec.Label) {
			t.Errorf("Output missing section %q", sec.Label)
		}
		for _, item := range sec.Items {
			if !strings.Contains(out, item.Label) {
				t.Errorf("Output missing item %q", item.Label)
			}
		}
	}
	if !strings.Contains(out, "0. ") {
		t.Error("Output missing quick-select numbering")
	}
}

func TestLoadProfileFallsBackToDefault(t *testing.T) {
	p, err := loadProfile("")
	if err != nil {
		t.Fatalf("loadProfile(\"\") error: %v", err)
	}
	if len(p.Sections) == 0 {
		t.Error("Default profile has no sections")
	}

	if _, err := loadProfile("/nonexistent/profile.toml"); err == nil {
		t.Error("Expected error for missing profile path")
	}
}
