package deck

import (
	"testing"

	"github.com/lixenwraith/termdeck/menu"
)

func matchSections() []menu.Section {
	return []menu.Section{
		{ID: "sys", Label: "System", Items: []menu.Item{
			{ID: "overview", Label: "overview"},
			{ID: "db", Label: "database backup"},
		}},
		{ID: "ops", Label: "Operations", Items: []menu.Item{
			{ID: "deploy", Label: "deploy production"},
			{ID: "override", Label: "override"},
		}},
	}
}

func TestBestMatch(t *testing.T) {
	sections := matchSections()

	tests := []struct {
		name    string
		pattern string
		section int
		item    int
		found   bool
	}{
		{"exact label", "overview", 0, 0, true},
		{"exact beats prefix", "override", 1, 1, true},
		{"case folded exact", "DATABASE BACKUP", 0, 1, true},
		{"prefix", "dep", 1, 0, true},
		{"fuzzy subsequence", "dbbkp", 0, 1, true},
		{"no match", "zzz", 0, 0, false},
		{"empty pattern", "", 0, 0, false},
		{"whitespace only", "   ", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bestMatch(sections, tt.pattern)
			if ok != tt.found {
				t.Fatalf("bestMatch(%q) found = %v, want %v", tt.pattern, ok, tt.found)
			}
			if !ok {
				return
			}
			if got.section != tt.section || got.item != tt.item {
				t.Errorf("bestMatch(%q) = (%d,%d), want (%d,%d)",
					tt.pattern, got.section, got.item, tt.section, tt.item)
			}
		})
	}
}

func TestFinderEditing(t *testing.T) {
	var f finder

	f.start()
	if !f.active || f.pattern != "" {
		t.Fatalf("start left finder in %+v", f)
	}

	f.append('a')
	f.append('é')
	if f.pattern != "aé" {
		t.Errorf("Pattern = %q, want aé", f.pattern)
	}

	if !f.backspace() {
		t.Error("backspace on non-empty pattern reported no change")
	}
	if f.pattern != "a" {
		t.Errorf("Pattern = %q after rune backspace, want a", f.pattern)
	}

	if !f.backspace() {
		t.Error("backspace on last rune reported no change")
	}
	if f.backspace() {
		t.Error("backspace on empty pattern reported a change")
	}

	f.stop()
	if f.active {
		t.Error("stop left finder active")
	}
}
