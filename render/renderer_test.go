package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/lixenwraith/termdeck/menu"
	"github.com/lixenwraith/termdeck/terminal"
	"github.com/lixenwraith/termdeck/terminal/tui"
)

// fakeSurface records pushed rects instead of writing a terminal.
type fakeSurface struct {
	cols, rows int
	blits      [][4]int
	clears     int
	flushes    int
}

func (f *fakeSurface) Size() (int, int) { return f.cols, f.rows }

func (f *fakeSurface) Blit(cells []terminal.Cell, stride, x, y, w, h int) {
	f.blits = append(f.blits, [4]int{x, y, w, h})
}

func (f *fakeSurface) Clear(bg terminal.RGB) { f.clears++ }
func (f *fakeSurface) Flush() error          { f.flushes++; return nil }

func (f *fakeSurface) reset() { f.blits = nil }

// regionNames maps recorded rects to region names by geometry.
func (f *fakeSurface) regionNames() map[string]int {
	out := map[string]int{}
	for _, b := range f.blits {
		x, y, _, h := b[0], b[1], b[2], b[3]
		switch {
		case y == 0 && h == f.rows:
			out["full"]++
		case y == 0:
			out["header"]++
		case y == f.rows-1:
			out["footer"]++
		case x == 0:
			out["sidebar"]++
		default:
			out["content"]++
		}
	}
	return out
}

func contentLines(n int) menu.Content {
	lines := make(menu.Lines, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("log line %d", i)
	}
	return lines
}

func testSections() []menu.Section {
	return []menu.Section{
		{
			ID:    "services",
			Label: "Services",
			Items: []menu.Item{
				{ID: "api", Label: "api-server", Content: menu.Text("api status: running\nuptime 14d")},
				{ID: "worker", Label: "worker", Content: contentLines(60)},
			},
		},
		{
			ID:    "deploys",
			Label: "Deploys",
			Items: []menu.Item{
				{ID: "prod", Label: "production", Content: menu.Text("last deploy: 2h ago")},
			},
		},
	}
}

func newTestRenderer(t *testing.T) (*Renderer, *fakeSurface, *menu.State) {
	t.Helper()
	surf := &fakeSurface{cols: 80, rows: 24}
	r := New(surf, tui.DefaultTheme, "opsdeck")
	fixed := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	r.SetClock(func() time.Time { return fixed })

	st, err := menu.NewState(testSections())
	if err != nil {
		t.Fatalf("NewState() error: %v", err)
	}
	return r, surf, st
}

func TestFirstRenderPushesAllRegions(t *testing.T) {
	r, surf, st := newTestRenderer(t)

	if err := r.Render(st, false); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	got := surf.regionNames()
	for _, name := range []string{"header", "sidebar", "content", "footer"} {
		if got[name] != 1 {
			t.Errorf("Expected 1 %s blit on first paint, got %d (%v)", name, got[name], got)
		}
	}
	if surf.flushes != 1 {
		t.Errorf("Expected 1 flush, got %d", surf.flushes)
	}
}

func TestUnchangedRenderPushesNothing(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	surf.reset()
	r.Render(st, false)

	if len(surf.blits) != 0 {
		t.Errorf("Expected 0 blits for unchanged frame, got %v", surf.regionNames())
	}
}

func TestNavigationChangePushesAffectedRegions(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	st.Down()
	surf.reset()
	r.Render(st, false)

	got := surf.regionNames()
	// Breadcrumb, cursor mark and detail pane change; the footer
	// (hints + frozen clock) does not.
	for _, name := range []string{"header", "sidebar", "content"} {
		if got[name] != 1 {
			t.Errorf("Expected %s blit after navigation, got %v", name, got)
		}
	}
	if got["footer"] != 0 {
		t.Errorf("Footer blitted without visible change: %v", got)
	}
}

func TestClockTickPushesFooterOnly(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	tick := time.Date(2025, 6, 1, 10, 30, 1, 0, time.UTC)
	r.SetClock(func() time.Time { return tick })

	surf.reset()
	r.Render(st, false)

	got := surf.regionNames()
	if got["footer"] != 1 {
		t.Errorf("Expected footer blit on clock tick, got %v", got)
	}
	if got["header"]+got["sidebar"]+got["content"] != 0 {
		t.Errorf("Non-footer regions blitted on clock tick: %v", got)
	}
}

func TestSameSecondTickPushesNothing(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	// Sub-second tick: formatted time is identical.
	tick := time.Date(2025, 6, 1, 10, 30, 0, 500e6, time.UTC)
	r.SetClock(func() time.Time { return tick })

	surf.reset()
	r.Render(st, false)

	if len(surf.blits) != 0 {
		t.Errorf("Expected 0 blits within the same second, got %v", surf.regionNames())
	}
}

func TestResizeRepaintsEverything(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	surf.cols, surf.rows = 100, 30
	surf.reset()
	r.Render(st, false)

	if surf.clears != 2 {
		t.Errorf("Expected screen clear on resize, got %d clears", surf.clears)
	}
	got := surf.regionNames()
	for _, name := range []string{"header", "sidebar", "content", "footer"} {
		if got[name] != 1 {
			t.Errorf("Expected %s repaint after resize, got %v", name, got)
		}
	}
}

func TestForceRepaintsWithoutChanges(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	surf.reset()
	r.Render(st, true)

	got := surf.regionNames()
	for _, name := range []string{"header", "sidebar", "content", "footer"} {
		if got[name] != 1 {
			t.Errorf("Expected forced %s repaint, got %v", name, got)
		}
	}
}

func TestStatusChangePushesHeaderOnly(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	r.SetStatus("deploy: exit 0")
	surf.reset()
	r.Render(st, false)

	got := surf.regionNames()
	if got["header"] != 1 {
		t.Errorf("Expected header blit after status change, got %v", got)
	}
	if got["sidebar"]+got["content"]+got["footer"] != 0 {
		t.Errorf("Unrelated regions blitted on status change: %v", got)
	}
}

func TestFindPromptPushesFooterOnly(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	r.SetFind(true, "wor", "worker")
	surf.reset()
	r.Render(st, false)

	got := surf.regionNames()
	if got["footer"] != 1 {
		t.Errorf("Expected footer blit after find prompt change, got %v", got)
	}
	if got["header"]+got["sidebar"]+got["content"] != 0 {
		t.Errorf("Unrelated regions blitted on find prompt change: %v", got)
	}
}

func TestResultOverridesContent(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	r.SetResult(menu.Lines{"total 12K", "drwxr-xr-x"})
	surf.reset()
	r.Render(st, false)

	got := surf.regionNames()
	if got["content"] != 1 {
		t.Errorf("Expected content blit after result set, got %v", got)
	}
	if got["header"]+got["sidebar"]+got["footer"] != 0 {
		t.Errorf("Unrelated regions blitted on result set: %v", got)
	}

	r.SetResult(nil)
	surf.reset()
	r.Render(st, false)

	if got := surf.regionNames(); got["content"] != 1 {
		t.Errorf("Expected content blit after result cleared, got %v", got)
	}
}

func TestScrollClamping(t *testing.T) {
	r, _, st := newTestRenderer(t)
	// Select the 60-line item so the pane overflows.
	st.Down()
	r.Render(st, false)

	if !r.ScrollBy(5) {
		t.Error("ScrollBy(5) reported no change on overflowing content")
	}
	if r.ScrollBy(-100) != true {
		t.Error("ScrollBy(-100) should clamp back to top")
	}
	if r.ScrollBy(-1) {
		t.Error("ScrollBy(-1) at top reported a change")
	}

	r.ScrollBy(10000)
	before := r.scroll
	if r.ScrollBy(1) {
		t.Error("ScrollBy(1) at bottom reported a change")
	}
	if r.scroll != before {
		t.Errorf("Scroll moved past bottom: %d -> %d", before, r.scroll)
	}
}

func TestScrollChangePushesContentOnly(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	st.Down()
	r.Render(st, false)

	r.ScrollBy(r.Page())
	surf.reset()
	r.Render(st, false)

	got := surf.regionNames()
	if got["content"] != 1 {
		t.Errorf("Expected content blit after scroll, got %v", got)
	}
	if got["header"]+got["sidebar"]+got["footer"] != 0 {
		t.Errorf("Unrelated regions blitted on scroll: %v", got)
	}
}

func TestSubmenuRendersInContentPane(t *testing.T) {
	r, surf, st := newTestRenderer(t)
	r.Render(st, false)

	st.EnterSubmenu("Options", []menu.Item{
		{ID: "restart", Label: "restart"},
		{ID: "logs", Label: "tail logs"},
	})
	surf.reset()
	r.Render(st, false)

	got := surf.regionNames()
	// Header breadcrumb, sidebar (cursor unmarked while modal),
	// content (submenu list) and footer (hint set) all change.
	for _, name := range []string{"header", "content", "footer"} {
		if got[name] != 1 {
			t.Errorf("Expected %s blit after submenu enter, got %v", name, got)
		}
	}
}

func TestTinyTerminalDoesNotCrash(t *testing.T) {
	surf := &fakeSurface{cols: 8, rows: 3}
	r := New(surf, tui.DefaultTheme, "opsdeck")
	st, err := menu.NewState(testSections())
	if err != nil {
		t.Fatalf("NewState() error: %v", err)
	}

	if err := r.Render(st, false); err != nil {
		t.Fatalf("Render() on 8x3 terminal: %v", err)
	}
	if len(surf.blits) == 0 {
		t.Error("Expected a notice blit on tiny terminal")
	}

	// Recovery to a workable size repaints the full frame.
	surf.cols, surf.rows = 80, 24
	surf.reset()
	if err := r.Render(st, false); err != nil {
		t.Fatalf("Render() after recovery: %v", err)
	}
	got := surf.regionNames()
	for _, name := range []string{"header", "sidebar", "content", "footer"} {
		if got[name] != 1 {
			t.Errorf("Expected %s repaint after recovery, got %v", name, got)
		}
	}
}
