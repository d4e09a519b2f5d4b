package render

import (
	"fmt"
	"time"

	"github.com/lixenwraith/termdeck/menu"
	"github.com/lixenwraith/termdeck/terminal"
	"github.com/lixenwraith/termdeck/terminal/tui"
)

// Frame geometry. Header holds the title row plus a separator rule,
// the footer is a single hint/clock row, and the sidebar takes a
// fixed width clamped to a third of the terminal.
const (
	headerRows   = 2
	footerRows   = 1
	sidebarWidth = 28

	minCols = 24
	minRows = 6
)

// Surface is the output target. terminal.Terminal satisfies it; tests
// substitute a recording fake.
type Surface interface {
	Size() (cols, rows int)
	Blit(cells []terminal.Cell, stride, x, y, w, h int)
	Clear(bg terminal.RGB)
	Flush() error
}

// Renderer composes the four dashboard regions into an off-screen
// cell buffer and pushes only the regions whose fingerprint changed
// since the previous frame. Resize or first paint invalidates the
// whole cache and repaints everything.
type Renderer struct {
	surf  Surface
	theme tui.Theme
	title string
	clock func() time.Time

	cells      []terminal.Cell
	cols, rows int

	cache cache

	status     string
	findActive bool
	input      string
	match      string
	result     []string
	scroll     int
	sideScroll int

	lastVisible int
	lastTotal   int
}

// New creates a renderer drawing to surf.
func New(surf Surface, theme tui.Theme, title string) *Renderer {
	return &Renderer{
		surf:  surf,
		theme: theme,
		title: title,
		clock: time.Now,
	}
}

// SetClock overrides the footer clock source.
func (r *Renderer) SetClock(clock func() time.Time) {
	r.clock = clock
}

// SetStatus sets the transient header status message.
func (r *Renderer) SetStatus(msg string) {
	r.status = msg
}

// SetFind controls the footer find prompt. While active the typed
// pattern and the best-match preview replace the key hints.
func (r *Renderer) SetFind(active bool, pattern, match string) {
	r.findActive = active
	r.input = pattern
	r.match = match
}

// SetResult replaces the content pane with dispatched action output.
// Nil restores the selected item's own content.
func (r *Renderer) SetResult(c menu.Content) {
	r.result = menu.Normalize(c)
}

// ScrollBy moves the content pane by delta lines, clamped to the
// wrapped line count of the last composed frame.
func (r *Renderer) ScrollBy(delta int) bool {
	next := tui.ClampScroll(r.scroll+delta, r.lastVisible, r.lastTotal)
	if next == r.scroll {
		return false
	}
	r.scroll = next
	return true
}

// Page returns the content pane's page-scroll distance.
func (r *Renderer) Page() int {
	return tui.PageDelta(r.lastVisible)
}

// ResetScroll rewinds the content pane to the top. Called whenever
// the selection changes.
func (r *Renderer) ResetScroll() {
	r.scroll = 0
}

// Render composes the frame for the current state and pushes changed
// regions to the surface. force repaints all regions regardless of
// fingerprints; size changes and the first paint imply force.
func (r *Renderer) Render(st *menu.State, force bool) error {
	cols, rows := r.surf.Size()

	if !r.cache.valid || cols != r.cache.cols || rows != r.cache.rows {
		force = true
		r.cache = cache{cols: cols, rows: rows}
		r.resize(cols, rows)
		r.surf.Clear(r.theme.Bg)
	}

	if cols < minCols || rows < minRows {
		return r.renderTooSmall(cols, rows)
	}

	root := tui.NewRegion(r.cells, cols, 0, 0, cols, rows)
	header, rest := tui.SplitVFixed(root, headerRows)
	body, footer := tui.SplitVFixed(rest, rest.H-footerRows)

	sideW := sidebarWidth
	if limit := cols / 3; sideW > limit {
		sideW = limit
	}
	sidebar, content := tui.SplitHFixed(body, sideW)
	content = content.Sub(1, 0, content.W-1, content.H)

	r.composeHeader(header, st)
	r.composeSidebar(sidebar, st)
	body.VLine(sideW, r.theme.Border, r.theme.Bg)
	r.composeContent(content, st)
	r.composeFooter(footer, st)

	// Sidebar rect includes the divider column so divider repaints
	// ride along with sidebar changes.
	rects := [regionCount][4]int{
		regionHeader:  {0, 0, cols, headerRows},
		regionSidebar: {0, headerRows, sideW + 1, body.H},
		regionContent: {sideW + 1, headerRows, cols - sideW - 1, body.H},
		regionFooter:  {0, rows - footerRows, cols, footerRows},
	}

	for i, rect := range rects {
		fp := hashRect(r.cells, cols, rect[0], rect[1], rect[2], rect[3])
		if force || fp != r.cache.fp[i] {
			r.surf.Blit(r.cells, cols, rect[0], rect[1], rect[2], rect[3])
			r.cache.fp[i] = fp
		}
	}

	r.cache.valid = true
	return r.surf.Flush()
}

func (r *Renderer) resize(cols, rows int) {
	r.cols = cols
	r.rows = rows
	if need := cols * rows; cap(r.cells) < need {
		r.cells = make([]terminal.Cell, need)
	} else {
		r.cells = r.cells[:cols*rows]
		for i := range r.cells {
			r.cells[i] = terminal.Cell{}
		}
	}
}

// renderTooSmall replaces the frame with a centered notice. The cache
// is left invalid so recovery repaints the full frame.
func (r *Renderer) renderTooSmall(cols, rows int) error {
	root := tui.NewRegion(r.cells, cols, 0, 0, cols, rows)
	root.Fill(r.theme.Bg)
	msg := fmt.Sprintf("%dx%d too small", cols, rows)
	root.TextCenter(rows/2, msg, r.theme.ErrorFg, r.theme.Bg, terminal.AttrBold)

	r.cache.valid = false
	r.surf.Blit(r.cells, cols, 0, 0, cols, rows)
	return r.surf.Flush()
}

func (r *Renderer) composeHeader(reg tui.Region, st *menu.State) {
	reg.Fill(r.theme.HeaderBg)

	reg.Text(1, 0, r.title, r.theme.HeaderFg, r.theme.HeaderBg, terminal.AttrBold)
	reg.TextCenter(0, r.breadcrumb(st), r.theme.HeaderFg, r.theme.HeaderBg, terminal.AttrNone)
	if r.status != "" {
		reg.Text(reg.W-tui.DisplayWidth(r.status)-1, 0, r.status,
			r.theme.AccentFg, r.theme.HeaderBg, terminal.AttrNone)
	}

	sep := reg.Sub(0, 1, reg.W, 1)
	sep.Fill(r.theme.Bg)
	sep.HLine(0, r.theme.Border, r.theme.Bg)
}

func (r *Renderer) breadcrumb(st *menu.State) string {
	sec := st.CurrentSection()
	item := sec.Items[st.ItemIndex()]
	crumb := sec.Label + " › " + item.Label
	if st.InSubmenu() {
		crumb += " › " + st.SubmenuTitle()
	}
	return crumb
}

// composeSidebar lays out every section with its items, keeps the
// cursor row visible, and marks the active selection. Row layout is
// computed twice: once to locate the cursor, once to draw.
func (r *Renderer) composeSidebar(reg tui.Region, st *menu.State) {
	reg.Fill(r.theme.Bg)

	sections := st.Sections()
	activeSec := st.SectionIndex()
	activeItem := st.ItemIndex()

	totalRows := 0
	cursorRow := 0
	for si, sec := range sections {
		totalRows++ // section row
		for ii := range sec.Items {
			if si == activeSec && ii == activeItem {
				cursorRow = totalRows
			}
			totalRows++
		}
		if si < len(sections)-1 {
			totalRows++ // blank spacer
		}
	}

	r.sideScroll = tui.AdjustScroll(cursorRow, r.sideScroll, reg.H, totalRows)

	row := 0
	draw := func(render func(y int)) {
		if y := row - r.sideScroll; y >= 0 && y < reg.H {
			render(y)
		}
		row++
	}

	for si, sec := range sections {
		draw(func(y int) {
			fg := r.theme.SectionFg
			attr := terminal.AttrNone
			if si == activeSec {
				fg = r.theme.ActiveFg
				attr = terminal.AttrBold
			}
			label := sec.Label
			if sec.Icon != 0 {
				label = string(sec.Icon) + " " + label
			}
			reg.Text(0, y, tui.Truncate(label, reg.W), fg, r.theme.Bg, attr)
		})

		for ii, item := range sec.Items {
			draw(func(y int) {
				selected := si == activeSec && ii == activeItem && !st.InSubmenu()
				bg := r.theme.Bg
				fg := r.theme.Fg
				attr := terminal.AttrNone
				switch {
				case selected:
					bg = r.theme.CursorBg
					fg = r.theme.CursorFg
				case item.Disabled:
					fg = r.theme.DisabledFg
					attr = terminal.AttrDim
				}

				if selected {
					line := reg.Sub(0, y, reg.W, 1)
					line.Fill(bg)
				}

				prefix := "  "
				if si == activeSec && ii <= 9 {
					prefix = fmt.Sprintf("%d ", ii)
				}
				reg.Text(1, y, prefix+tui.Truncate(item.Label, reg.W-4), fg, bg, attr)
			})
		}

		if si < len(sections)-1 {
			draw(func(y int) {})
		}
	}
}

func (r *Renderer) composeContent(reg tui.Region, st *menu.State) {
	reg.Fill(r.theme.Bg)
	inner := reg.Sub(1, 0, reg.W-2, reg.H)

	if st.InSubmenu() {
		r.composeSubmenu(inner, st)
		return
	}

	item := st.CurrentItem()

	inner.Text(0, 0, tui.Truncate(item.Label, inner.W-4), r.theme.ActiveFg, r.theme.Bg, terminal.AttrBold)
	inner.HLine(1, r.theme.Border, r.theme.Bg)

	lines := r.result
	if lines == nil {
		lines = menu.Normalize(item.Content)
		if lines == nil && item.Desc != "" {
			lines = []string{item.Desc}
		}
	}

	var wrapped []string
	for _, line := range lines {
		wrapped = append(wrapped, tui.Wrap(line, inner.W)...)
	}

	visible := inner.H - 2
	if visible < 0 {
		visible = 0
	}
	r.lastVisible = visible
	r.lastTotal = len(wrapped)
	r.scroll = tui.ClampScroll(r.scroll, visible, len(wrapped))

	for i := 0; i < visible && r.scroll+i < len(wrapped); i++ {
		inner.Text(0, 2+i, wrapped[r.scroll+i], r.theme.Fg, r.theme.Bg, terminal.AttrNone)
	}

	tui.ScrollIndicator(inner, 0, r.scroll, visible, len(wrapped), r.theme.HintFg, r.theme.Bg)
}

// composeSubmenu renders the modal submenu list in the content pane.
// The selection and the digit hints use the submenu's parallel index.
func (r *Renderer) composeSubmenu(inner tui.Region, st *menu.State) {
	inner.Text(0, 0, tui.Truncate(st.SubmenuTitle(), inner.W), r.theme.ActiveFg, r.theme.Bg, terminal.AttrBold)
	inner.HLine(1, r.theme.Border, r.theme.Bg)

	items := st.SubmenuItems()
	selected := st.SubmenuIndex()

	for i, item := range items {
		y := 2 + i
		if y >= inner.H {
			break
		}

		bg := r.theme.Bg
		fg := r.theme.Fg
		attr := terminal.AttrNone
		switch {
		case i == selected:
			bg = r.theme.CursorBg
			fg = r.theme.CursorFg
		case item.Disabled:
			fg = r.theme.DisabledFg
			attr = terminal.AttrDim
		}

		if i == selected {
			line := inner.Sub(0, y, inner.W, 1)
			line.Fill(bg)
		}

		prefix := "  "
		if i <= 9 {
			prefix = fmt.Sprintf("%d ", i)
		}
		text := prefix + item.Label
		if item.Desc != "" {
			text += "  " + item.Desc
		}
		inner.Text(0, y, tui.Truncate(text, inner.W), fg, bg, attr)
	}

	r.lastVisible = 0
	r.lastTotal = 0
}

func (r *Renderer) composeFooter(reg tui.Region, st *menu.State) {
	reg.Fill(r.theme.FooterBg)

	var left string
	switch {
	case r.findActive:
		left = "/" + r.input + "▌"
		if r.match != "" {
			left += "  → " + r.match
		}
	case st.InSubmenu():
		left = "↑↓ move   ⏎ select   esc back"
	default:
		left = "↑↓ move   ←→ section   ⏎ run   0-9 jump   / find   q quit"
	}
	fg := r.theme.FooterFg
	if r.findActive {
		fg = r.theme.AccentFg
	}
	reg.Text(1, 0, tui.Truncate(left, reg.W-11), fg, r.theme.FooterBg, terminal.AttrNone)

	now := r.clock().Format("15:04:05")
	reg.Text(reg.W-tui.DisplayWidth(now)-1, 0, now, r.theme.FooterFg, r.theme.FooterBg, terminal.AttrNone)
}
