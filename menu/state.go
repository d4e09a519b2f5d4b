package menu

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSections means the profile produced an empty section list.
	ErrNoSections = errors.New("menu: no sections")

	// ErrEmptySection means a section has no items. Empty sections
	// are a configuration error, never a runtime state.
	ErrEmptySection = errors.New("menu: empty section")
)

// State holds the navigation position: current section, selected item
// and an optional single-level submenu with its own parallel index.
// While a submenu is open the parent position is frozen. All
// transitions are pure and report whether a visible change occurred,
// which drives selective re-rendering.
type State struct {
	sections []Section
	section  int
	index    int

	sub      []Item // nil when no submenu is open
	subTitle string
	subIndex int

	cols, rows int
}

// NewState validates the section list and starts at the first item of
// the first section.
func NewState(sections []Section) (*State, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	for _, sec := range sections {
		if len(sec.Items) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptySection, sec.ID)
		}
	}
	return &State{sections: sections}, nil
}

// Sections returns the root section list.
func (s *State) Sections() []Section { return s.sections }

// SectionIndex returns the current root section. Frozen while a
// submenu is open.
func (s *State) SectionIndex() int { return s.section }

// ItemIndex returns the selected item within the current root
// section. Frozen while a submenu is open.
func (s *State) ItemIndex() int { return s.index }

// InSubmenu reports whether a submenu is open.
func (s *State) InSubmenu() bool { return s.sub != nil }

// SubmenuTitle returns the open submenu's title, or "".
func (s *State) SubmenuTitle() string { return s.subTitle }

// SubmenuItems returns the open submenu's item list, or nil.
func (s *State) SubmenuItems() []Item { return s.sub }

// SubmenuIndex returns the selection within the open submenu.
func (s *State) SubmenuIndex() int { return s.subIndex }

// CurrentItem returns the selected item in the current context.
func (s *State) CurrentItem() Item {
	if s.sub != nil {
		return s.sub[s.subIndex]
	}
	return s.sections[s.section].Items[s.index]
}

// CurrentSection returns the current root section.
func (s *State) CurrentSection() Section {
	return s.sections[s.section]
}

// ItemCount returns the item count of the current context.
func (s *State) ItemCount() int {
	if s.sub != nil {
		return len(s.sub)
	}
	return len(s.sections[s.section].Items)
}

// Down moves to the next item. At the last item of a section it
// wraps forward to the next section's first item; at the very last
// item it is a no-op. Submenus are flat, so there it only steps.
func (s *State) Down() bool {
	if s.sub != nil {
		if s.subIndex < len(s.sub)-1 {
			s.subIndex++
			return true
		}
		return false
	}
	if s.index < len(s.sections[s.section].Items)-1 {
		s.index++
		return true
	}
	if s.section < len(s.sections)-1 {
		s.section++
		s.index = 0
		return true
	}
	return false
}

// Up moves to the previous item. At the first item of a section it
// wraps backward to the previous section's last item; at the very
// first item it is a no-op.
func (s *State) Up() bool {
	if s.sub != nil {
		if s.subIndex > 0 {
			s.subIndex--
			return true
		}
		return false
	}
	if s.index > 0 {
		s.index--
		return true
	}
	if s.section > 0 {
		s.section--
		s.index = len(s.sections[s.section].Items) - 1
		return true
	}
	return false
}

// Right jumps to the next section, resetting the selection to its
// first item. Clamped at the last section; no-op inside a submenu.
func (s *State) Right() bool {
	if s.sub != nil {
		return false
	}
	if s.section < len(s.sections)-1 {
		s.section++
		s.index = 0
		return true
	}
	return false
}

// Left jumps to the previous section, resetting the selection.
// atStart reports that no further leftward navigation exists: at the
// first section, and always inside a submenu (where the caller pops
// the submenu instead). The event loop maps atStart at the top level
// to an exit request.
func (s *State) Left() (changed, atStart bool) {
	if s.sub != nil {
		return false, true
	}
	if s.section > 0 {
		s.section--
		s.index = 0
		return true, false
	}
	return false, true
}

// QuickSelect jumps the current context's selection directly to item
// d. Out-of-range digits are no-ops, and re-selecting the current
// index reports no change.
func (s *State) QuickSelect(d int) bool {
	if d < 0 || d > 9 {
		return false
	}
	if s.sub != nil {
		if d >= len(s.sub) || d == s.subIndex {
			return false
		}
		s.subIndex = d
		return true
	}
	if d >= len(s.sections[s.section].Items) || d == s.index {
		return false
	}
	s.index = d
	return true
}

// JumpTo moves the cursor straight to (section, item), used by the
// quick-jump finder. Out-of-range positions and submenu mode are
// no-ops.
func (s *State) JumpTo(section, item int) bool {
	if s.sub != nil {
		return false
	}
	if section < 0 || section >= len(s.sections) {
		return false
	}
	if item < 0 || item >= len(s.sections[section].Items) {
		return false
	}
	if section == s.section && item == s.index {
		return false
	}
	s.section = section
	s.index = item
	return true
}

// First jumps to the first item of the current context.
func (s *State) First() bool {
	if s.sub != nil {
		if s.subIndex == 0 {
			return false
		}
		s.subIndex = 0
		return true
	}
	if s.index == 0 {
		return false
	}
	s.index = 0
	return true
}

// Last jumps to the last item of the current context.
func (s *State) Last() bool {
	if s.sub != nil {
		last := len(s.sub) - 1
		if s.subIndex == last {
			return false
		}
		s.subIndex = last
		return true
	}
	last := len(s.sections[s.section].Items) - 1
	if s.index == last {
		return false
	}
	s.index = last
	return true
}

// EnterSubmenu opens a submenu with an independent index space. The
// parent selection stays frozen. No-op when a submenu is already open
// (submenus do not nest) or when items is empty.
func (s *State) EnterSubmenu(title string, items []Item) bool {
	if s.sub != nil || len(items) == 0 {
		return false
	}
	s.sub = items
	s.subTitle = title
	s.subIndex = 0
	return true
}

// ExitSubmenu closes the open submenu, restoring the parent position
// untouched. No-op at the root.
func (s *State) ExitSubmenu() bool {
	if s.sub == nil {
		return false
	}
	s.sub = nil
	s.subTitle = ""
	s.subIndex = 0
	return true
}

// UpdateSize records the terminal size, reporting whether it changed.
// The event loop polls this every iteration to trigger full redraws.
func (s *State) UpdateSize(cols, rows int) bool {
	if cols == s.cols && rows == s.rows {
		return false
	}
	s.cols = cols
	s.rows = rows
	return true
}

// Size returns the last recorded terminal size.
func (s *State) Size() (cols, rows int) {
	return s.cols, s.rows
}
