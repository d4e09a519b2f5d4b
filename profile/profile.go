// Package profile loads the TOML file that decides which sections,
// items and actions a dashboard session presents. The profile is thin
// configuration: everything here converts into the menu model once at
// startup and is never consulted again.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/lixenwraith/termdeck/menu"
	"github.com/lixenwraith/termdeck/toml"
)

// ErrInvalid wraps every validation failure so callers can
// distinguish bad profiles from I/O errors.
var ErrInvalid = errors.New("invalid profile")

//go:embed default.toml
var defaultTOML []byte

// Profile is the root of a dashboard configuration file.
type Profile struct {
	Title    string    `toml:"title"`
	Sections []Section `toml:"section"`
}

// Section groups items in the sidebar.
type Section struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Icon  string `toml:"icon"`
	Items []Item `toml:"item"`
}

// Item is one menu entry. Content and Lines are alternative detail
// payloads and mutually exclusive; Command, Sub and Quit decide what
// activation does.
type Item struct {
	ID       string   `toml:"id"`
	Label    string   `toml:"label"`
	Desc     string   `toml:"desc"`
	Content  string   `toml:"content"`
	Lines    []string `toml:"lines"`
	Command  string   `toml:"command"`
	Quit     bool     `toml:"quit"`
	Disabled bool     `toml:"disabled"`
	Sub      []Item   `toml:"sub"`
}

// Load reads and validates a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

// Parse validates a profile from raw TOML.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Default returns the embedded demonstration profile.
func Default() *Profile {
	p, err := Parse(defaultTOML)
	if err != nil {
		// The embedded profile is compiled in and covered by tests.
		panic(fmt.Sprintf("embedded default profile: %v", err))
	}
	return p
}

func (p *Profile) validate() error {
	if p.Title == "" {
		p.Title = "termdeck"
	}
	if len(p.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalid)
	}

	for si, sec := range p.Sections {
		if sec.Label == "" {
			return fmt.Errorf("%w: section %d has no label", ErrInvalid, si)
		}
		if sec.ID == "" {
			return fmt.Errorf("%w: section %q has no id", ErrInvalid, sec.Label)
		}
		if len(sec.Items) == 0 {
			return fmt.Errorf("%w: section %q has no items", ErrInvalid, sec.ID)
		}
		for ii, item := range sec.Items {
			if err := item.validate(); err != nil {
				return fmt.Errorf("%w: section %q item %d: %v", ErrInvalid, sec.ID, ii, err)
			}
		}
	}
	return nil
}

func (it *Item) validate() error {
	if it.Label == "" {
		return errors.New("no label")
	}
	if it.Content != "" && len(it.Lines) > 0 {
		return errors.New("content and lines are mutually exclusive")
	}
	if it.Quit && it.Command != "" {
		return errors.New("quit items cannot carry a command")
	}
	if it.Command != "" && len(it.Sub) > 0 {
		return errors.New("command and sub are mutually exclusive")
	}
	for _, sub := range it.Sub {
		if len(sub.Sub) > 0 {
			return errors.New("submenus cannot nest")
		}
		if err := sub.validate(); err != nil {
			return fmt.Errorf("sub %q: %v", sub.Label, err)
		}
	}
	return nil
}

// MenuSections converts the profile into the menu model consumed by
// the navigation state and renderer.
func (p *Profile) MenuSections() []menu.Section {
	out := make([]menu.Section, len(p.Sections))
	for i, sec := range p.Sections {
		items := make([]menu.Item, len(sec.Items))
		for j := range sec.Items {
			items[j] = sec.Items[j].menuItem()
		}
		var icon rune
		if sec.Icon != "" {
			icon = []rune(sec.Icon)[0]
		}
		out[i] = menu.Section{
			ID:    sec.ID,
			Label: sec.Label,
			Icon:  icon,
			Items: items,
		}
	}
	return out
}

func (it *Item) menuItem() menu.Item {
	m := menu.Item{
		ID:       it.ID,
		Label:    it.Label,
		Desc:     it.Desc,
		Command:  it.Command,
		Quit:     it.Quit,
		Disabled: it.Disabled,
	}
	if m.ID == "" {
		m.ID = it.Label
	}
	switch {
	case it.Content != "":
		m.Content = menu.Text(it.Content)
	case len(it.Lines) > 0:
		m.Content = menu.Lines(it.Lines)
	}
	for i := range it.Sub {
		m.Sub = append(m.Sub, it.Sub[i].menuItem())
	}
	return m
}
