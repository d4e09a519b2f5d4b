package events

import "github.com/lixenwraith/termdeck/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Move(section, item int) {
	logging.Trace("nav.move", map[string]interface{}{"section": section, "item": item})
}

func (NavTracer) QuickSelect(digit, item int) {
	logging.Trace("nav.quick-select", map[string]interface{}{"digit": digit, "item": item})
}

func (NavTracer) SubmenuEnter(title string, items int) {
	logging.Trace("submenu.enter", map[string]interface{}{"title": title, "items": items})
}

func (NavTracer) SubmenuExit(title string) {
	logging.Trace("submenu.exit", map[string]interface{}{"title": title})
}
