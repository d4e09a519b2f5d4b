package events

import "github.com/lixenwraith/termdeck/logging"

type ActionTracer struct{}

type FilterTracer struct{}

var (
	Action = ActionTracer{}
	Filter = FilterTracer{}
)

func (ActionTracer) Run(id, command string) {
	logging.Trace("action.run", map[string]interface{}{"id": id, "command": command})
}

func (ActionTracer) Result(id string, lines int) {
	logging.Trace("action.result", map[string]interface{}{"id": id, "lines": lines})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (FilterTracer) Append(pattern string) {
	logging.Trace("filter.append", map[string]interface{}{"pattern": pattern})
}

func (FilterTracer) Match(pattern, label string, item int) {
	logging.Trace("filter.match", map[string]interface{}{
		"pattern": pattern,
		"label":   label,
		"item":    item,
	})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}
