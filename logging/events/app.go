// Package events offers typed tracers so call sites stay terse and
// event names live in one place.
package events

import "github.com/lixenwraith/termdeck/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(cols, rows int, profile string) {
	logging.Trace("app.start", map[string]interface{}{
		"cols":    cols,
		"rows":    rows,
		"profile": profile,
	})
}

func (AppTracer) Resize(cols, rows int) {
	logging.Trace("app.resize", map[string]interface{}{"cols": cols, "rows": rows})
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Panic(value interface{}) {
	logging.Trace("app.panic", map[string]interface{}{"value": value})
}
