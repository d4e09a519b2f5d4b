package deck

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/lixenwraith/termdeck/menu"
)

// finder is the quick-jump state: a typed pattern matched against
// every item label across all sections.
type finder struct {
	active  bool
	pattern string
}

func (f *finder) start() {
	f.active = true
	f.pattern = ""
}

func (f *finder) stop() {
	f.active = false
	f.pattern = ""
}

func (f *finder) append(r rune) {
	f.pattern += string(r)
}

func (f *finder) backspace() bool {
	if f.pattern == "" {
		return false
	}
	rs := []rune(f.pattern)
	f.pattern = string(rs[:len(rs)-1])
	return true
}

// target is a match position in root navigation space.
type target struct {
	section, item int
	label         string
}

// bestMatch ranks pattern against all item labels: exact fold match
// first, then prefix, then fuzzy distance with earlier positions
// breaking ties.
func bestMatch(sections []menu.Section, pattern string) (target, bool) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return target{}, false
	}

	var labels []string
	var positions []target
	for si, sec := range sections {
		for ii, item := range sec.Items {
			labels = append(labels, item.Label)
			positions = append(positions, target{section: si, item: ii, label: item.Label})
		}
	}

	for i, label := range labels {
		if strings.EqualFold(label, trimmed) {
			return positions[i], true
		}
	}

	lower := strings.ToLower(trimmed)
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return positions[i], true
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return target{}, false
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return positions[best.OriginalIndex], true
}
