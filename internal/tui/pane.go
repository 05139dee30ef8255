package tui

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// pane caches rendered output keyed on content and dimensions so an
// unchanged block is not re-wrapped on every frame.
type pane struct {
	lastHash uint64
	cached   string
}

func cacheKey(content string, w, h int) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%dx%d|%s", w, h, content))
}

// render returns the cached block when content and size are unchanged,
// otherwise calls draw and caches its result.
func (p *pane) render(content string, w, h int, draw func() string) string {
	k := cacheKey(content, w, h)
	if k == p.lastHash && p.cached != "" {
		return p.cached
	}
	p.lastHash = k
	p.cached = draw()
	return p.cached
}
