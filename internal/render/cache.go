package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxIdleRenderers bounds how many built renderers are kept per option set.
const maxIdleRenderers = 4

// rendererCache hands out glamour renderers keyed by the Options they were
// built with. A TermRenderer must not be shared between goroutines, so a
// renderer is owned by one caller between acquire and release.
type rendererCache struct {
	mu   sync.Mutex
	idle map[Options]chan *glamour.TermRenderer
}

var replyRenderers = &rendererCache{
	idle: make(map[Options]chan *glamour.TermRenderer),
}

func (c *rendererCache) slot(opts Options) chan *glamour.TermRenderer {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.idle[opts]
	if !ok {
		ch = make(chan *glamour.TermRenderer, maxIdleRenderers)
		c.idle[opts] = ch
	}
	return ch
}

// acquire returns an idle renderer for opts or builds a new one.
func (c *rendererCache) acquire(opts Options) (*glamour.TermRenderer, error) {
	select {
	case r := <-c.slot(opts):
		return r, nil
	default:
		return newTermRenderer(opts)
	}
}

// release parks r for reuse. It is dropped when the slot is full.
func (c *rendererCache) release(opts Options, r *glamour.TermRenderer) {
	if r == nil {
		return
	}
	select {
	case c.slot(opts) <- r:
	default:
	}
}

func (c *rendererCache) idleCount(opts Options) int {
	return len(c.slot(opts))
}

// newTermRenderer builds a renderer for opts. Style names glamour does not
// know are loaded as JSON style files.
func newTermRenderer(opts Options) (*glamour.TermRenderer, error) {
	options := []glamour.TermRendererOption{
		glamour.WithStylePath(resolveStyle(opts.Style)),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		options = append(options, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		options = append(options, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(options...)
}

// ClearCache drops every idle renderer.
func ClearCache() {
	replyRenderers.mu.Lock()
	replyRenderers.idle = make(map[Options]chan *glamour.TermRenderer)
	replyRenderers.mu.Unlock()
}

// CacheSize returns how many option sets have a renderer slot.
func CacheSize() int {
	replyRenderers.mu.Lock()
	defer replyRenderers.mu.Unlock()
	return len(replyRenderers.idle)
}
