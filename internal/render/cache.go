package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers hands out glamour renderers by option set. Building one parses
// the style sheet, so they are reused, but a TermRenderer cannot serve two
// Render calls at once: a caller holds its renderer until release.
var renderers = &rendererCache{
	free: make(map[Options]*sync.Pool),
}

type rendererCache struct {
	mu   sync.Mutex
	free map[Options]*sync.Pool
}

// poolFor returns the free list for opts, creating it on first use
func (c *rendererCache) poolFor(opts Options) *sync.Pool {
	c.mu.Lock()
	defer c.mu.Unlock()

	pool, ok := c.free[opts]
	if !ok {
		pool = &sync.Pool{}
		c.free[opts] = pool
	}
	return pool
}

// acquire takes an idle renderer for opts or builds a new one
func (c *rendererCache) acquire(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := c.poolFor(opts).Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	return newRenderer(opts)
}

// release returns r to the free list for opts
func (c *rendererCache) release(opts Options, r *glamour.TermRenderer) {
	if r != nil {
		c.poolFor(opts).Put(r)
	}
}

// reset forgets every free list
func (c *rendererCache) reset() {
	c.mu.Lock()
	c.free = make(map[Options]*sync.Pool)
	c.mu.Unlock()
}

// size is the number of distinct option sets seen since the last reset
func (c *rendererCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.free)
}

// newRenderer builds a renderer. Style names glamour ships with are used
// as built-in styles; anything else is read as a JSON style file.
func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	var style glamour.TermRendererOption
	switch {
	case opts.Style == "":
		style = glamour.WithStandardStyle(StyleDark)
	case IsStandardStyle(opts.Style):
		style = glamour.WithStandardStyle(opts.Style)
	default:
		style = glamour.WithStylePath(opts.Style)
	}

	ropts := []glamour.TermRendererOption{
		style,
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}
