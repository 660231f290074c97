package session

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/poseview/internal/render"
	"github.com/five82/poseview/internal/scene"
)

// Entry describes how to build a label's renderables.
type Entry struct {
	Label      string
	Color      colorful.Color
	Factories  []render.Factory
	AutoToggle bool

	instances []render.Renderable
}

// Instantiated reports whether the factories have already run.
func (e *Entry) Instantiated() bool {
	return e.instances != nil
}

// instantiate runs the factories on first call and returns the same set on
// every later call.
func (e *Entry) instantiate(surface scene.Surface) []render.Renderable {
	if e.instances != nil {
		return e.instances
	}
	style := render.Style{Color: e.Color}
	set := make([]render.Renderable, 0, len(e.Factories))
	for _, f := range e.Factories {
		set = append(set, f(surface, style))
	}
	e.instances = set
	return set
}

// Catalog holds a provisioning entry for every label seen or declared this
// session. Entries are never removed.
type Catalog struct {
	entries map[string]*Entry
	order   []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*Entry)}
}

// Add stores e unless its label is already catalogued. It reports whether
// the entry was added.
func (c *Catalog) Add(e *Entry) bool {
	if _, ok := c.entries[e.Label]; ok {
		return false
	}
	c.entries[e.Label] = e
	c.order = append(c.order, e.Label)
	return true
}

// Get returns the entry for label.
func (c *Catalog) Get(label string) (*Entry, bool) {
	e, ok := c.entries[label]
	return e, ok
}

// Has reports whether label is catalogued.
func (c *Catalog) Has(label string) bool {
	_, ok := c.entries[label]
	return ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Labels returns catalogued labels in insertion order.
func (c *Catalog) Labels() []string {
	return append([]string(nil), c.order...)
}
