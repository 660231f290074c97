// Package scene holds the drawable set that the terminal view paints.
//
// Renderables add and remove drawables through the Surface interface and
// never read the scene back. The painter walks the scene on every redraw tick.
package scene

// Surface is the rendering surface consumed by renderables. Add and Remove
// are idempotent.
type Surface interface {
	Add(d Drawable)
	Remove(d Drawable)
}

// Scene is an ordered drawable set. It is confined to the UI event loop and
// is not safe for concurrent use.
type Scene struct {
	index map[string]int
	items []Drawable
}

var _ Surface = (*Scene)(nil)

// New returns an empty scene.
func New() *Scene {
	return &Scene{index: make(map[string]int)}
}

// Add appends d unless it is already present.
func (s *Scene) Add(d Drawable) {
	if d == nil {
		return
	}
	if _, ok := s.index[d.ID()]; ok {
		return
	}
	s.index[d.ID()] = len(s.items)
	s.items = append(s.items, d)
}

// Remove drops d if present, keeping the paint order of the rest.
func (s *Scene) Remove(d Drawable) {
	if d == nil {
		return
	}
	i, ok := s.index[d.ID()]
	if !ok {
		return
	}
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	delete(s.index, d.ID())
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID()] = j
	}
}

// Contains reports whether d is in the scene.
func (s *Scene) Contains(d Drawable) bool {
	_, ok := s.index[d.ID()]
	return ok
}

// Len returns the number of drawables, visible or not.
func (s *Scene) Len() int {
	return len(s.items)
}

// Each calls fn for every visible drawable in paint order.
func (s *Scene) Each(fn func(Drawable)) {
	for _, d := range s.items {
		if d.Visible() {
			fn(d)
		}
	}
}
