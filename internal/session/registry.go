package session

import (
	"errors"
	"fmt"

	"github.com/five82/poseview/internal/render"
)

// ErrAlreadyRegistered is returned when a label is registered twice.
var ErrAlreadyRegistered = errors.New("label already registered")

// ErrAlreadyCatalogued is returned when a catalogued label is preregistered.
var ErrAlreadyCatalogued = errors.New("label already catalogued")

// Registry maps active labels to their renderables in dispatch order.
type Registry struct {
	bindings map[string][]render.Renderable
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string][]render.Renderable)}
}

// Register binds the complete renderable set for label in one step.
func (r *Registry) Register(label string, set []render.Renderable) error {
	if _, ok := r.bindings[label]; ok {
		return fmt.Errorf("register %q: %w", label, ErrAlreadyRegistered)
	}
	r.bindings[label] = append([]render.Renderable(nil), set...)
	r.order = append(r.order, label)
	return nil
}

// Lookup returns the renderables bound to label.
func (r *Registry) Lookup(label string) ([]render.Renderable, bool) {
	set, ok := r.bindings[label]
	return set, ok
}

// Has reports whether label is active.
func (r *Registry) Has(label string) bool {
	_, ok := r.bindings[label]
	return ok
}

// Labels returns active labels in registration order.
func (r *Registry) Labels() []string {
	return append([]string(nil), r.order...)
}
