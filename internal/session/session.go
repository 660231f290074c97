package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/poseview/internal/metrics"
	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/render"
	"github.com/five82/poseview/internal/scene"
)

// Toggle is the UI affordance for one label.
type Toggle struct {
	Label   string
	Color   colorful.Color
	Enabled bool
	// Active is true once the label's renderables are registered.
	Active bool
}

// Options configures a Session.
type Options struct {
	Surface scene.Surface
	// Template is the default factory set for labels first seen on the stream.
	Template []render.Factory
	Metrics  *metrics.Metrics
	// Logf receives recoverable skips and provisioning events. Nil discards.
	Logf func(format string, args ...any)
	// OnToggle is called once when a label's toggle is created.
	OnToggle func(Toggle)
}

// Session owns all label state for one viewing session. It is driven from a
// single goroutine and is not safe for concurrent use.
type Session struct {
	surface  scene.Surface
	template []render.Factory
	metrics  *metrics.Metrics
	logf     func(string, ...any)
	onToggle func(Toggle)

	registry *Registry
	catalog  *Catalog
	log      *MessageLog

	toggles     map[string]*Toggle
	toggleOrder []string
}

// New returns an empty session drawing on opts.Surface.
func New(opts Options) *Session {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Session{
		surface:  opts.Surface,
		template: append([]render.Factory(nil), opts.Template...),
		metrics:  opts.Metrics,
		logf:     logf,
		onToggle: opts.OnToggle,
		registry: NewRegistry(),
		catalog:  NewCatalog(),
		log:      NewMessageLog(),
		toggles:  make(map[string]*Toggle),
	}
}

// Preregister activates label at startup with the given factories. A label
// that is already catalogued keeps its entry and is rejected.
func (s *Session) Preregister(label string, factories []render.Factory) error {
	if s.registry.Has(label) {
		return fmt.Errorf("preregister %q: %w", label, ErrAlreadyRegistered)
	}
	if s.catalog.Has(label) {
		return fmt.Errorf("preregister %q: %w", label, ErrAlreadyCatalogued)
	}
	entry := &Entry{Label: label, Color: ColorFor(label), Factories: factories, AutoToggle: true}
	s.catalog.Add(entry)
	if err := s.registry.Register(label, entry.instantiate(s.surface)); err != nil {
		return err
	}
	t := s.ensureToggle(entry, true)
	t.Enabled = true
	t.Active = true
	return nil
}

// Declare catalogues label without activating it. With autoToggle false the
// label stays hidden from the UI until Provision or SetLabelVisible is called.
func (s *Session) Declare(label string, factories []render.Factory, autoToggle bool) bool {
	return s.catalog.Add(&Entry{Label: label, Color: ColorFor(label), Factories: factories, AutoToggle: autoToggle})
}

// Provision catalogues label from the default template and creates its
// toggle. It reports whether a new entry was created.
func (s *Session) Provision(label string) bool {
	if entry, ok := s.catalog.Get(label); ok {
		s.ensureToggle(entry, false)
		return false
	}
	entry := &Entry{Label: label, Color: ColorFor(label), Factories: s.template, AutoToggle: true}
	s.catalog.Add(entry)
	s.ensureToggle(entry, false)
	s.metrics.LabelProvisioned()
	s.logf("provisioned label %q", label)
	return true
}

// OnSample logs sample and routes it to the label's renderables. Samples for
// inactive labels only reach the message log.
func (s *Session) OnSample(sample pose.Sample) {
	s.log.Append(sample)
	s.metrics.SampleReceived(s.log.Len())

	if set, ok := s.registry.Lookup(sample.Label); ok {
		for _, r := range set {
			s.ingest(sample.Label, r, sample)
		}
		return
	}
	s.Provision(sample.Label)
}

// SetLabelVisible shows or hides label. The first enable of a catalogued
// label instantiates its renderables and replays the message log into them.
// It reports false for a label that is neither active nor catalogued.
func (s *Session) SetLabelVisible(label string, visible bool) bool {
	if set, ok := s.registry.Lookup(label); ok {
		for _, r := range set {
			r.SetVisible(visible)
		}
		s.toggles[label].Enabled = visible
		return true
	}

	entry, ok := s.catalog.Get(label)
	if !ok {
		return false
	}
	if !visible {
		if t := s.ensureToggle(entry, false); t != nil {
			t.Enabled = false
		}
		return true
	}

	t := s.ensureToggle(entry, true)
	set := entry.instantiate(s.surface)
	if err := s.registry.Register(label, set); err != nil {
		s.logf("activate %q: %v", label, err)
		return false
	}
	t.Active = true
	t.Enabled = true
	s.replay(label, set)
	for _, r := range set {
		r.SetVisible(true)
	}
	return true
}

// replay feeds every logged sample for label into set in arrival order.
func (s *Session) replay(label string, set []render.Renderable) {
	start := time.Now()
	n := 0
	s.log.Each(label, func(sample pose.Sample) {
		for _, r := range set {
			s.ingest(label, r, sample)
		}
		n++
	})
	s.metrics.ReplayDone(n, time.Since(start))
	s.logf("replayed %d samples into %q", n, label)
}

// ingest isolates one renderable's update. Errors and panics are logged
// and counted as skips.
func (s *Session) ingest(label string, r render.Renderable, sample pose.Sample) (ok bool) {
	kind := render.KindOf(r)
	defer func() {
		if p := recover(); p != nil {
			s.logf("skip %s for %q: panic: %v", kind, label, p)
			s.metrics.IngestSkipped(metrics.ReasonPanic)
			ok = false
		}
	}()
	if err := r.Ingest(sample); err != nil {
		s.logf("skip %s for %q: %v", kind, label, err)
		s.metrics.IngestSkipped(skipReason(err))
		return false
	}
	s.metrics.IngestOK(kind)
	return true
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, render.ErrMissingPosition):
		return metrics.ReasonMissingPosition
	case errors.Is(err, render.ErrMissingOrientation):
		return metrics.ReasonMissingOrientation
	default:
		return metrics.ReasonOther
	}
}

// ensureToggle returns the label's toggle, creating it once. Entries without
// AutoToggle only get a toggle when force is set.
func (s *Session) ensureToggle(entry *Entry, force bool) *Toggle {
	if t, ok := s.toggles[entry.Label]; ok {
		return t
	}
	if !entry.AutoToggle && !force {
		return nil
	}
	t := &Toggle{Label: entry.Label, Color: entry.Color}
	s.toggles[entry.Label] = t
	s.toggleOrder = append(s.toggleOrder, entry.Label)
	if s.onToggle != nil {
		s.onToggle(*t)
	}
	return t
}

// Toggles returns a copy of every toggle in creation order.
func (s *Session) Toggles() []Toggle {
	out := make([]Toggle, 0, len(s.toggleOrder))
	for _, label := range s.toggleOrder {
		out = append(out, *s.toggles[label])
	}
	return out
}

// Renderables returns the active renderables for label.
func (s *Session) Renderables(label string) ([]render.Renderable, bool) {
	return s.registry.Lookup(label)
}

// Entry returns the catalog entry for label.
func (s *Session) Entry(label string) (*Entry, bool) {
	return s.catalog.Get(label)
}

// Log returns the session message log.
func (s *Session) Log() *MessageLog {
	return s.log
}

// SampleCount returns the number of logged samples for label.
func (s *Session) SampleCount(label string) int {
	return s.log.CountLabel(label)
}
