package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/scene"
)

// BaseMarkerSize is the world-space marker radius at scale 1.
const BaseMarkerSize = 0.02

// PointHistory drops a marker every Interval samples. Markers are never
// removed.
type PointHistory struct {
	surface  scene.Surface
	color    colorful.Color
	interval int
	scale    float64

	count   int
	hidden  bool
	markers []*scene.Marker
}

// NewPointHistory returns a history that spawns on every interval-th sample.
// An interval below 1 is treated as 1 and a non-positive scale as 1.
func NewPointHistory(surface scene.Surface, style Style, interval int, scale float64) *PointHistory {
	if interval < 1 {
		interval = 1
	}
	if scale <= 0 {
		scale = 1
	}
	return &PointHistory{surface: surface, color: style.Color, interval: interval, scale: scale}
}

func (p *PointHistory) Ingest(s pose.Sample) error {
	p.count++
	if p.count%p.interval != 0 {
		return nil
	}
	if !s.HasPosition() {
		return fmt.Errorf("points: %w", ErrMissingPosition)
	}
	m := scene.NewMarker(*s.Position, BaseMarkerSize*p.scale, p.color)
	m.SetVisible(!p.hidden)
	p.surface.Add(m)
	p.markers = append(p.markers, m)
	return nil
}

func (p *PointHistory) Refresh() {}

// SetVisible applies to every marker, including ones spawned later.
func (p *PointHistory) SetVisible(visible bool) {
	p.hidden = !visible
	for _, m := range p.markers {
		m.SetVisible(visible)
	}
}

// Interval returns the effective decimation interval.
func (p *PointHistory) Interval() int { return p.interval }

// Markers returns the spawned markers in order.
func (p *PointHistory) Markers() []*scene.Marker {
	return append([]*scene.Marker(nil), p.markers...)
}
