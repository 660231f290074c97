package render

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/scene"
)

// Trail draws a connected curve through every accepted position.
type Trail struct {
	line *scene.Polyline
}

// NewTrail creates an empty trail and adds its curve to surface.
func NewTrail(surface scene.Surface, style Style) *Trail {
	t := &Trail{line: scene.NewPolyline(style.Color)}
	surface.Add(t.line)
	return t
}

func (t *Trail) Ingest(s pose.Sample) error {
	if !s.HasPosition() {
		return fmt.Errorf("trail: %w", ErrMissingPosition)
	}
	t.line.Append(*s.Position)
	return nil
}

// Refresh is a no-op; the surface reads the buffer as it grows.
func (t *Trail) Refresh() {}

func (t *Trail) SetVisible(visible bool) {
	t.line.SetVisible(visible)
}

// Points returns the accumulated positions in arrival order.
func (t *Trail) Points() []r3.Vec {
	return append([]r3.Vec(nil), t.line.Points()...)
}
