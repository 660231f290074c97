package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/scene"
)

// GizmoAxisLength is the drawn length of each body axis.
const GizmoAxisLength = 0.3

var (
	unitAxes   = [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	axisColors = [3]colorful.Color{{R: 1}, {G: 1}, {B: 1}}
)

// PoseGizmo shows the latest pose only: three body axes and a body marker.
type PoseGizmo struct {
	position    r3.Vec
	orientation quat.Number

	axes [3]*scene.Segment
	body *scene.Marker
}

// NewPoseGizmo adds the gizmo's four drawables to surface at the origin.
func NewPoseGizmo(surface scene.Surface, style Style) *PoseGizmo {
	g := &PoseGizmo{orientation: pose.Identity}
	for i := range g.axes {
		g.axes[i] = scene.NewSegment(r3.Vec{}, r3.Vec{}, axisColors[i])
		surface.Add(g.axes[i])
	}
	g.body = scene.NewMarker(r3.Vec{}, 2*BaseMarkerSize, style.Color)
	surface.Add(g.body)
	g.Refresh()
	return g
}

// Ingest replaces the pose. Samples without both position and orientation
// leave the gizmo untouched.
func (g *PoseGizmo) Ingest(s pose.Sample) error {
	if !s.HasPosition() {
		return fmt.Errorf("gizmo: %w", ErrMissingPosition)
	}
	if !s.HasRotation() {
		return fmt.Errorf("gizmo: %w", ErrMissingOrientation)
	}
	g.position = *s.Position
	g.orientation = *s.Rotation
	g.Refresh()
	return nil
}

// Refresh moves the drawables to the current pose.
func (g *PoseGizmo) Refresh() {
	for i, dir := range g.Axes() {
		g.axes[i].From = g.position
		g.axes[i].To = r3.Add(g.position, r3.Scale(GizmoAxisLength, dir))
	}
	g.body.Position = g.position
}

func (g *PoseGizmo) SetVisible(visible bool) {
	for _, a := range g.axes {
		a.SetVisible(visible)
	}
	g.body.SetVisible(visible)
}

// Pose returns the current position and orientation.
func (g *PoseGizmo) Pose() (r3.Vec, quat.Number) {
	return g.position, g.orientation
}

// Axes returns the body-frame X, Y and Z directions in world space.
func (g *PoseGizmo) Axes() [3]r3.Vec {
	var out [3]r3.Vec
	for i, u := range unitAxes {
		out[i] = pose.Rotate(g.orientation, u)
	}
	return out
}

// Drawables returns every drawable the gizmo owns.
func (g *PoseGizmo) Drawables() []scene.Drawable {
	return []scene.Drawable{g.axes[0], g.axes[1], g.axes[2], g.body}
}
