package ui

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/prefs"
)

// Camera defaults. The starting view looks slightly down and to the side so
// all three world axes are visible.
const (
	DefaultYaw      = -0.32
	DefaultPitch    = 0.44
	DefaultDistance = 3.5

	ZoomStep  = 0.05
	OrbitStep = 0.08

	// focal length at zoom 1
	focal     = 1.6
	nearPlane = 0.05
	maxPitch  = math.Pi/2 - 0.01
)

// Camera orbits the world origin.
type Camera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Zoom     float64
}

// NewCamera returns the default view at the given zoom.
func NewCamera(zoom float64) Camera {
	return Camera{
		Yaw:      DefaultYaw,
		Pitch:    DefaultPitch,
		Distance: DefaultDistance,
		Zoom:     prefs.ClampZoom(zoom),
	}
}

// Orbit rotates the camera. Pitch stops short of the poles.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Remainder(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dPitch))
}

// ZoomBy changes the zoom factor by delta within the prefs bounds.
func (c *Camera) ZoomBy(delta float64) {
	z := c.Zoom + delta
	switch {
	case z < prefs.MinZoom:
		z = prefs.MinZoom
	case z > prefs.MaxZoom:
		z = prefs.MaxZoom
	}
	c.Zoom = z
}

// Reset restores the default orientation and keeps the zoom.
func (c *Camera) Reset() {
	*c = NewCamera(c.Zoom)
}

// view maps a world point into camera space: x right, y up, z toward the
// viewer.
func (c Camera) view(p r3.Vec) r3.Vec {
	p = r3.NewRotation(-c.Yaw, r3.Vec{Y: 1}).Rotate(p)
	return r3.NewRotation(c.Pitch, r3.Vec{X: 1}).Rotate(p)
}

// Project maps p onto a w by h character grid. Cells are about twice as
// tall as they are wide, so x is stretched accordingly. ok is false for
// points behind the near plane.
func (c Camera) Project(p r3.Vec, w, h int) (x, y, depth float64, ok bool) {
	v := c.view(p)
	depth = c.Distance - v.Z
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	f := focal * c.Zoom / depth
	half := float64(h) / 2
	x = float64(w)/2 + v.X*f*half*2
	y = half - v.Y*f*half
	return x, y, depth, true
}
