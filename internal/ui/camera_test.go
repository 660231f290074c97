package ui

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/prefs"
)

func TestProject_OriginIsCentered(t *testing.T) {
	cam := NewCamera(1)
	x, y, depth, ok := cam.Project(r3.Vec{}, 80, 24)
	if !ok {
		t.Fatalf("Project(origin) not visible")
	}
	if x != 40 || y != 12 {
		t.Fatalf("Project(origin) = (%v, %v), want (40, 12)", x, y)
	}
	if depth != DefaultDistance {
		t.Fatalf("depth = %v, want %v", depth, DefaultDistance)
	}
}

func TestProject_UpIsAboveCenter(t *testing.T) {
	cam := NewCamera(1)
	_, y, _, ok := cam.Project(r3.Vec{Y: 1}, 80, 24)
	if !ok || y >= 12 {
		t.Fatalf("Project(+Y) row = %v ok=%v, want above 12", y, ok)
	}
}

func TestProject_ZoomSpreadsPoints(t *testing.T) {
	near := NewCamera(1)
	far := NewCamera(2)
	p := r3.Vec{X: 0.5}
	x1, _, _, _ := near.Project(p, 80, 24)
	x2, _, _, _ := far.Project(p, 80, 24)
	if math.Abs(x2-40) <= math.Abs(x1-40) {
		t.Fatalf("zoom 2 offset %v not larger than zoom 1 offset %v", x2-40, x1-40)
	}
}

func TestProject_BehindCameraIsHidden(t *testing.T) {
	cam := Camera{Distance: DefaultDistance, Zoom: 1}
	if _, _, _, ok := cam.Project(r3.Vec{Z: 5}, 80, 24); ok {
		t.Fatalf("point behind the camera was projected")
	}
}

func TestCamera_ZoomClamps(t *testing.T) {
	cam := NewCamera(1)
	for i := 0; i < 200; i++ {
		cam.ZoomBy(ZoomStep)
	}
	if cam.Zoom != prefs.MaxZoom {
		t.Fatalf("Zoom = %v, want %v", cam.Zoom, prefs.MaxZoom)
	}
	for i := 0; i < 200; i++ {
		cam.ZoomBy(-ZoomStep)
	}
	if cam.Zoom != prefs.MinZoom {
		t.Fatalf("Zoom = %v, want %v", cam.Zoom, prefs.MinZoom)
	}
}

func TestCamera_OrbitClampsPitchAndResetKeepsZoom(t *testing.T) {
	cam := NewCamera(2)
	cam.Orbit(1, 10)
	if cam.Pitch >= math.Pi/2 {
		t.Fatalf("Pitch = %v, want below pi/2", cam.Pitch)
	}
	cam.Reset()
	if cam.Yaw != DefaultYaw || cam.Pitch != DefaultPitch || cam.Zoom != 2 {
		t.Fatalf("Reset = %+v", cam)
	}
}
