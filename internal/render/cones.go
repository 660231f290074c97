package render

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/scene"
)

const (
	// ConeInterval is the fixed spawn cadence, in samples.
	ConeInterval = 10
	// ConeDecay multiplies every older cone's lightness on each spawn.
	ConeDecay = 0.8
	// ConeMinLightness is the floor below which cones never fade.
	ConeMinLightness = 0.08
	// ConeFullLightness is the lightness of a freshly spawned cone.
	ConeFullLightness = 0.5
	// ConeLength is the drawn cone length.
	ConeLength = 0.15
)

var forward = r3.Vec{X: 1}

// ConeHistory leaves an oriented cone every ConeInterval samples and fades
// the older ones.
type ConeHistory struct {
	surface    scene.Surface
	hue        float64
	saturation float64

	count  int
	hidden bool
	cones  []*scene.Cone
}

// NewConeHistory returns an empty history using the hue of style.Color.
func NewConeHistory(surface scene.Surface, style Style) *ConeHistory {
	h, s, _ := style.Color.Hsl()
	return &ConeHistory{surface: surface, hue: h, saturation: s}
}

func (c *ConeHistory) Ingest(s pose.Sample) error {
	c.count++
	if c.count%ConeInterval != 0 {
		return nil
	}
	if !s.HasPosition() {
		return fmt.Errorf("cones: %w", ErrMissingPosition)
	}
	if !s.HasRotation() {
		return fmt.Errorf("cones: %w", ErrMissingOrientation)
	}
	for _, old := range c.cones {
		old.Lightness = math.Max(old.Lightness*ConeDecay, ConeMinLightness)
	}
	dir := pose.Rotate(*s.Rotation, forward)
	cone := scene.NewCone(*s.Position, dir, ConeLength, c.hue, c.saturation, ConeFullLightness)
	cone.SetVisible(!c.hidden)
	c.surface.Add(cone)
	c.cones = append(c.cones, cone)
	return nil
}

func (c *ConeHistory) Refresh() {}

func (c *ConeHistory) SetVisible(visible bool) {
	c.hidden = !visible
	for _, cone := range c.cones {
		cone.SetVisible(visible)
	}
}

// Cones returns the spawned cones, oldest first.
func (c *ConeHistory) Cones() []*scene.Cone {
	return append([]*scene.Cone(nil), c.cones...)
}

// Lightness returns each cone's current lightness, oldest first.
func (c *ConeHistory) Lightness() []float64 {
	out := make([]float64, len(c.cones))
	for i, cone := range c.cones {
		out[i] = cone.Lightness
	}
	return out
}
