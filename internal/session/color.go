package session

import (
	"github.com/cespare/xxhash/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	labelSaturation = 0.65
	labelLightness  = 0.55
)

// Hue returns the label's hue in degrees, derived from a 64-bit xxhash of
// the label so it is stable across runs and machines.
func Hue(label string) float64 {
	return float64(xxhash.Sum64String(label) % 360)
}

// ColorFor returns the display color for label.
func ColorFor(label string) colorful.Color {
	return colorful.Hsl(Hue(label), labelSaturation, labelLightness)
}
