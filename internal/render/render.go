package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/scene"
)

var (
	// ErrMissingPosition is wrapped by Ingest when a sample has no position.
	ErrMissingPosition = errors.New("sample has no position")
	// ErrMissingOrientation is wrapped by Ingest when a sample has no rotation.
	ErrMissingOrientation = errors.New("sample has no orientation")
)

// Renderable is a stateful visual accumulator bound to one label.
type Renderable interface {
	Ingest(s pose.Sample) error
	Refresh()
	SetVisible(visible bool)
}

// Style carries the per-label presentation shared by a label's renderables.
type Style struct {
	Color colorful.Color
}

// Factory builds a renderable that draws on surface.
type Factory func(surface scene.Surface, style Style) Renderable

// Renderable kind names used in configuration.
const (
	KindTrail  = "trail"
	KindPoints = "points"
	KindGizmo  = "gizmo"
	KindCones  = "cones"
)

// Kinds lists every kind in default order.
var Kinds = []string{KindTrail, KindPoints, KindGizmo, KindCones}

// Options tunes the configurable variants.
type Options struct {
	PointInterval int
	PointScale    float64
}

// FactoryFor returns the factory for a kind name.
func FactoryFor(kind string, opts Options) (Factory, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindTrail:
		return func(surface scene.Surface, style Style) Renderable {
			return NewTrail(surface, style)
		}, nil
	case KindPoints:
		return func(surface scene.Surface, style Style) Renderable {
			return NewPointHistory(surface, style, opts.PointInterval, opts.PointScale)
		}, nil
	case KindGizmo:
		return func(surface scene.Surface, style Style) Renderable {
			return NewPoseGizmo(surface, style)
		}, nil
	case KindCones:
		return func(surface scene.Surface, style Style) Renderable {
			return NewConeHistory(surface, style)
		}, nil
	default:
		return nil, fmt.Errorf("unknown renderable %q", kind)
	}
}

// Factories resolves a list of kind names, keeping their order.
func Factories(kinds []string, opts Options) ([]Factory, error) {
	out := make([]Factory, 0, len(kinds))
	for _, kind := range kinds {
		f, err := FactoryFor(kind, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// KindOf returns the kind name of r, or "unknown".
func KindOf(r Renderable) string {
	switch r.(type) {
	case *Trail:
		return KindTrail
	case *PointHistory:
		return KindPoints
	case *PoseGizmo:
		return KindGizmo
	case *ConeHistory:
		return KindCones
	default:
		return "unknown"
	}
}
