package scene

import (
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Drawable is anything the surface can paint. Renderables create and own
// drawables; the painter only reads them.
type Drawable interface {
	ID() string
	Visible() bool
	SetVisible(visible bool)
}

type object struct {
	id     string
	hidden bool
}

func newObject() object {
	return object{id: uuid.NewString()}
}

func (o *object) ID() string              { return o.id }
func (o *object) Visible() bool           { return !o.hidden }
func (o *object) SetVisible(visible bool) { o.hidden = !visible }

// Polyline is an append-only connected curve.
type Polyline struct {
	object
	Color  colorful.Color
	points []r3.Vec
}

// NewPolyline returns an empty curve.
func NewPolyline(color colorful.Color) *Polyline {
	return &Polyline{object: newObject(), Color: color}
}

// Append extends the curve by one vertex. Painters see the new segment on the
// next redraw; existing vertices are never rewritten.
func (l *Polyline) Append(p r3.Vec) {
	l.points = append(l.points, p)
}

// Points returns the vertices in insertion order. The slice must not be modified.
func (l *Polyline) Points() []r3.Vec {
	return l.points
}

// Len returns the number of vertices.
func (l *Polyline) Len() int {
	return len(l.points)
}

// Marker is a point-like glyph such as a history dot or a gizmo body.
type Marker struct {
	object
	Position r3.Vec
	Size     float64
	Color    colorful.Color
}

// NewMarker returns a marker at p.
func NewMarker(p r3.Vec, size float64, color colorful.Color) *Marker {
	return &Marker{object: newObject(), Position: p, Size: size, Color: color}
}

// Segment is a straight line between two points, used for gizmo axes.
type Segment struct {
	object
	From  r3.Vec
	To    r3.Vec
	Color colorful.Color
}

// NewSegment returns a segment from a to b.
func NewSegment(a, b r3.Vec, color colorful.Color) *Segment {
	return &Segment{object: newObject(), From: a, To: b, Color: color}
}

// Cone is an oriented marker whose brightness is carried as HSL lightness so
// it can be aged without losing its hue.
type Cone struct {
	object
	Position   r3.Vec
	Direction  r3.Vec // unit
	Length     float64
	Hue        float64
	Saturation float64
	Lightness  float64
}

// NewCone returns a cone at p pointing along dir.
func NewCone(p, dir r3.Vec, length, hue, saturation, lightness float64) *Cone {
	return &Cone{
		object:     newObject(),
		Position:   p,
		Direction:  dir,
		Length:     length,
		Hue:        hue,
		Saturation: saturation,
		Lightness:  lightness,
	}
}

// Color returns the cone's current display color.
func (c *Cone) Color() colorful.Color {
	return colorful.Hsl(c.Hue, c.Saturation, c.Lightness)
}

// Tip returns the point the cone points at.
func (c *Cone) Tip() r3.Vec {
	return r3.Add(c.Position, r3.Scale(c.Length, c.Direction))
}
