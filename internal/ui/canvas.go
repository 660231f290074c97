package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/render"
	"github.com/five82/poseview/internal/scene"
)

type cell struct {
	r     rune
	color string
	depth float64
}

// Canvas is a character grid with a depth buffer. Nearer writes win.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas returns a blank w by h canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', depth: math.Inf(1)}
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Set writes r at (x, y) unless a nearer cell is already there.
func (c *Canvas) Set(x, y int, depth float64, r rune, color string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	if depth > c.cells[i].depth {
		return
	}
	c.cells[i] = cell{r: r, color: color, depth: depth}
}

// At returns the rune at (x, y), or a space outside the canvas.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return ' '
	}
	return c.cells[y*c.w+x].r
}

// Line draws from (x0, y0) to (x1, y1), clipped to the canvas. A zero rune
// picks a stroke character from the slope.
func (c *Canvas) Line(x0, y0, d0, x1, y1, d1 float64, r rune, color string) {
	t0, t1, ok := clipLine(x0, y0, x1, y1, 0, 0, float64(c.w), float64(c.h))
	if !ok {
		return
	}
	dx, dy, dd := x1-x0, y1-y0, d1-d0
	if r == 0 {
		r = strokeRune(dx, dy)
	}
	ax, ay := x0+t0*dx, y0+t0*dy
	bx, by := x0+t1*dx, y0+t1*dy
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps == 0 {
		c.Set(cellOf(ax), cellOf(ay), d0+t0*dd, r, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(steps)
		c.Set(cellOf(x0+t*dx), cellOf(y0+t*dy), d0+t*dd, r, color)
	}
}

// cellOf snaps v to its cell, absorbing rounding error at cell borders.
func cellOf(v float64) int {
	return int(math.Floor(v + 1e-9))
}

// strokeRune approximates a line direction with one character. Rows are
// about twice the height of columns.
func strokeRune(dx, dy float64) rune {
	sx, sy := math.Abs(dx), math.Abs(dy)*2
	switch {
	case sy < 0.4*sx:
		return '-'
	case sx < 0.4*sy:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// clipLine is Liang-Barsky against [xmin, xmax) x [ymin, ymax).
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return t0, t1, true
}

// String returns the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.w; x++ {
			b.WriteRune(c.cells[y*c.w+x].r)
		}
	}
	return b.String()
}

// Render returns the canvas with each run of same-colored cells styled once.
func (c *Canvas) Render() string {
	styles := make(map[string]lipgloss.Style)
	var b, run strings.Builder
	flush := func(color string) {
		if run.Len() == 0 {
			return
		}
		if color == "" {
			b.WriteString(run.String())
		} else {
			st, ok := styles[color]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
				styles[color] = st
			}
			b.WriteString(st.Render(run.String()))
		}
		run.Reset()
	}
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		current := ""
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			color := cl.color
			if cl.r == ' ' {
				color = current
			}
			if color != current {
				flush(current)
				current = color
			}
			run.WriteRune(cl.r)
		}
		flush(current)
	}
	return b.String()
}

// painter projects world geometry onto a canvas.
type painter struct {
	cv  *Canvas
	cam Camera
}

func (p painter) point(v r3.Vec, r rune, color string) {
	w, h := p.cv.Size()
	x, y, d, ok := p.cam.Project(v, w, h)
	if !ok {
		return
	}
	p.cv.Set(int(math.Floor(x)), int(math.Floor(y)), d, r, color)
}

// label writes r in front of everything else.
func (p painter) label(v r3.Vec, r rune, color string) {
	w, h := p.cv.Size()
	x, y, _, ok := p.cam.Project(v, w, h)
	if !ok {
		return
	}
	p.cv.Set(int(math.Floor(x)), int(math.Floor(y)), 0, r, color)
}

func (p painter) line(a, b r3.Vec, r rune, color string) {
	w, h := p.cv.Size()
	ax, ay, ad, aok := p.cam.Project(a, w, h)
	bx, by, bd, bok := p.cam.Project(b, w, h)
	if !aok || !bok {
		return
	}
	p.cv.Line(ax, ay, ad, bx, by, bd, r, color)
}

const axisLength = 1.0

// axes draws the world axes with their end labels.
func (p painter) axes(t Theme) {
	for _, ax := range []struct {
		dir   r3.Vec
		name  rune
		color string
	}{
		{r3.Vec{X: axisLength}, 'x', t.AxisX},
		{r3.Vec{Y: axisLength}, 'y', t.AxisY},
		{r3.Vec{Z: axisLength}, 'z', t.AxisZ},
	} {
		p.line(r3.Vec{}, ax.dir, 0, ax.color)
		p.label(r3.Scale(1.08, ax.dir), ax.name, ax.color)
	}
	p.point(r3.Vec{}, '+', t.Faint)
}

// scene paints every visible drawable in paint order.
func (p painter) scene(sc *scene.Scene) {
	sc.Each(func(d scene.Drawable) {
		switch v := d.(type) {
		case *scene.Polyline:
			pts := v.Points()
			color := v.Color.Hex()
			for i := 1; i < len(pts); i++ {
				p.line(pts[i-1], pts[i], '.', color)
			}
			if len(pts) == 1 {
				p.point(pts[0], '.', color)
			}
		case *scene.Marker:
			r := 'o'
			if v.Size > 1.5*render.BaseMarkerSize {
				r = 'O'
			}
			p.point(v.Position, r, v.Color.Hex())
		case *scene.Segment:
			p.line(v.From, v.To, 0, v.Color.Hex())
		case *scene.Cone:
			color := v.Color().Hex()
			p.line(v.Position, v.Tip(), 0, color)
			p.point(v.Tip(), '*', color)
		}
	})
}
