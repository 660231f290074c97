package ui

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/scene"
)

func TestCanvas_NearerWins(t *testing.T) {
	cv := NewCanvas(3, 1)
	cv.Set(1, 0, 2, 'a', "")
	cv.Set(1, 0, 5, 'b', "")
	if got := cv.At(1, 0); got != 'a' {
		t.Fatalf("At = %q, want 'a'", got)
	}
	cv.Set(1, 0, 1, 'c', "")
	if got := cv.String(); got != " c " {
		t.Fatalf("String = %q, want %q", got, " c ")
	}
}

func TestCanvas_SetOutsideIsIgnored(t *testing.T) {
	cv := NewCanvas(2, 2)
	cv.Set(-1, 0, 0, 'x', "")
	cv.Set(0, 5, 0, 'x', "")
	if got := cv.String(); got != "  \n  " {
		t.Fatalf("String = %q", got)
	}
}

func TestCanvas_LineStrokes(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           string
	}{
		{"horizontal", 0.5, 1.5, 4.5, 1.5, "     \n-----\n     "},
		{"vertical", 2.5, 0.5, 2.5, 2.5, "  |  \n  |  \n  |  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewCanvas(5, 3)
			cv.Line(tt.x0, tt.y0, 1, tt.x1, tt.y1, 1, 0, "")
			if got := cv.String(); got != tt.want {
				t.Fatalf("String =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestCanvas_LineIsClipped(t *testing.T) {
	cv := NewCanvas(4, 1)
	cv.Line(-10, 0.5, 1, 10, 0.5, 1, '=', "")
	if got := cv.String(); got != "====" {
		t.Fatalf("String = %q, want %q", got, "====")
	}
}

func TestStrokeRune(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{10, 0, '-'},
		{0, 3, '|'},
		{2, 1, '\\'},
		{2, -1, '/'},
	}
	for _, tt := range tests {
		if got := strokeRune(tt.dx, tt.dy); got != tt.want {
			t.Fatalf("strokeRune(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestCanvas_RenderKeepsGlyphs(t *testing.T) {
	cv := NewCanvas(3, 1)
	cv.Set(0, 0, 1, 'x', "#ff0000")
	cv.Set(2, 0, 1, 'y', "#00ff00")
	out := cv.Render()
	if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
		t.Fatalf("Render = %q, want both glyphs", out)
	}
}

func TestPainter_DrawsVisibleSceneOnly(t *testing.T) {
	sc := scene.New()
	red := colorful.Color{R: 1}
	shown := scene.NewMarker(r3.Vec{}, 0.02, red)
	hidden := scene.NewMarker(r3.Vec{Y: 0.5}, 0.02, red)
	hidden.SetVisible(false)
	sc.Add(shown)
	sc.Add(hidden)

	cv := NewCanvas(40, 20)
	p := painter{cv: cv, cam: NewCamera(1)}
	p.scene(sc)

	out := cv.String()
	if strings.Count(out, "o") != 1 {
		t.Fatalf("canvas has %d markers, want 1:\n%s", strings.Count(out, "o"), out)
	}
	if got := cv.At(20, 10); got != 'o' {
		t.Fatalf("At(center) = %q, want 'o'", got)
	}
}

func TestPainter_AxesLabelled(t *testing.T) {
	cv := NewCanvas(60, 30)
	p := painter{cv: cv, cam: NewCamera(1)}
	p.axes(GetTheme("Nightfox"))
	out := cv.String()
	for _, name := range []string{"x", "y", "z", "+"} {
		if !strings.Contains(out, name) {
			t.Fatalf("axes missing %q:\n%s", name, out)
		}
	}
}
