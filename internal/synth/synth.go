// Package synth produces a synthetic pose trajectory for demos and tests.
//
// Positions follow x = (seq-offset)*0.1, y = sin(x), z = cos(3x). The
// orientation starts at identity and turns at a constant angular velocity.
package synth

import (
	"math"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/pose"
)

// Defaults used by the command line tools.
const (
	DefaultGroup   = "session-test"
	DefaultProcess = "sample application"
	DefaultLabel   = "Sample pose"
	DefaultStep    = 0.1
)

// DefaultAngularVelocity is in radians per second about X, Y and Z.
var DefaultAngularVelocity = r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}

// Generator yields consecutive records. It is not safe for concurrent use.
type Generator struct {
	Group   string
	Process string
	Label   string
	// Offset shifts the curve so sample Offset sits at x = 0.
	Offset int64
	// AngularVelocity and Step drive the orientation.
	AngularVelocity r3.Vec
	Step            float64
	// Now stamps records; nil uses time.Now.
	Now func() time.Time

	seq         int64
	orientation quat.Number
	increment   quat.Number
	ready       bool
}

// New returns a generator with the default trajectory parameters.
func New(group, process, label string, offset int64) *Generator {
	return &Generator{
		Group:           group,
		Process:         process,
		Label:           label,
		Offset:          offset,
		AngularVelocity: DefaultAngularVelocity,
		Step:            DefaultStep,
	}
}

func (g *Generator) init() {
	g.orientation = pose.Identity
	g.increment = pose.Identity
	rate := r3.Norm(g.AngularVelocity)
	if rate > 0 && g.Step > 0 {
		g.increment = quat.Number(r3.NewRotation(rate*g.Step, r3.Unit(g.AngularVelocity)))
	}
	g.ready = true
}

// Next advances the trajectory by one step and returns the record for it.
// Sequence ids start at 1.
func (g *Generator) Next() pose.Record {
	if !g.ready {
		g.init()
	}
	g.seq++
	x := float64(g.seq-g.Offset) * 0.1
	p := r3.Vec{X: x, Y: math.Sin(x), Z: math.Cos(3 * x)}

	q, ok := pose.Normalize(quat.Mul(g.orientation, g.increment))
	if ok {
		g.orientation = q
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	rec := pose.NewRecord(now(), g.Group, g.Label, g.seq, p, g.orientation)
	rec.Process = g.Process
	return rec
}

// Skip discards n records.
func (g *Generator) Skip(n int) {
	for i := 0; i < n; i++ {
		g.Next()
	}
}

// Take returns the next n records.
func (g *Generator) Take(n int) []pose.Record {
	out := make([]pose.Record, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, g.Next())
	}
	return out
}
