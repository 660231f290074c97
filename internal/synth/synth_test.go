package synth

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/pose"
)

func fixedClock() time.Time { return time.Unix(1700000000, 0) }

func TestGenerator_Trajectory(t *testing.T) {
	g := New(DefaultGroup, DefaultProcess, DefaultLabel, 30)
	g.Now = fixedClock

	recs := g.Take(31)
	last := recs[30]
	if last.SequentialID != 31 {
		t.Fatalf("SequentialID = %d, want 31", last.SequentialID)
	}
	x := last.Data[pose.KeyPositionX]
	if math.Abs(x-0.1) > 1e-12 {
		t.Fatalf("position.x = %v, want 0.1", x)
	}
	if y := last.Data[pose.KeyPositionY]; math.Abs(y-math.Sin(0.1)) > 1e-12 {
		t.Fatalf("position.y = %v, want sin(0.1)", y)
	}
	if z := last.Data[pose.KeyPositionZ]; math.Abs(z-math.Cos(0.3)) > 1e-12 {
		t.Fatalf("position.z = %v, want cos(0.3)", z)
	}
	if recs[29].Data[pose.KeyPositionX] != 0 {
		t.Fatalf("sample at offset has x = %v, want 0", recs[29].Data[pose.KeyPositionX])
	}
	if last.Timestamp != 1700000000 || last.Group != DefaultGroup || last.Process != DefaultProcess {
		t.Fatalf("metadata = %+v", last)
	}
}

func TestGenerator_OrientationStaysUnitAndTurns(t *testing.T) {
	g := New("g", "", "l", 0)
	g.Now = fixedClock

	var prev quat.Number
	for i, rec := range g.Take(50) {
		q := quat.Number{
			Real: rec.Data[pose.KeyRotationW],
			Imag: rec.Data[pose.KeyRotationX],
			Jmag: rec.Data[pose.KeyRotationY],
			Kmag: rec.Data[pose.KeyRotationZ],
		}
		if math.Abs(quat.Abs(q)-1) > 1e-9 {
			t.Fatalf("record %d rotation norm = %v, want 1", i, quat.Abs(q))
		}
		if i > 0 && q == prev {
			t.Fatalf("record %d rotation did not change", i)
		}
		prev = q
	}
}

func TestGenerator_SkipMatchesTake(t *testing.T) {
	a := New("g", "", "l", 0)
	a.Now = fixedClock
	a.Skip(5)
	got := a.Next()

	b := New("g", "", "l", 0)
	b.Now = fixedClock
	want := b.Take(6)[5]

	if got.SequentialID != want.SequentialID || got.Data[pose.KeyRotationW] != want.Data[pose.KeyRotationW] {
		t.Fatalf("Skip then Next = %+v, want %+v", got, want)
	}
}

func TestGenerator_ZeroVelocityKeepsIdentity(t *testing.T) {
	g := New("g", "", "l", 0)
	g.AngularVelocity = r3.Vec{}
	rec := g.Next()
	if rec.Data[pose.KeyRotationW] != 1 || rec.Data[pose.KeyRotationX] != 0 {
		t.Fatalf("rotation = %v, want identity", rec.Data)
	}
}
