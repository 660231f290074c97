package pose

import (
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sample is one decoded pose record. Position and Rotation are nil when the
// record did not carry a complete value for them.
type Sample struct {
	Timestamp    string // opaque, display only
	Group        string
	SequentialID int64
	Label        string

	Position *r3.Vec
	Rotation *quat.Number // unit quaternion
}

// HasPosition reports whether the sample carries x, y and z.
func (s Sample) HasPosition() bool {
	return s.Position != nil
}

// HasRotation reports whether the sample carries a usable orientation.
func (s Sample) HasRotation() bool {
	return s.Rotation != nil
}

// Identity is the rotation that leaves vectors unchanged.
var Identity = quat.Number{Real: 1}

// Normalize scales q to unit length. ok is false for a zero or non-finite
// quaternion, which cannot represent an orientation.
func Normalize(q quat.Number) (quat.Number, bool) {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return quat.Number{}, false
	}
	return quat.Scale(1/n, q), true
}

// Rotate applies the unit quaternion q to v.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

// Dotted wire keys carried inside a record's data object.
const (
	KeyPositionX = "position.x"
	KeyPositionY = "position.y"
	KeyPositionZ = "position.z"
	KeyRotationX = "rotation.x"
	KeyRotationY = "rotation.y"
	KeyRotationZ = "rotation.z"
	KeyRotationW = "rotation.w"
)

// Record is the outbound wire form produced by the synthetic tools.
type Record struct {
	Timestamp    int64              `json:"timestamp"`
	Group        string             `json:"group"`
	Process      string             `json:"process,omitempty"`
	SequentialID int64              `json:"sequential_id"`
	Label        string             `json:"label"`
	Data         map[string]float64 `json:"data"`
}

// NewRecord builds a record for a position and orientation at time at.
func NewRecord(at time.Time, group, label string, seq int64, p r3.Vec, q quat.Number) Record {
	return Record{
		Timestamp:    at.Unix(),
		Group:        group,
		SequentialID: seq,
		Label:        label,
		Data: map[string]float64{
			KeyPositionX: p.X,
			KeyPositionY: p.Y,
			KeyPositionZ: p.Z,
			KeyRotationX: q.Imag,
			KeyRotationY: q.Jmag,
			KeyRotationZ: q.Kmag,
			KeyRotationW: q.Real,
		},
	}
}

// Fields flattens the record into the string hash stored in a redis stream
// entry: top-level metadata plus the dotted data keys.
func (r Record) Fields() map[string]any {
	fields := map[string]any{
		"timestamp":     strconv.FormatInt(r.Timestamp, 10),
		"group":         r.Group,
		"sequential_id": strconv.FormatInt(r.SequentialID, 10),
		"label":         r.Label,
	}
	if r.Process != "" {
		fields["process"] = r.Process
	}
	for k, v := range r.Data {
		fields[k] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fields
}
