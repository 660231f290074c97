package pose

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDecode_DottedDataKeys(t *testing.T) {
	raw := `{
		"timestamp": 1700000000,
		"group": "session-test",
		"process": "sample application",
		"sequential_id": 7,
		"label": "Sample pose",
		"data": {
			"position.x": 1.5, "position.y": -2, "position.z": 0.25,
			"rotation.x": 0, "rotation.y": 0, "rotation.z": 0, "rotation.w": 2
		}
	}`
	s, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if s.Timestamp != "1700000000" {
		t.Fatalf("Timestamp = %q, want %q", s.Timestamp, "1700000000")
	}
	if s.Group != "session-test" || s.Label != "Sample pose" || s.SequentialID != 7 {
		t.Fatalf("metadata = %+v, want group/label/seq decoded", s)
	}
	if !s.HasPosition() || *s.Position != (r3.Vec{X: 1.5, Y: -2, Z: 0.25}) {
		t.Fatalf("Position = %v, want (1.5,-2,0.25)", s.Position)
	}
	if !s.HasRotation() || *s.Rotation != Identity {
		t.Fatalf("Rotation = %v, want normalized identity", s.Rotation)
	}
}

func TestDecode_NestedDataObjects(t *testing.T) {
	raw := `{"label":"pose-a","timestamp":"12:00:01","sequentialId":3,
		"data":{"position":{"x":1,"y":2,"z":3},"rotation":{"x":0,"y":0,"z":0.7071068,"w":0.7071068}}}`
	s, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if s.Timestamp != "12:00:01" {
		t.Fatalf("Timestamp = %q, want string timestamp kept verbatim", s.Timestamp)
	}
	if s.SequentialID != 3 {
		t.Fatalf("SequentialID = %d, want 3", s.SequentialID)
	}
	if *s.Position != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("Position = %v, want (1,2,3)", *s.Position)
	}
	if math.Abs(quat.Abs(*s.Rotation)-1) > 1e-9 {
		t.Fatalf("Rotation %v is not unit length", *s.Rotation)
	}
}

func TestDecode_TopLevelDottedKeys(t *testing.T) {
	raw := `{"label":"ARKit tracking pose","position.x":1,"position.y":2,"position.z":3}`
	s, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !s.HasPosition() {
		t.Fatalf("Position = nil, want top-level dotted keys decoded")
	}
	if s.HasRotation() {
		t.Fatalf("Rotation = %v, want nil", *s.Rotation)
	}
}

func TestDecode_PartialValuesLeaveFieldsNil(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantPos bool
		wantRot bool
	}{
		{"missing rotation", `{"label":"pose-b","data":{"position.x":1,"position.y":2,"position.z":3}}`, true, false},
		{"partial position", `{"label":"p","data":{"position.x":1,"position.y":2}}`, false, false},
		{"partial rotation", `{"label":"p","data":{"position.x":1,"position.y":2,"position.z":3,"rotation.w":1}}`, true, false},
		{"zero rotation", `{"label":"p","data":{"rotation.x":0,"rotation.y":0,"rotation.z":0,"rotation.w":0}}`, false, false},
		{"string numbers", `{"label":"p","data":{"position.x":"1","position.y":"2","position.z":"3"}}`, true, false},
		{"null data", `{"label":"p","data":null}`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if s.HasPosition() != tt.wantPos {
				t.Fatalf("HasPosition = %v, want %v", s.HasPosition(), tt.wantPos)
			}
			if s.HasRotation() != tt.wantRot {
				t.Fatalf("HasRotation = %v, want %v", s.HasRotation(), tt.wantRot)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte(`{"group":"g"}`)); !errors.Is(err, ErrNoLabel) {
		t.Fatalf("Decode without label error = %v, want ErrNoLabel", err)
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatalf("Decode returned nil error for invalid JSON")
	}
	if _, err := Decode([]byte(`{"label":"x","data":"oops"}`)); err == nil {
		t.Fatalf("Decode returned nil error for non-object data")
	}
}

func TestDecode_NonFiniteLeavesPositionNil(t *testing.T) {
	s, err := Decode([]byte(`{"label":"a","data":{"position.x":"NaN","position.y":"-Inf","position.z":1}}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if s.HasPosition() {
		t.Fatalf("Decode Position = %v, want nil", *s.Position)
	}

	s, err = DecodeFields(map[string]any{
		"label":      "a",
		"position.x": "NaN",
		"position.y": "1",
		"position.z": "Inf",
	})
	if err != nil {
		t.Fatalf("DecodeFields returned error: %v", err)
	}
	if s.HasPosition() {
		t.Fatalf("DecodeFields Position = %v, want nil", *s.Position)
	}

	s, err = DecodeFields(map[string]any{
		"label":      "a",
		"position.x": "1",
		"position.y": "2",
		"position.z": "3",
		"rotation.x": "NaN",
		"rotation.y": "0",
		"rotation.z": "0",
		"rotation.w": "1",
	})
	if err != nil {
		t.Fatalf("DecodeFields returned error: %v", err)
	}
	if !s.HasPosition() || s.HasRotation() {
		t.Fatalf("sample = %+v, want finite position kept and NaN rotation dropped", s)
	}
}

func TestDecodeFields_RedisHash(t *testing.T) {
	fields := map[string]any{
		"timestamp":     "123",
		"group":         "sample_group",
		"sequential_id": "2",
		"label":         "sample_label",
		"position.x":    "1.0",
		"position.y":    "2.0",
		"position.z":    "3.0",
		"rotation.x":    "0.1",
		"rotation.y":    "0.2",
		"rotation.z":    "0.3",
		"rotation.w":    "0.4",
	}
	s, err := DecodeFields(fields)
	if err != nil {
		t.Fatalf("DecodeFields returned error: %v", err)
	}
	if s.Label != "sample_label" || s.SequentialID != 2 || s.Timestamp != "123" {
		t.Fatalf("metadata = %+v", s)
	}
	if *s.Position != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("Position = %v, want (1,2,3)", *s.Position)
	}
	if math.Abs(quat.Abs(*s.Rotation)-1) > 1e-9 {
		t.Fatalf("Rotation %v is not unit length", *s.Rotation)
	}
}

func TestDecodeFields_JSONField(t *testing.T) {
	s, err := DecodeFields(map[string]any{"json": `{"label":"wrapped","data":{"position.x":1,"position.y":1,"position.z":1}}`})
	if err != nil {
		t.Fatalf("DecodeFields returned error: %v", err)
	}
	if s.Label != "wrapped" || !s.HasPosition() {
		t.Fatalf("sample = %+v, want wrapped record decoded", s)
	}
}

func TestRecord_RoundTripsThroughDecode(t *testing.T) {
	q, _ := Normalize(quat.Number{Real: 0.9, Imag: 0.1, Jmag: 0.2, Kmag: 0.3})
	rec := NewRecord(time.Unix(1700000000, 0), "g", "Sample pose", 4, r3.Vec{X: 1, Y: 2, Z: 3}, q)

	body, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	fromJSON, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fromFields, err := DecodeFields(rec.Fields())
	if err != nil {
		t.Fatalf("DecodeFields: %v", err)
	}
	for _, s := range []Sample{fromJSON, fromFields} {
		if s.SequentialID != 4 || s.Timestamp != "1700000000" {
			t.Fatalf("metadata = %+v", s)
		}
		if *s.Position != (r3.Vec{X: 1, Y: 2, Z: 3}) {
			t.Fatalf("Position = %v", *s.Position)
		}
		if d := quat.Abs(quat.Sub(*s.Rotation, q)); d > 1e-9 {
			t.Fatalf("Rotation = %v, want %v", *s.Rotation, q)
		}
	}
}

func TestRotate_QuarterTurnAboutZ(t *testing.T) {
	q, _ := Normalize(quat.Number{Real: 1, Kmag: 1})
	got := Rotate(q, r3.Vec{X: 1})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Fatalf("Rotate(+X) = %v, want +Y", got)
	}
}
