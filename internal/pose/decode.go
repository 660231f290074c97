package pose

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoLabel is returned for records without a routing label.
var ErrNoLabel = errors.New("record has no label")

// Decode parses one inbound wire record. The data object may use dotted keys
// ("position.x") or nested objects ({"position": {"x": ..}}); records without
// a data object may carry the dotted keys at the top level. Missing or
// partial position/rotation values are not an error, the corresponding
// field is left nil.
func Decode(data []byte) (Sample, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Sample{}, fmt.Errorf("decode record: %w", err)
	}

	s := Sample{
		Timestamp: rawText(top["timestamp"]),
		Group:     rawText(top["group"]),
		Label:     rawText(top["label"]),
	}
	seq := top["sequential_id"]
	if seq == nil {
		seq = top["sequentialId"]
	}
	if n, ok := rawNumber(seq); ok {
		s.SequentialID = int64(n)
	}
	if strings.TrimSpace(s.Label) == "" {
		return Sample{}, ErrNoLabel
	}

	values := make(map[string]float64)
	if body, ok := top["data"]; ok && !isNull(body) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return Sample{}, fmt.Errorf("decode data: %w", err)
		}
		flatten("", fields, values)
	} else {
		flatten("", top, values)
	}
	s.Position, s.Rotation = poseFrom(func(key string) (float64, bool) {
		v, ok := values[key]
		return v, ok
	})
	return s, nil
}

// DecodeFields parses a flat field hash such as a redis stream entry. A
// "json" field holding a whole record takes precedence over flat fields.
func DecodeFields(fields map[string]any) (Sample, error) {
	if raw, ok := fields["json"]; ok {
		return Decode([]byte(fmt.Sprint(raw)))
	}
	s := Sample{
		Timestamp: fieldText(fields["timestamp"]),
		Group:     fieldText(fields["group"]),
		Label:     fieldText(fields["label"]),
	}
	if n, ok := fieldNumber(fields["sequential_id"]); ok {
		s.SequentialID = int64(n)
	}
	if strings.TrimSpace(s.Label) == "" {
		return Sample{}, ErrNoLabel
	}
	s.Position, s.Rotation = poseFrom(func(key string) (float64, bool) {
		return fieldNumber(fields[key])
	})
	return s, nil
}

func poseFrom(lookup func(string) (float64, bool)) (*r3.Vec, *quat.Number) {
	var pos *r3.Vec
	x, okX := lookup(KeyPositionX)
	y, okY := lookup(KeyPositionY)
	z, okZ := lookup(KeyPositionZ)
	if okX && okY && okZ && finite(x, y, z) {
		pos = &r3.Vec{X: x, Y: y, Z: z}
	}

	var rot *quat.Number
	qx, okX := lookup(KeyRotationX)
	qy, okY := lookup(KeyRotationY)
	qz, okZ := lookup(KeyRotationZ)
	qw, okW := lookup(KeyRotationW)
	if okX && okY && okZ && okW {
		if q, ok := Normalize(quat.Number{Real: qw, Imag: qx, Jmag: qy, Kmag: qz}); ok {
			rot = &q
		}
	}
	return pos, rot
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// flatten collects numeric leaves under dotted paths, so both
// {"position.x": 1} and {"position": {"x": 1}} land on "position.x".
func flatten(prefix string, fields map[string]json.RawMessage, out map[string]float64) {
	for k, raw := range fields {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(trimmed, &nested); err == nil {
				flatten(key, nested, out)
			}
			continue
		}
		if n, ok := rawNumber(trimmed); ok {
			out[key] = n
		}
	}
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// rawText returns a JSON string unquoted, or any other scalar as written.
func rawText(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// rawNumber accepts JSON numbers and numeric strings.
func rawNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func fieldText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func fieldNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(v)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
}
