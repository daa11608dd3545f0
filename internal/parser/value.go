package parser

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/astro"
)

// ValueKind identifies the concrete type held by a Value.
type ValueKind int

const (
	NumberValue ValueKind = iota
	StringValue
	BoolValue
	ArrayValue
	MapValue
)

// Value is one node of the tagged tree produced by the parser: a scalar, an
// ordered array, or an associative map.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
	arr  []*Value
	m    *Map
}

// Kind returns the concrete kind of the value.
func (v *Value) Kind() ValueKind { return v.kind }

// Number returns the numeric payload; valid only for NumberValue.
func (v *Value) Number() float64 { return v.num }

// Text returns the string payload; valid only for StringValue.
func (v *Value) Text() string { return v.str }

// Bool returns the boolean payload; valid only for BoolValue.
func (v *Value) Bool() bool { return v.b }

// Array returns the element list, or nil if the value is not an array.
func (v *Value) Array() []*Value {
	if v.kind != ArrayValue {
		return nil
	}
	return v.arr
}

// Map returns the associative map, or nil if the value is not a map.
func (v *Value) Map() *Map {
	if v.kind != MapValue {
		return nil
	}
	return v.m
}

// Map is an associative map of field names to values. The typed accessors
// below implement absent-is-default extraction: a missing field and a field
// of the wrong type are both reported as absent, never as an error. This is
// the contract the catalog builders rely on for "only overridden fields
// differ" merge semantics.
type Map struct {
	fields map[string]*Value
}

// NewMap returns an empty associative map.
func NewMap() *Map {
	return &Map{fields: make(map[string]*Value)}
}

// Set stores a value under the given field name, replacing any previous one.
func (m *Map) Set(name string, v *Value) { m.fields[name] = v }

// Value returns the raw tagged value for a field, or nil if absent. Used for
// polymorphic fields (frame descriptors, timelines) whose concrete type is
// decided by the caller.
func (m *Map) Value(name string) *Value { return m.fields[name] }

// Number extracts a numeric field.
func (m *Map) Number(name string) (float64, bool) {
	v := m.fields[name]
	if v == nil || v.kind != NumberValue {
		return 0, false
	}
	return v.num, true
}

// String extracts a string field.
func (m *Map) String(name string) (string, bool) {
	v := m.fields[name]
	if v == nil || v.kind != StringValue {
		return "", false
	}
	return v.str, true
}

// Boolean extracts a boolean field.
func (m *Map) Boolean(name string) (bool, bool) {
	v := m.fields[name]
	if v == nil || v.kind != BoolValue {
		return false, false
	}
	return v.b, true
}

// Vector extracts a 3-vector field written as an array of three numbers.
func (m *Map) Vector(name string) (mgl64.Vec3, bool) {
	v := m.fields[name]
	if v == nil || v.kind != ArrayValue || len(v.arr) != 3 {
		return mgl64.Vec3{}, false
	}
	var out mgl64.Vec3
	for i, e := range v.arr {
		if e.kind != NumberValue {
			return mgl64.Vec3{}, false
		}
		out[i] = e.num
	}
	return out, true
}

// Color extracts an RGB color field written as an array of three numbers.
func (m *Map) Color(name string) (mgl64.Vec3, bool) {
	return m.Vector(name)
}

// ColorAlpha extracts a color field written as an array of three or four
// numbers; when the alpha component is omitted it defaults to 1.
func (m *Map) ColorAlpha(name string) (mgl64.Vec4, bool) {
	v := m.fields[name]
	if v == nil || v.kind != ArrayValue || len(v.arr) < 3 || len(v.arr) > 4 {
		return mgl64.Vec4{}, false
	}
	out := mgl64.Vec4{0, 0, 0, 1}
	for i, e := range v.arr {
		if e.kind != NumberValue {
			return mgl64.Vec4{}, false
		}
		out[i] = e.num
	}
	return out, true
}

// Rotation extracts an axis-angle rotation written as an array of four
// numbers [axisX axisY axisZ angleDegrees] and returns it as a quaternion.
func (m *Map) Rotation(name string) (mgl64.Quat, bool) {
	v := m.fields[name]
	if v == nil || v.kind != ArrayValue || len(v.arr) != 4 {
		return mgl64.QuatIdent(), false
	}
	var nums [4]float64
	for i, e := range v.arr {
		if e.kind != NumberValue {
			return mgl64.QuatIdent(), false
		}
		nums[i] = e.num
	}
	axis := mgl64.Vec3{nums[0], nums[1], nums[2]}
	if axis.Len() == 0 {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatRotate(astro.DegToRad(nums[3]), axis.Normalize()), true
}

// Map extracts a nested associative map field.
func (m *Map) Map(name string) (*Map, bool) {
	v := m.fields[name]
	if v == nil || v.kind != MapValue {
		return nil, false
	}
	return v.m, true
}

// Array extracts a nested ordered-array field.
func (m *Map) Array(name string) ([]*Value, bool) {
	v := m.fields[name]
	if v == nil || v.kind != ArrayValue {
		return nil, false
	}
	return v.arr, true
}

// Date extracts a time field given either as a Julian day number or as a
// calendar date string, returning it as a Julian day number.
func (m *Map) Date(name string) (float64, bool) {
	v := m.fields[name]
	if v == nil {
		return 0, false
	}
	switch v.kind {
	case NumberValue:
		return v.num, true
	case StringValue:
		jd, err := astro.ParseDate(v.str)
		if err != nil {
			return 0, false
		}
		return jd, true
	default:
		return 0, false
	}
}
