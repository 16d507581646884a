package domain

import (
	"math"
	"strconv"
)

// Value is one cell of an entry: a level reference, a 0-10 scale, or a
// yes/no flag. The zero Value is invalid and reports Type() == "".
type Value struct {
	kind   PropertyType
	level  string
	scale  int
	binary bool
}

// LevelValue references a level by id.
func LevelValue(id string) Value {
	return Value{kind: PropertyLevel, level: id}
}

// ScaleValue clamps n to [MinScale, MaxScale].
func ScaleValue(n int) Value {
	if n < MinScale {
		n = MinScale
	}
	if n > MaxScale {
		n = MaxScale
	}
	return Value{kind: PropertyScale, scale: n}
}

func BinaryValue(b bool) Value {
	return Value{kind: PropertyBinary, binary: b}
}

// DefaultValue returns the value a new property starts with on every entry.
func DefaultValue(t PropertyType) Value {
	switch t {
	case PropertyScale:
		return ScaleValue(0)
	case PropertyBinary:
		return BinaryValue(false)
	default:
		return LevelValue(NoneLevelID)
	}
}

func (v Value) Type() PropertyType { return v.kind }

func (v Value) IsZero() bool { return v.kind == "" }

func (v Value) Level() (string, bool) {
	return v.level, v.kind == PropertyLevel
}

func (v Value) Scale() (int, bool) {
	return v.scale, v.kind == PropertyScale
}

func (v Value) Binary() (bool, bool) {
	return v.binary, v.kind == PropertyBinary
}

// Is reports whether v holds the level id.
func (v Value) Is(levelID string) bool {
	return v.kind == PropertyLevel && v.level == levelID
}

func (v Value) String() string {
	switch v.kind {
	case PropertyLevel:
		return v.level
	case PropertyScale:
		return strconv.Itoa(v.scale)
	case PropertyBinary:
		return strconv.FormatBool(v.binary)
	default:
		return ""
	}
}

// Raw converts v to its untyped document representation: string for
// levels, int for scales, bool for binaries.
func (v Value) Raw() any {
	switch v.kind {
	case PropertyScale:
		return v.scale
	case PropertyBinary:
		return v.binary
	default:
		return v.level
	}
}

// ValueFromRaw converts an untyped document value. Strings become level
// references, numbers become scales (rounded and clamped), booleans become
// binaries. Anything else is rejected.
func ValueFromRaw(raw any) (Value, bool) {
	switch x := raw.(type) {
	case string:
		return LevelValue(x), true
	case bool:
		return BinaryValue(x), true
	case int:
		return ScaleValue(x), true
	case int64:
		return ScaleValue(int(min(max(x, MinScale), MaxScale))), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Value{}, false
		}
		// Clamp before converting: int() of a huge float is undefined.
		return ScaleValue(int(math.Round(math.Min(math.Max(x, MinScale), MaxScale)))), true
	case Value:
		return x, !x.IsZero()
	default:
		return Value{}, false
	}
}
