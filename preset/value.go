package preset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNotVector is returned when a component is requested
	// from a scalar value.
	ErrNotVector = errors.New("value is not a vector")

	// ErrIndexOutOfRange is returned for vector components
	// outside [0, 2].
	ErrIndexOutOfRange = errors.New("vector index out of range")

	// ErrUnsupportedValue is returned by FromAny for Go
	// values that have no engine representation.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Kind tags the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindVector
)

func (ki Kind) String() string {
	switch ki {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVector:
		return "vector"
	default:
		return "kind(" + strconv.Itoa(int(ki)) + ")"
	}
}

// Value is a single engine option value: an integer, a
// float, a string or a 3-vector of floats. The zero value
// is the empty string. Values are comparable with ==.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	vec  [3]float64
}

// Int returns an integer value. Engine flags such as
// write_multi_mol2 are integers, not booleans.
func Int(nu int64) Value {
	return Value{kind: KindInt, num: nu}
}

// Float returns a float value.
func Float(fl float64) Value {
	return Value{kind: KindFloat, flt: fl}
}

// String returns a string value.
func String(st string) Value {
	return Value{kind: KindString, str: st}
}

// Vec3 returns a 3-vector value.
func Vec3(x, y, z float64) Value {
	return Value{kind: KindVector, vec: [3]float64{x, y, z}}
}

// Kind reports the variant held by va.
func (va Value) Kind() Kind {
	return va.kind
}

// Equal reports whether va and other hold the same
// variant and payload.
func (va Value) Equal(other Value) bool {
	return va == other
}

// Component returns element idx of a vector value
// rendered as a float token.
func (va Value) Component(idx int) (string, error) {
	if va.kind != KindVector {
		return "", fmt.Errorf(
			"component %d of %s value: %w",
			idx, va.kind, ErrNotVector,
		)
	}

	if idx < 0 || idx >= len(va.vec) {
		return "", fmt.Errorf(
			"component %d: %w", idx, ErrIndexOutOfRange,
		)
	}

	return formatFloat(va.vec[idx]), nil
}

// String renders the value the way the engine expects it
// in a configuration file.
func (va Value) String() string {
	switch va.kind {
	case KindInt:
		return strconv.FormatInt(va.num, 10)
	case KindFloat:
		return formatFloat(va.flt)
	case KindVector:
		return formatFloat(va.vec[0]) + " " +
			formatFloat(va.vec[1]) + " " +
			formatFloat(va.vec[2])
	default:
		return va.str
	}
}

// formatFloat prints the shortest decimal form that
// round-trips, always keeping a decimal point so 10 is
// written as "10.0".
func formatFloat(fl float64) string {
	if math.IsInf(fl, 0) || math.IsNaN(fl) {
		return strconv.FormatFloat(fl, 'f', -1, 64)
	}

	st := strconv.FormatFloat(fl, 'f', -1, 64)
	if !strings.Contains(st, ".") {
		st += ".0"
	}

	return st
}

// ParseValue infers a Value from its textual form: an
// integer, a float, three numbers separated by whitespace,
// or otherwise a string. Text is only typed as a number
// when printing that number gives the text back, so
// "007" or "1e3" stay strings.
func ParseValue(text string) Value {
	trimmed := strings.TrimSpace(text)

	if fields := strings.Fields(trimmed); len(fields) == 3 {
		var vec [3]float64

		ok := true

		for idx, fi := range fields {
			fl, isNum := parseComponent(fi)
			if !isNum {
				ok = false

				break
			}

			vec[idx] = fl
		}

		if ok {
			return Vec3(vec[0], vec[1], vec[2])
		}
	}

	if nu, err := strconv.ParseInt(trimmed, 10, 64); err == nil &&
		strconv.FormatInt(nu, 10) == trimmed {
		return Int(nu)
	}

	if fl, ok := parseNumber(trimmed); ok && formatFloat(fl) == trimmed {
		return Float(fl)
	}

	return String(trimmed)
}

// parseComponent accepts a vector component written
// either as a canonical float or a canonical integer.
func parseComponent(text string) (float64, bool) {
	fl, ok := parseNumber(text)
	if !ok {
		return 0, false
	}

	if formatFloat(fl) == text {
		return fl, true
	}

	nu, err := strconv.ParseInt(text, 10, 64)
	if err == nil && strconv.FormatInt(nu, 10) == text {
		return fl, true
	}

	return 0, false
}

// parseNumber accepts decimal numbers only; words such as
// "inf" or "nan" stay strings.
func parseNumber(text string) (float64, bool) {
	if !strings.ContainsAny(text, "0123456789") {
		return 0, false
	}

	fl, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}

	return fl, true
}

// FromAny converts a value decoded from YAML or JSON.
// Booleans become 0/1 integers and 3-element numeric
// sequences become vectors.
func FromAny(raw any) (Value, error) {
	switch tv := raw.(type) {
	case Value:
		return tv, nil
	case string:
		return String(tv), nil
	case bool:
		if tv {
			return Int(1), nil
		}

		return Int(0), nil
	case int:
		return Int(int64(tv)), nil
	case int32:
		return Int(int64(tv)), nil
	case int64:
		return Int(tv), nil
	case uint:
		return FromAny(uint64(tv))
	case uint32:
		return Int(int64(tv)), nil
	case uint64:
		if tv > math.MaxInt64 {
			return Value{}, fmt.Errorf(
				"%d overflows int64: %w",
				tv, ErrUnsupportedValue,
			)
		}

		return Int(int64(tv)), nil
	case float32:
		return Float(float64(tv)), nil
	case float64:
		return Float(tv), nil
	case []float64:
		return vectorFrom(len(tv), func(idx int) any {
			return tv[idx]
		})
	case []any:
		return vectorFrom(len(tv), func(idx int) any {
			return tv[idx]
		})
	default:
		return Value{}, fmt.Errorf(
			"%T: %w", raw, ErrUnsupportedValue,
		)
	}
}

func vectorFrom(
	size int,
	at func(idx int) any,
) (Value, error) {
	if size != 3 {
		return Value{}, fmt.Errorf(
			"sequence of length %d is not a 3-vector: %w",
			size, ErrUnsupportedValue,
		)
	}

	var vec [3]float64

	for idx := range vec {
		comp, err := FromAny(at(idx))
		if err != nil {
			return Value{}, err
		}

		switch comp.kind {
		case KindInt:
			vec[idx] = float64(comp.num)
		case KindFloat:
			vec[idx] = comp.flt
		default:
			return Value{}, fmt.Errorf(
				"vector component %d is a %s: %w",
				idx, comp.kind, ErrUnsupportedValue,
			)
		}
	}

	return Vec3(vec[0], vec[1], vec[2]), nil
}
