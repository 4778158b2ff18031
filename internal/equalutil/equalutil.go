package equalutil

import "reflect"

// Equal reports deep structural equality between two document fragments.
//
// Fragments are the trees produced by decoding JSON or YAML: maps keyed by
// string, []any sequences, and scalars. Numeric scalars compare by value
// across Go decode types, so the int64(1) a YAML decoder produces equals the
// float64(1) a JSON decoder produces. Everything else falls back to
// reflect.DeepEqual.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, aval := range av {
			bval, present := bv[k]
			if !present || !Equal(aval, bval) {
				return false
			}
		}
		return true

	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true

	case string:
		bv, ok := b.(string)
		return ok && av == bv

	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	if an, aok := normalizeNumber(a); aok {
		bn, bok := normalizeNumber(b)
		return bok && numbersEqual(an, bn)
	}

	return reflect.DeepEqual(a, b)
}

// number carries a numeric value in whichever of the three Go shapes
// preserves it exactly.
type number struct {
	isFloat bool
	isUint  bool
	i       int64
	u       uint64
	f       float64
}

func normalizeNumber(v any) (number, bool) {
	switch n := v.(type) {
	case int:
		return number{i: int64(n)}, true
	case int8:
		return number{i: int64(n)}, true
	case int16:
		return number{i: int64(n)}, true
	case int32:
		return number{i: int64(n)}, true
	case int64:
		return number{i: n}, true
	case uint:
		return number{isUint: true, u: uint64(n)}, true
	case uint8:
		return number{isUint: true, u: uint64(n)}, true
	case uint16:
		return number{isUint: true, u: uint64(n)}, true
	case uint32:
		return number{isUint: true, u: uint64(n)}, true
	case uint64:
		return number{isUint: true, u: n}, true
	case float32:
		return number{isFloat: true, f: float64(n)}, true
	case float64:
		return number{isFloat: true, f: n}, true
	}
	return number{}, false
}

func numbersEqual(a, b number) bool {
	// Integer-to-integer comparison stays exact; floats only enter the
	// picture when one side actually decoded as a float.
	switch {
	case a.isFloat || b.isFloat:
		return a.asFloat() == b.asFloat()
	case a.isUint && b.isUint:
		return a.u == b.u
	case a.isUint:
		return b.i >= 0 && a.u == uint64(b.i)
	case b.isUint:
		return a.i >= 0 && b.u == uint64(a.i)
	default:
		return a.i == b.i
	}
}

func (n number) asFloat() float64 {
	switch {
	case n.isFloat:
		return n.f
	case n.isUint:
		return float64(n.u)
	default:
		return float64(n.i)
	}
}
