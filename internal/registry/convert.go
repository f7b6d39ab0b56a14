package registry

import "github.com/tothedarktowercame/loom/internal/wiring"

// Runtime input conversions. These are the per-type recovery functions
// behind the "missing input degrades to a default" rule: a nil or
// unexpectedly-typed value collapses to the target type's default, and
// values with a table coercion convert losslessly. They are distinct
// from wiring.Coerce, which answers the static edge-compatibility
// question; these answer "what does this primitive actually see".

func asSigil(v wiring.Value) wiring.Sigil {
	switch val := v.(type) {
	case wiring.Sigil:
		return val
	case wiring.Bits:
		return wiring.BitsSigil(val)
	case wiring.Int:
		return wiring.Sigil(uint8(val))
	case wiring.Bool:
		if val {
			return 1
		}
		return 0
	case wiring.SigilList:
		if len(val) > 0 {
			return val[0]
		}
		return 0
	default:
		return 0
	}
}

func asSigilList(v wiring.Value) wiring.SigilList {
	switch val := v.(type) {
	case wiring.SigilList:
		return val
	case wiring.Sigil:
		return wiring.SigilList{val}
	default:
		return wiring.SigilList{}
	}
}

func asScalar(v wiring.Value) wiring.Scalar {
	switch val := v.(type) {
	case wiring.Scalar:
		return val
	case wiring.Int:
		return wiring.Scalar(float64(val))
	case wiring.Bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func asScalarList(v wiring.Value) wiring.ScalarList {
	switch val := v.(type) {
	case wiring.ScalarList:
		return val
	case wiring.Scalar:
		return wiring.ScalarList{float64(val)}
	default:
		return wiring.ScalarList{}
	}
}

func asInt(v wiring.Value) wiring.Int {
	switch val := v.(type) {
	case wiring.Int:
		return val
	case wiring.Scalar:
		return wiring.Int(int64(val))
	case wiring.Sigil:
		return wiring.Int(int64(val))
	case wiring.Bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func asBool(v wiring.Value) bool {
	switch val := v.(type) {
	case wiring.Bool:
		return bool(val)
	case wiring.Int:
		return val != 0
	case wiring.Sigil:
		return val != 0
	default:
		return false
	}
}

func asState(v wiring.Value) wiring.State {
	if s, ok := v.(wiring.State); ok && s != nil {
		return s
	}
	return wiring.State{}
}

func asFreq(v wiring.Value) wiring.Freq {
	if f, ok := v.(wiring.Freq); ok && f != nil {
		return f
	}
	return wiring.Freq{}
}
