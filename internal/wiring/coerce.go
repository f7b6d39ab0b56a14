package wiring

// coercions is the explicit table of allowed implicit conversions,
// directed from -> to. Consulted only at edge type-compatibility time;
// runtime values are never converted implicitly.
var coercions = map[PortType][]PortType{
	TypeSigil:  {TypeSigilList, TypeBits},
	TypeBits:   {TypeSigil},
	TypeScalar: {TypeScalarList, TypeInt},
	TypeBool:   {TypeBoolList, TypeInt},
	TypeInt:    {TypeScalar, TypeBool},
}

// Coercible reports whether a value of type from may feed a port of
// type to, either exactly or via the coercion table.
func Coercible(from, to PortType) bool {
	if from == to {
		return true
	}
	for _, t := range coercions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Coerce converts v to the target type under the coercion table.
// Returns (v, true) unchanged when the types already match, and
// (nil, false) when the table has no entry for the pair. Conversions
// are total functions: every in-table pair succeeds for every value.
func Coerce(v Value, to PortType) (Value, bool) {
	if v == nil {
		return nil, false
	}
	if v.Type() == to {
		return v, true
	}
	if !Coercible(v.Type(), to) {
		return nil, false
	}

	switch val := v.(type) {
	case Sigil:
		switch to {
		case TypeSigilList:
			return SigilList{val}, true
		case TypeBits:
			return SigilBits(val), true
		}
	case Bits:
		if to == TypeSigil {
			return BitsSigil(val), true
		}
	case Scalar:
		switch to {
		case TypeScalarList:
			return ScalarList{float64(val)}, true
		case TypeInt:
			return Int(int64(val)), true
		}
	case Bool:
		switch to {
		case TypeBoolList:
			return BoolList{bool(val)}, true
		case TypeInt:
			if val {
				return Int(1), true
			}
			return Int(0), true
		}
	case Int:
		switch to {
		case TypeScalar:
			return Scalar(float64(val)), true
		case TypeBool:
			return Bool(val != 0), true
		}
	}
	return nil, false
}
