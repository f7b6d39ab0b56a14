package wiring

import (
	"fmt"
	"strings"
)

// PortType identifies one of the closed set of semantic port types.
// Every primitive port references a member of this set; Valid() is the
// totality check.
type PortType string

const (
	TypeSigil      PortType = "sigil"
	TypeSigilList  PortType = "sigil-list"
	TypeBits       PortType = "bits"
	TypeScalar     PortType = "scalar"
	TypeScalarList PortType = "scalar-list"
	TypeInt        PortType = "int"
	TypeBool       PortType = "bool"
	TypeBoolList   PortType = "bool-list"
	TypeContext    PortType = "context"
	TypeState      PortType = "state"
	TypeFreq       PortType = "freq"
)

// AllTypes lists every port type in declaration order.
var AllTypes = []PortType{
	TypeSigil, TypeSigilList, TypeBits, TypeScalar, TypeScalarList,
	TypeInt, TypeBool, TypeBoolList, TypeContext, TypeState, TypeFreq,
}

// Valid reports whether t is a member of the closed type set.
func (t PortType) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsList reports whether ports of this type accept multiple incoming
// edges (values concatenate in edge order).
func (t PortType) IsList() bool {
	return t == TypeSigilList || t == TypeScalarList || t == TypeBoolList
}

// Value is a sealed interface over the eleven port value types.
// Only Sigil, SigilList, Bits, Scalar, ScalarList, Int, Bool, BoolList,
// Context, State, and Freq implement it.
type Value interface {
	value() // Sealed - only the types in this file implement it
	Type() PortType
}

// Sigil is an opaque 8-bit discrete symbol, the atomic value the
// automaton operates on.
type Sigil uint8

func (Sigil) value()         {}
func (Sigil) Type() PortType { return TypeSigil }

// Bit returns bit i (0 = least significant) of the sigil.
func (s Sigil) Bit(i int) bool {
	return s&(1<<uint(i)) != 0
}

// SigilList is an ordered sequence of sigils.
type SigilList []Sigil

func (SigilList) value()         {}
func (SigilList) Type() PortType { return TypeSigilList }

// Bits is a raw bit string of '0' and '1' runes, most significant first.
type Bits string

func (Bits) value()         {}
func (Bits) Type() PortType { return TypeBits }

// ValidBits reports whether b is exactly eight '0'/'1' runes.
func ValidBits(b Bits) bool {
	if len(b) != 8 {
		return false
	}
	for _, r := range b {
		if r != '0' && r != '1' {
			return false
		}
	}
	return true
}

// Scalar is a floating value.
type Scalar float64

func (Scalar) value()         {}
func (Scalar) Type() PortType { return TypeScalar }

// ScalarList is an ordered sequence of scalars.
type ScalarList []float64

func (ScalarList) value()         {}
func (ScalarList) Type() PortType { return TypeScalarList }

// Int is a signed integer value.
type Int int64

func (Int) value()         {}
func (Int) Type() PortType { return TypeInt }

// Bool is a boolean value.
type Bool bool

func (Bool) value()         {}
func (Bool) Type() PortType { return TypeBool }

// BoolList is an ordered sequence of booleans.
type BoolList []bool

func (BoolList) value()         {}
func (BoolList) Type() PortType { return TypeBoolList }

// Context is the per-cell neighborhood bundle: the predecessor, self,
// and successor sigils, plus named auxiliary signals (aggregate run
// metrics during windowed evaluation).
type Context struct {
	Pred Sigil
	Self Sigil
	Succ Sigil

	// Aux carries auxiliary signals by name. Nil means no signals.
	Aux map[string]Value
}

func (Context) value()         {}
func (Context) Type() PortType { return TypeContext }

// Signal returns the named auxiliary signal, or nil if absent.
func (c Context) Signal(name string) Value {
	if c.Aux == nil {
		return nil
	}
	return c.Aux[name]
}

// State is opaque carried hidden state. Primitives that need cross-cell
// or cross-generation memory receive a State input and return a State
// output; the caller threads state between invocations. The engine never
// stores state itself.
type State map[string]Value

func (State) value()         {}
func (State) Type() PortType { return TypeState }

// Clone returns a shallow copy. Stateful primitives clone before
// mutating so the input State stays untouched.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Freq is a symbol -> count multiset.
type Freq map[Sigil]int64

func (Freq) value()         {}
func (Freq) Type() PortType { return TypeFreq }

// Mode returns the most frequent sigil. Ties resolve to the lowest
// sigil value so the result is deterministic.
func (f Freq) Mode() Sigil {
	var best Sigil
	var bestCount int64 = -1
	for s := Sigil(0); ; s++ {
		if count, ok := f[s]; ok && count > bestCount {
			best = s
			bestCount = count
		}
		if s == 255 {
			break
		}
	}
	return best
}

// Default returns the documented per-type default substituted for a
// missing non-list input at evaluation time. Evaluation never raises on
// an absent input; per-cell dynamics stay total over the grid.
func Default(t PortType) Value {
	switch t {
	case TypeSigil:
		return Sigil(0)
	case TypeSigilList:
		return SigilList{}
	case TypeBits:
		return Bits("00000000")
	case TypeScalar:
		return Scalar(0)
	case TypeScalarList:
		return ScalarList{}
	case TypeInt:
		return Int(0)
	case TypeBool:
		return Bool(false)
	case TypeBoolList:
		return BoolList{}
	case TypeContext:
		return Context{}
	case TypeState:
		return State{}
	case TypeFreq:
		return Freq{}
	default:
		return Sigil(0)
	}
}

// SigilBits renders a sigil as an 8-character bit string, most
// significant bit first.
func SigilBits(s Sigil) Bits {
	var b strings.Builder
	for i := 7; i >= 0; i-- {
		if s.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return Bits(b.String())
}

// BitsSigil parses the last 8 characters of a bit string into a sigil.
// Shorter strings parse as their value; invalid runes count as 0.
func BitsSigil(b Bits) Sigil {
	var s Sigil
	for _, r := range b {
		s <<= 1
		if r == '1' {
			s |= 1
		}
	}
	return s
}

// String implements fmt.Stringer for diagnostics.
func (s Sigil) String() string {
	return fmt.Sprintf("sigil(%d)", uint8(s))
}
