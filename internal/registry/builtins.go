package registry

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// builtinImpls is the code half of the registry: one implementation per
// identifier declared in registry.cue.
//
// Implementations are defensive about input shapes. A missing or
// oddly-typed input collapses to the per-type default instead of
// erroring - single-cell dynamics must stay total functions over the
// grid, so a gap in wiring degrades the value, never the run.
func builtinImpls() map[string]ImplFunc {
	return map[string]ImplFunc{
		"context-pred": func(_, _ map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error) {
			return out1(ctx.Pred), nil
		},
		"context-self": func(_, _ map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error) {
			return out1(ctx.Self), nil
		},
		"context-succ": func(_, _ map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error) {
			return out1(ctx.Succ), nil
		},
		"context-window": func(_, _ map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error) {
			return out1(wiring.SigilList{ctx.Pred, ctx.Self, ctx.Succ}), nil
		},
		"aux-signal": func(_, _ map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error) {
			return out1(asScalar(ctx.Signal("signal"))), nil
		},
		"identity": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asSigil(in["in"])), nil
		},
		"bit-and": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asSigil(in["a"]) & asSigil(in["b"])), nil
		},
		"bit-or": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asSigil(in["a"]) | asSigil(in["b"])), nil
		},
		"bit-xor": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asSigil(in["a"]) ^ asSigil(in["b"])), nil
		},
		"bit-not": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(^asSigil(in["a"])), nil
		},
		"sigil-add": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asSigil(in["a"]) + asSigil(in["b"])), nil
		},
		"sigil-rotate": func(in, params map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			n := int(asInt(params["n"]))
			rotated := bits.RotateLeft8(uint8(asSigil(in["a"])), n)
			return out1(wiring.Sigil(rotated)), nil
		},
		"majority": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(bitMajority(asSigilList(in["xs"]))), nil
		},
		"freq-count": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			f := wiring.Freq{}
			for _, s := range asSigilList(in["xs"]) {
				f[s]++
			}
			return map[string]wiring.Value{"freq": f}, nil
		},
		"freq-mode": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asFreq(in["freq"]).Mode()), nil
		},
		"select-threshold": func(in, params map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			threshold := 0.5
			if t, ok := params["threshold"]; ok {
				threshold = float64(asScalar(t))
			}
			if float64(asScalar(in["signal"])) >= threshold {
				return out1(asSigil(in["a"])), nil
			}
			return out1(asSigil(in["b"])), nil
		},
		"blend": func(in, params map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			weight := float64(asScalar(in["weight"]))
			if _, ok := in["weight"]; !ok {
				if w, ok := params["weight"]; ok {
					weight = float64(asScalar(w))
				}
			}
			return out1(blendSigils(asSigil(in["a"]), asSigil(in["b"]), weight)), nil
		},
		"gate": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			if asBool(in["enable"]) {
				return out1(asSigil(in["a"])), nil
			}
			return out1(wiring.Sigil(0)), nil
		},
		"sigil-bits": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(wiring.SigilBits(asSigil(in["a"]))), nil
		},
		"bits-sigil": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asSigil(in["b"])), nil
		},
		"accumulator": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			state := asState(in["state"]).Clone()
			acc := asSigil(state["acc"]) ^ asSigil(in["in"])
			state["acc"] = acc
			return map[string]wiring.Value{"out": acc, "state": state}, nil
		},
		"trigger": func(in, params map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			arm := wiring.Sigil(uint8(asInt(params["arm"])))
			state := asState(in["state"]).Clone()
			fired := asBool(state["fired"]) || asSigil(in["in"]) == arm
			state["fired"] = wiring.Bool(fired)
			return map[string]wiring.Value{"out": wiring.Bool(fired), "state": state}, nil
		},
		"bias-learn": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			state := asState(in["state"]).Clone()
			s := asSigil(in["in"])
			n := asInt(state["n"]) + 1
			state["n"] = n
			var biased wiring.Sigil
			for i := 0; i < 8; i++ {
				key := bitKey(i)
				count := asInt(state[key])
				if s.Bit(i) {
					count++
				}
				state[key] = count
				// Majority bias per bit position across observations.
				if 2*int64(count) > int64(n) {
					biased |= 1 << uint(i)
				}
			}
			return map[string]wiring.Value{"out": biased, "state": state}, nil
		},
		"window-density": func(_, _ map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error) {
			return out1(wiring.Scalar(mean(asScalarList(ctx.Signal("density"))))), nil
		},
		"scalar-mean": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(wiring.Scalar(mean(asScalarList(in["xs"])))), nil
		},
		"output-sigil": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return out1(asSigil(in["in"])), nil
		},
		"output-with-state": func(in, _ map[string]wiring.Value, _ wiring.Context) (map[string]wiring.Value, error) {
			return map[string]wiring.Value{
				"out":   asSigil(in["in"]),
				"state": asState(in["state"]),
			}, nil
		},
	}
}

func out1(v wiring.Value) map[string]wiring.Value {
	return map[string]wiring.Value{"out": v}
}

// bitMajority computes the per-bit majority of a sigil list. Ties
// (including the empty list) resolve to 0.
func bitMajority(xs wiring.SigilList) wiring.Sigil {
	var result wiring.Sigil
	for i := 0; i < 8; i++ {
		ones := 0
		for _, s := range xs {
			if s.Bit(i) {
				ones++
			}
		}
		if 2*ones > len(xs) {
			result |= 1 << uint(i)
		}
	}
	return result
}

// blendSigils takes the top round(weight*8) bits from a and the rest
// from b. weight clamps to [0, 1].
func blendSigils(a, b wiring.Sigil, weight float64) wiring.Sigil {
	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}
	k := int(math.Round(weight * 8))
	var mask wiring.Sigil
	for i := 0; i < k; i++ {
		mask |= 1 << uint(7-i)
	}
	return (a & mask) | (b &^ mask)
}

func mean(xs wiring.ScalarList) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func bitKey(i int) string {
	return fmt.Sprintf("bit%d", i)
}
