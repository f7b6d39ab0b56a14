// Package testutil provides canned wirings and golden-file helpers
// shared by tests across packages.
package testutil

import (
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// IdentityWiring passes the cell's own value straight to the output.
func IdentityWiring() *wiring.Wiring {
	return wiring.New("identity", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "self", Component: "context-self"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []wiring.Edge{
			{From: "self", To: "out", ToPort: "in"},
		},
		Output: "out",
	})
}

// XorConstWiring XORs the cell's own value with a constant. With c=0
// this behaves identically to IdentityWiring.
func XorConstWiring(c uint8) *wiring.Wiring {
	return wiring.New("xor-const", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "self", Component: "context-self"},
			{ID: "x", Component: "bit-xor"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []wiring.Edge{
			{From: "self", To: "x", ToPort: "a"},
			{Const: wiring.Sigil(c), To: "x", ToPort: "b"},
			{From: "x", To: "out", ToPort: "in"},
		},
		Output: "out",
	})
}

// NegateWiring inverts every bit of the cell's own value.
func NegateWiring() *wiring.Wiring {
	return wiring.New("negate", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "self", Component: "context-self"},
			{ID: "not", Component: "bit-not"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []wiring.Edge{
			{From: "self", To: "not", ToPort: "a"},
			{From: "not", To: "out", ToPort: "in"},
		},
		Output: "out",
	})
}

// MajorityWiring votes per bit across the three context inputs.
func MajorityWiring() *wiring.Wiring {
	return wiring.New("majority", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "pred", Component: "context-pred"},
			{ID: "self", Component: "context-self"},
			{ID: "succ", Component: "context-succ"},
			{ID: "maj", Component: "majority"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []wiring.Edge{
			{From: "pred", To: "maj", ToPort: "xs"},
			{From: "self", To: "maj", ToPort: "xs"},
			{From: "succ", To: "maj", ToPort: "xs"},
			{From: "maj", To: "out", ToPort: "in"},
		},
		Output: "out",
	})
}

// CyclicWiring has a two-node cycle feeding the output. Used to
// exercise the declaration-order fallback.
func CyclicWiring() *wiring.Wiring {
	return wiring.New("cyclic", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "self", Component: "context-self"},
			{ID: "p", Component: "bit-xor"},
			{ID: "q", Component: "bit-xor"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []wiring.Edge{
			{From: "self", To: "p", ToPort: "a"},
			{From: "q", To: "p", ToPort: "b"},
			{From: "p", To: "q", ToPort: "a"},
			{Const: wiring.Sigil(0), To: "q", ToPort: "b"},
			{From: "p", To: "out", ToPort: "in"},
		},
		Output: "out",
	})
}
