package wiringgen

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// FromRule builds the wiring diagram of an elementary one-dimensional
// automaton rule. Minterm construction: for each of the eight
// neighborhood combinations whose rule bit is set, an AND chain over
// the (possibly negated) pred/self/succ inputs; the minterms OR
// together into the output. Rule 0 degenerates to a constant 0 fed
// straight to the output node.
func FromRule(rule uint8) *wiring.Wiring {
	d := wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "pred", Component: "context-pred"},
			{ID: "self", Component: "context-self"},
			{ID: "succ", Component: "context-succ"},
		},
		Output: "out",
	}

	// Negated inputs are shared across minterms; created on demand.
	negated := map[string]bool{}
	literal := func(input string, positive bool) string {
		if positive {
			return input
		}
		id := "not-" + input
		if !negated[id] {
			negated[id] = true
			d.Nodes = append(d.Nodes, wiring.Node{ID: id, Component: "bit-not"})
			d.Edges = append(d.Edges, wiring.Edge{From: input, To: id, ToPort: "a"})
		}
		return id
	}

	var minterms []string
	for combo := 0; combo < 8; combo++ {
		if rule&(1<<uint(combo)) == 0 {
			continue
		}
		l := literal("pred", combo&4 != 0)
		c := literal("self", combo&2 != 0)
		r := literal("succ", combo&1 != 0)

		lc := fmt.Sprintf("m%d-lc", combo)
		m := fmt.Sprintf("m%d", combo)
		d.Nodes = append(d.Nodes,
			wiring.Node{ID: lc, Component: "bit-and"},
			wiring.Node{ID: m, Component: "bit-and"},
		)
		d.Edges = append(d.Edges,
			wiring.Edge{From: l, To: lc, ToPort: "a"},
			wiring.Edge{From: c, To: lc, ToPort: "b"},
			wiring.Edge{From: lc, To: m, ToPort: "a"},
			wiring.Edge{From: r, To: m, ToPort: "b"},
		)
		minterms = append(minterms, m)
	}

	d.Nodes = append(d.Nodes, wiring.Node{ID: "out", Component: "output-sigil"})

	switch len(minterms) {
	case 0:
		d.Edges = append(d.Edges, wiring.Edge{Const: wiring.Sigil(0), To: "out", ToPort: "in"})
	case 1:
		d.Edges = append(d.Edges, wiring.Edge{From: minterms[0], To: "out", ToPort: "in"})
	default:
		acc := minterms[0]
		for i, m := range minterms[1:] {
			or := fmt.Sprintf("or%d", i)
			d.Nodes = append(d.Nodes, wiring.Node{ID: or, Component: "bit-or"})
			d.Edges = append(d.Edges,
				wiring.Edge{From: acc, To: or, ToPort: "a"},
				wiring.Edge{From: m, To: or, ToPort: "b"},
			)
			acc = or
		}
		d.Edges = append(d.Edges, wiring.Edge{From: acc, To: "out", ToPort: "in"})
	}

	return wiring.New(fmt.Sprintf("rule-%d", rule), d)
}
