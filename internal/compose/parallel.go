package compose

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// Selector chooses how a parallel composition combines its two branch
// feeds.
type Selector struct {
	// Mode is "threshold" or "blend".
	Mode string
	// Threshold gates the branch choice when Mode is "threshold": the
	// ambient comparison signal at or above it selects branch A.
	Threshold float64
	// Weight biases the blend toward branch A when Mode is "blend".
	Weight float64
}

// SelectorThreshold gates between branches on the ambient comparison
// signal.
func SelectorThreshold(threshold float64) Selector {
	return Selector{Mode: "threshold", Threshold: threshold}
}

// SelectorBlend combines the branches with a fixed weight.
func SelectorBlend(weight float64) Selector {
	return Selector{Mode: "blend", Weight: weight}
}

// Parallel runs two wirings against the same inputs and combines their
// feeds through a selector node.
//
// Construction:
//  1. Namespace both parents; strip both output nodes, remembering feeds.
//  2. Unify B's context-extraction nodes with A's equivalents by
//     component identity, so both branches read the same physical inputs.
//  3. Append one selector node (threshold or blend) and one fresh output
//     node; wire both feeds into the selector and the selector into the
//     output.
func Parallel(a, b *wiring.Wiring, sel Selector) (*wiring.Wiring, error) {
	da := wiring.Namespace(a.Diagram, prefixA)
	db := wiring.Namespace(b.Diagram, prefixB)

	da, aFeed := stripOutput(da)
	db, bFeed := stripOutput(db)
	if aFeed == "" || bFeed == "" {
		return nil, fmt.Errorf("parallel: parent output node has no feed")
	}

	db = unifyContexts(da, db)

	nodes := append(append([]wiring.Node{}, da.Nodes...), db.Nodes...)
	edges := append(append([]wiring.Edge{}, da.Edges...), db.Edges...)

	switch sel.Mode {
	case "threshold":
		nodes = append(nodes,
			wiring.Node{ID: "sig", Component: "aux-signal"},
			wiring.Node{
				ID:        "sel",
				Component: "select-threshold",
				Params:    map[string]wiring.Value{"threshold": wiring.Scalar(sel.Threshold)},
			},
		)
		edges = append(edges,
			wiring.Edge{From: aFeed, To: "sel", ToPort: "a"},
			wiring.Edge{From: bFeed, To: "sel", ToPort: "b"},
			wiring.Edge{From: "sig", To: "sel", ToPort: "signal"},
		)
	case "blend":
		nodes = append(nodes, wiring.Node{ID: "sel", Component: "blend"})
		edges = append(edges,
			wiring.Edge{From: aFeed, To: "sel", ToPort: "a"},
			wiring.Edge{From: bFeed, To: "sel", ToPort: "b"},
			wiring.Edge{Const: wiring.Scalar(sel.Weight), To: "sel", ToPort: "weight"},
		)
	default:
		return nil, fmt.Errorf("parallel: unknown selector mode %q", sel.Mode)
	}

	nodes = append(nodes, wiring.Node{ID: "out", Component: "output-sigil"})
	edges = append(edges, wiring.Edge{From: "sel", To: "out", ToPort: "in"})

	merged := wiring.Diagram{Nodes: nodes, Edges: edges, Output: "out"}
	name := fmt.Sprintf("parallel-%s(%s,%s)", sel.Mode, a.Meta.Name, b.Meta.Name)
	return finish(name, OpParallel, a, b, merged)
}
