package compose

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// BoostMode selects how a booster wiring R modifies a base wiring W.
type BoostMode string

const (
	// BoostPost feeds W's result through R.
	BoostPost BoostMode = "post"
	// BoostPre feeds R's result through W.
	BoostPre BoostMode = "pre"
	// BoostXor combines both feeds through a binary XOR node.
	BoostXor BoostMode = "xor"
)

// Boost applies a booster wiring to a base wiring. Post and pre reduce
// to serial composition in the two orders; xor strips both outputs,
// shares R's context nodes with W's equivalents, and joins the feeds
// with a bit-xor node ahead of a fresh output node.
func Boost(w, r *wiring.Wiring, mode BoostMode) (*wiring.Wiring, error) {
	switch mode {
	case BoostPost:
		child, err := Serial(w, r)
		if err != nil {
			return nil, err
		}
		return relabelBoost(child, w, r, mode), nil
	case BoostPre:
		child, err := Serial(r, w)
		if err != nil {
			return nil, err
		}
		return relabelBoost(child, w, r, mode), nil
	case BoostXor:
		return boostXor(w, r)
	default:
		return nil, fmt.Errorf("boost: unknown mode %q", mode)
	}
}

// relabelBoost rebrands a serial result as a boost, keeping the child's
// diagram but recording the boost operator and the (w, r) parent order.
func relabelBoost(child, w, r *wiring.Wiring, mode BoostMode) *wiring.Wiring {
	name := fmt.Sprintf("boost-%s(%s,%s)", mode, w.Meta.Name, r.Meta.Name)
	return wiring.NewComposed(name, OpBoost, []string{w.Meta.ID, r.Meta.ID}, child.Diagram)
}

func boostXor(w, r *wiring.Wiring) (*wiring.Wiring, error) {
	dw := wiring.Namespace(w.Diagram, prefixA)
	dr := wiring.Namespace(r.Diagram, prefixB)

	dw, wFeed := stripOutput(dw)
	dr, rFeed := stripOutput(dr)
	if wFeed == "" || rFeed == "" {
		return nil, fmt.Errorf("boost-xor: parent output node has no feed")
	}

	dr = unifyContexts(dw, dr)

	nodes := append(append([]wiring.Node{}, dw.Nodes...), dr.Nodes...)
	edges := append(append([]wiring.Edge{}, dw.Edges...), dr.Edges...)

	nodes = append(nodes,
		wiring.Node{ID: "xor", Component: "bit-xor"},
		wiring.Node{ID: "out", Component: "output-sigil"},
	)
	edges = append(edges,
		wiring.Edge{From: wFeed, To: "xor", ToPort: "a"},
		wiring.Edge{From: rFeed, To: "xor", ToPort: "b"},
		wiring.Edge{From: "xor", To: "out", ToPort: "in"},
	)

	merged := wiring.Diagram{Nodes: nodes, Edges: edges, Output: "out"}
	name := fmt.Sprintf("boost-xor(%s,%s)", w.Meta.Name, r.Meta.Name)
	return finish(name, OpBoost, w, r, merged)
}
