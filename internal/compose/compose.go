package compose

import (
	"fmt"
	"strings"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// Operator names recorded in provenance and lineage.
const (
	OpSerial    = "serial"
	OpParallel  = "parallel"
	OpBoost     = "boost"
	OpCrossover = "crossover"
)

// Namespace prefixes for the two parents. Deterministic prefixes keep
// composed diagrams reproducible: the same parents compose to the same
// structure (and therefore the same content id) every time.
const (
	prefixA = "a"
	prefixB = "b"
)

// isContext reports whether a component reads the ambient neighborhood.
func isContext(component string) bool {
	return strings.HasPrefix(component, "context-")
}

// isOutput reports whether a component is an output terminal.
func isOutput(component string) bool {
	return strings.HasPrefix(component, "output-")
}

// feedNode returns the node feeding a diagram's output node: the From
// of the first wire edge targeting the output. The empty string means
// the output node has no feed (degenerate but legal).
func feedNode(d wiring.Diagram) string {
	for _, e := range d.Edges {
		if e.To == d.Output && !e.IsConst() {
			return e.From
		}
	}
	return ""
}

// stripOutput removes the output node, remembering its feed. Returns
// the reduced diagram and the feed node id.
func stripOutput(d wiring.Diagram) (wiring.Diagram, string) {
	feed := feedNode(d)
	return wiring.DropNode(d, d.Output), feed
}

// unifyContexts rewires b so that its context-extraction nodes resolve
// to a's equivalent nodes (matched by component identity), then drops
// the duplicates. Both branches of a parallel composition end up
// reading the same physical inputs.
func unifyContexts(a, b wiring.Diagram) wiring.Diagram {
	byComponent := make(map[string]string)
	for _, n := range a.Nodes {
		if isContext(n.Component) {
			if _, ok := byComponent[n.Component]; !ok {
				byComponent[n.Component] = n.ID
			}
		}
	}

	rename := make(map[string]string)
	var duplicates []string
	for _, n := range b.Nodes {
		if !isContext(n.Component) {
			continue
		}
		if target, ok := byComponent[n.Component]; ok {
			rename[n.ID] = target
			duplicates = append(duplicates, n.ID)
		}
	}
	if len(rename) == 0 {
		return b
	}

	out := wiring.RenameNodes(b, rename)
	for _, id := range duplicates {
		// RenameNodes rewrote edges; the duplicate nodes themselves
		// must go (their ids were renamed onto a's nodes).
		out = dropNodeKeepEdges(out, rename[id])
	}
	return out
}

// dropNodeKeepEdges removes a node entry without touching edges. Used
// after unification, where edges deliberately point at nodes that live
// in the other parent's half.
func dropNodeKeepEdges(d wiring.Diagram, id string) wiring.Diagram {
	out := wiring.Diagram{Edges: d.Edges, Output: d.Output}
	removed := false
	for _, n := range d.Nodes {
		if n.ID == id && !removed {
			removed = true
			continue
		}
		out.Nodes = append(out.Nodes, n)
	}
	return out
}

// finish validates the composed diagram and wraps it in a new Wiring
// with provenance. Every operator funnels through here: the
// well-formedness invariant is re-checked after each composition.
func finish(name, operator string, a, b *wiring.Wiring, d wiring.Diagram) (*wiring.Wiring, error) {
	if errs := wiring.Validate(d, nil); len(errs) > 0 {
		return nil, fmt.Errorf("%s composition produced malformed diagram: %v", operator, errs)
	}
	return wiring.NewComposed(name, operator, []string{a.Meta.ID, b.Meta.ID}, d), nil
}
