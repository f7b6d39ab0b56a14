package compose

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// Crossover breeds two wirings by swapping subgraphs at a shared cut
// point: a primitive identifier present as a non-context, non-output
// node in both parents. The tail of each parent (the forward-reachable
// subgraph from its cut node) is grafted onto the other parent's head.
//
// Returns (nil, nil) when no shared cut point exists - an expected,
// frequent outcome for structurally dissimilar parents, not an error.
// Otherwise returns exactly two children, each re-validated.
func Crossover(a, b *wiring.Wiring) ([]*wiring.Wiring, error) {
	da := wiring.Namespace(a.Diagram, prefixA)
	db := wiring.Namespace(b.Diagram, prefixB)

	cutA, cutB, ok := findCutPoint(da, db)
	if !ok {
		return nil, nil
	}

	tailA := forwardReachable(da, cutA)
	tailB := forwardReachable(db, cutB)

	// A graft only works when the donor's output rides along in its
	// tail; otherwise the child would have no output node.
	if !tailB[db.Output] || !tailA[da.Output] {
		return nil, nil
	}

	child1 := graft(da, tailA, cutA, db, tailB, cutB)
	child2 := graft(db, tailB, cutB, da, tailA, cutA)

	name1 := fmt.Sprintf("cross(%s<%s)", a.Meta.Name, b.Meta.Name)
	name2 := fmt.Sprintf("cross(%s<%s)", b.Meta.Name, a.Meta.Name)

	w1, err := finish(name1, OpCrossover, a, b, child1)
	if err != nil {
		return nil, err
	}
	w2, err := finish(name2, OpCrossover, b, a, child2)
	if err != nil {
		return nil, err
	}
	return []*wiring.Wiring{w1, w2}, nil
}

// findCutPoint locates the first component (in a's declaration order)
// present as a non-context, non-output node in both diagrams whose
// forward subgraphs carry the respective outputs. Deterministic: the
// same parents always cut at the same nodes.
func findCutPoint(da, db wiring.Diagram) (string, string, bool) {
	for _, na := range da.Nodes {
		if isContext(na.Component) || isOutput(na.Component) {
			continue
		}
		for _, nb := range db.Nodes {
			if nb.Component != na.Component || isContext(nb.Component) || isOutput(nb.Component) {
				continue
			}
			if forwardReachable(da, na.ID)[da.Output] && forwardReachable(db, nb.ID)[db.Output] {
				return na.ID, nb.ID, true
			}
		}
	}
	return "", "", false
}

// forwardReachable collects the node ids reachable from start by
// breadth-first traversal over wire edges, including start itself.
func forwardReachable(d wiring.Diagram, start string) map[string]bool {
	adj := make(map[string][]string)
	for _, e := range d.Edges {
		if !e.IsConst() {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}

	reached := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range adj[id] {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}
	return reached
}

// graft builds one child: the head of the recipient (everything outside
// its tail) plus the donor's tail. Edges that pointed at the
// recipient's cut node are redirected to the donor's cut node (the tail
// entry); other edges crossing the head/tail boundary are dropped, and
// the evaluator's per-type defaults absorb the gaps.
func graft(recipient wiring.Diagram, recipientTail map[string]bool, recipientCut string,
	donor wiring.Diagram, donorTail map[string]bool, donorCut string) wiring.Diagram {

	var nodes []wiring.Node
	for _, n := range recipient.Nodes {
		if !recipientTail[n.ID] {
			nodes = append(nodes, n)
		}
	}
	for _, n := range donor.Nodes {
		if donorTail[n.ID] {
			nodes = append(nodes, n)
		}
	}

	var edges []wiring.Edge
	for _, e := range recipient.Edges {
		fromInHead := e.IsConst() || !recipientTail[e.From]
		switch {
		case e.To == recipientCut && fromInHead:
			e.To = donorCut
			edges = append(edges, e)
		case !recipientTail[e.To] && fromInHead:
			edges = append(edges, e)
		}
	}
	for _, e := range donor.Edges {
		fromInTail := e.IsConst() || donorTail[e.From]
		if donorTail[e.To] && fromInTail {
			edges = append(edges, e)
		}
	}

	return wiring.Diagram{Nodes: nodes, Edges: edges, Output: donor.Output}
}
