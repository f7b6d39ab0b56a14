// Package signature computes structural embeddings of wirings: path
// signatures, Jaccard similarity, and landmark-vector projections
// against a fixed reference set. It reads diagrams and never mutates
// them.
package signature

import (
	"sort"
	"strings"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// stepDelimiter separates canonical path steps.
const stepDelimiter = ">"

// Signature is the set of canonical input-to-output path strings of a
// diagram. Order-independent, duplicate-independent, and invariant
// under node-id relabeling: steps name components and ports, never ids.
type Signature map[string]struct{}

// Strings returns the signature's members sorted, for stable display
// and golden comparison.
func (s Signature) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Compute enumerates every simple path from each input node to the
// output node by depth-first search and canonicalizes each to a string
// of component names and destination ports.
//
// Input nodes are the context-extraction nodes plus any node with no
// incoming wire edges (excluding the output). Path count can be
// exponential in diagram branching; callers bound diagram size, not
// this function.
func Compute(w *wiring.Wiring) Signature {
	d := w.Diagram
	sig := Signature{}

	byID := make(map[string]wiring.Node, len(d.Nodes))
	hasIn := make(map[string]bool)
	adj := make(map[string][]wiring.Edge)
	for _, n := range d.Nodes {
		byID[n.ID] = n
	}
	for _, e := range d.Edges {
		if e.IsConst() {
			continue
		}
		hasIn[e.To] = true
		adj[e.From] = append(adj[e.From], e)
	}

	for _, n := range d.Nodes {
		if n.ID == d.Output {
			continue
		}
		if strings.HasPrefix(n.Component, "context-") || !hasIn[n.ID] {
			onStack := map[string]bool{n.ID: true}
			walk(d, byID, adj, n.ID, n.Component, onStack, sig)
		}
	}

	return sig
}

// walk extends the current path along every outgoing edge, recording a
// signature entry whenever the output node is reached. onStack keeps
// paths simple: a node already on the current path is not revisited.
func walk(d wiring.Diagram, byID map[string]wiring.Node, adj map[string][]wiring.Edge,
	id, path string, onStack map[string]bool, sig Signature) {

	if id == d.Output {
		sig[path] = struct{}{}
		return
	}
	for _, e := range adj[id] {
		if onStack[e.To] {
			continue
		}
		next, ok := byID[e.To]
		if !ok {
			continue
		}
		step := next.Component
		if e.ToPort != "" {
			step += ":" + e.ToPort
		}
		onStack[e.To] = true
		walk(d, byID, adj, e.To, path+stepDelimiter+step, onStack, sig)
		delete(onStack, e.To)
	}
}

// Similarity is the Jaccard index of two signatures: |a n b| / |a u b|,
// defined as 1.0 when both are empty. Always within [0, 1], symmetric,
// and 1.0 for identical signatures.
func Similarity(a, b Signature) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for p := range a {
		if _, ok := b[p]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// SimilarityOf computes signatures for both wirings and returns their
// Jaccard similarity.
func SimilarityOf(a, b *wiring.Wiring) float64 {
	return Similarity(Compute(a), Compute(b))
}
