package wiring

import "github.com/google/uuid"

// Node is one computation step in a diagram. Component names a
// primitive in the registry; Params is optional static configuration
// passed alongside the assembled inputs on every invocation.
type Node struct {
	ID        string           `json:"id"`
	Component string           `json:"component"`
	Params    map[string]Value `json:"params,omitempty"`
}

// Edge connects a node output to a node input (a wire), or injects a
// literal into a node input (a constant). A constant edge has From ==
// "" and a non-nil Const. Omitted ports default to each side's first
// declared port.
type Edge struct {
	From     string `json:"from,omitempty"`
	FromPort string `json:"from-port,omitempty"`
	To       string `json:"to"`
	ToPort   string `json:"to-port,omitempty"`
	Const    Value  `json:"const,omitempty"`
}

// IsConst reports whether the edge injects a literal rather than a
// node output.
func (e Edge) IsConst() bool {
	return e.From == ""
}

// Diagram is the node/edge graph plus the designated output node.
//
// INVARIANTS (checked by Validate, re-checked after every composition):
//   - node ids are unique
//   - every edge endpoint resolves to a node in the diagram
//   - the output node exists
//
// List-typed input ports accept zero or more incoming edges whose
// values concatenate in edge order. Scalar-typed ports use the first
// matching edge; extra edges are ignored, not rejected.
type Diagram struct {
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
	Output string `json:"output"`
}

// Node returns the node with the given id.
func (d Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HasNode reports whether a node with the given id exists.
func (d Diagram) HasNode(id string) bool {
	_, ok := d.Node(id)
	return ok
}

// Clone returns a deep copy of the node and edge slices. Param maps are
// copied shallowly; Values themselves are immutable by convention.
func (d Diagram) Clone() Diagram {
	out := Diagram{
		Nodes:  make([]Node, len(d.Nodes)),
		Edges:  make([]Edge, len(d.Edges)),
		Output: d.Output,
	}
	for i, n := range d.Nodes {
		cp := n
		if n.Params != nil {
			cp.Params = make(map[string]Value, len(n.Params))
			for k, v := range n.Params {
				cp.Params[k] = v
			}
		}
		out.Nodes[i] = cp
	}
	copy(out.Edges, d.Edges)
	return out
}

// EdgesInto returns the edges targeting the given node, in declaration
// order. Declaration order matters: list ports concatenate in this
// order and scalar ports take the first match.
func (d Diagram) EdgesInto(id string) []Edge {
	var in []Edge
	for _, e := range d.Edges {
		if e.To == id {
			in = append(in, e)
		}
	}
	return in
}

// Provenance records how a wiring came to exist: the composition
// operator and the metadata ids of its parents. Hand-authored and
// generated wirings have nil provenance.
type Provenance struct {
	Operator string   `json:"operator"`
	Parents  []string `json:"parents"`
}

// Meta is free-form identity for a wiring.
type Meta struct {
	ID         string      `json:"id"`
	Name       string      `json:"name,omitempty"`
	Provenance *Provenance `json:"provenance,omitempty"`
}

// Wiring couples identity metadata with a diagram. Wirings are
// immutable once constructed; composition produces new Wirings with
// fresh ids and namespaced nodes.
type Wiring struct {
	Meta    Meta    `json:"meta"`
	Diagram Diagram `json:"diagram"`
}

// New creates a hand-authored wiring with a fresh UUID identity.
func New(name string, d Diagram) *Wiring {
	return &Wiring{
		Meta:    Meta{ID: uuid.NewString(), Name: name},
		Diagram: d,
	}
}

// NewComposed creates a wiring produced by a composition operator,
// recording the operator and parent identities.
func NewComposed(name, operator string, parents []string, d Diagram) *Wiring {
	return &Wiring{
		Meta: Meta{
			ID:         uuid.NewString(),
			Name:       name,
			Provenance: &Provenance{Operator: operator, Parents: parents},
		},
		Diagram: d,
	}
}
