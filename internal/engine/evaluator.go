package engine

import (
	"fmt"
	"log/slog"

	"github.com/tothedarktowercame/loom/internal/registry"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// Result is the outcome of one diagram evaluation: the diagram's output
// value plus every node's outputs map, keyed by node id. NodeOutputs is
// exposed for tracing and tests; production callers usually only read
// Output.
type Result struct {
	Output      wiring.Value
	NodeOutputs map[string]map[string]wiring.Value
}

// Evaluator schedules and executes diagrams against a registry. It is
// stateless between calls and safe for concurrent use.
type Evaluator struct {
	reg *registry.Registry
}

// New creates an Evaluator backed by the given registry.
func New(reg *registry.Registry) *Evaluator {
	return &Evaluator{reg: reg}
}

// Evaluate runs the diagram once against the given per-cell context.
//
// Structural problems (dangling edges, missing output node, unknown
// components) surface as errors before any node executes - they are
// definition errors, not runtime ones. After that point evaluation is
// total: input gaps substitute per-type defaults and never raise.
func (e *Evaluator) Evaluate(d wiring.Diagram, ctx wiring.Context) (*Result, error) {
	if err := wiring.ValidateStrict(d, e.reg.Has); err != nil {
		return nil, err
	}

	order := evalOrder(d)
	nodeOutputs := make(map[string]map[string]wiring.Value, len(d.Nodes))

	for _, node := range order {
		def, ok := e.reg.Lookup(node.Component)
		if !ok {
			// Unreachable after validation, but the contract is explicit:
			// unknown primitives are a hard error carrying the node id.
			return nil, fmt.Errorf("node %q: unknown primitive %q", node.ID, node.Component)
		}

		inputs := e.assembleInputs(d, node, def, nodeOutputs)
		outputs, err := e.reg.Execute(node.Component, inputs, node.Params, ctx)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", node.ID, err)
		}
		nodeOutputs[node.ID] = outputs
	}

	return &Result{
		Output:      extractOutput(d, e.reg, nodeOutputs),
		NodeOutputs: nodeOutputs,
	}, nil
}

// evalOrder computes the node execution order: Kahn in-degree reduction
// seeded in declaration order, FIFO queue. Constant edges carry no
// ordering constraint. Non-orderable residue (a cycle) is appended in
// declaration order.
func evalOrder(d wiring.Diagram) []wiring.Node {
	inDegree := make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		inDegree[n.ID] = 0
	}
	adj := make(map[string][]string)
	for _, e := range d.Edges {
		if e.IsConst() {
			continue
		}
		if _, ok := inDegree[e.To]; ok {
			inDegree[e.To]++
		}
		adj[e.From] = append(adj[e.From], e.To)
	}

	byID := make(map[string]wiring.Node, len(d.Nodes))
	for _, n := range d.Nodes {
		byID[n.ID] = n
	}

	var queue []string
	for _, n := range d.Nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]wiring.Node, 0, len(d.Nodes))
	placed := make(map[string]bool, len(d.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if placed[id] {
			continue
		}
		placed[id] = true
		order = append(order, byID[id])
		for _, next := range adj[id] {
			if _, ok := inDegree[next]; !ok {
				continue
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) < len(d.Nodes) {
		// Residual cycle. Degrade to declaration order for the rest.
		slog.Debug("diagram not fully orderable, falling back to declaration order",
			"ordered", len(order),
			"total", len(d.Nodes),
		)
		for _, n := range d.Nodes {
			if !placed[n.ID] {
				order = append(order, n)
			}
		}
	}

	return order
}

// assembleInputs gathers one value per declared input port. List ports
// flatten and concatenate every contributing edge in edge order; scalar
// ports take the first contributing edge; absent ports default.
func (e *Evaluator) assembleInputs(d wiring.Diagram, node wiring.Node, def registry.Definition, nodeOutputs map[string]map[string]wiring.Value) map[string]wiring.Value {
	incoming := d.EdgesInto(node.ID)
	inputs := make(map[string]wiring.Value, len(def.Inputs))

	for portIdx, port := range def.Inputs {
		var gathered []wiring.Value
		for _, edge := range incoming {
			if !edgeTargetsPort(edge, port.Name, portIdx == 0) {
				continue
			}
			if v := e.edgeValue(edge, nodeOutputs); v != nil {
				gathered = append(gathered, v)
			}
		}

		if port.Type.IsList() {
			inputs[port.Name] = concatList(port.Type, gathered)
			continue
		}
		if len(gathered) > 0 {
			inputs[port.Name] = gathered[0]
			continue
		}
		inputs[port.Name] = wiring.Default(port.Type)
	}

	return inputs
}

// edgeTargetsPort reports whether the edge feeds the named port. An
// edge with no to-port defaults to the node's first declared input.
func edgeTargetsPort(e wiring.Edge, port string, isFirst bool) bool {
	if e.ToPort == "" {
		return isFirst
	}
	return e.ToPort == port
}

// edgeValue resolves an edge's contributed value: the literal for a
// constant edge, otherwise the source node's output at the edge's
// from-port (default first declared output, then "out").
func (e *Evaluator) edgeValue(edge wiring.Edge, nodeOutputs map[string]map[string]wiring.Value) wiring.Value {
	if edge.IsConst() {
		return edge.Const
	}
	outputs, ok := nodeOutputs[edge.From]
	if !ok {
		// Source not yet evaluated: only possible inside a residual
		// cycle, where the declaration-order fallback runs the source
		// later. The gap defaults like any other missing input.
		return nil
	}
	if edge.FromPort != "" {
		return outputs[edge.FromPort]
	}
	if v, ok := outputs["out"]; ok {
		return v
	}
	// Single-output primitives without a conventional "out" name.
	if len(outputs) == 1 {
		for _, v := range outputs {
			return v
		}
	}
	return nil
}

// concatList flattens gathered values into one list value, preserving
// edge order. Scalar contributions wrap as single elements.
func concatList(t wiring.PortType, gathered []wiring.Value) wiring.Value {
	switch t {
	case wiring.TypeSigilList:
		out := wiring.SigilList{}
		for _, v := range gathered {
			switch val := v.(type) {
			case wiring.SigilList:
				out = append(out, val...)
			case wiring.Sigil:
				out = append(out, val)
			}
		}
		return out
	case wiring.TypeScalarList:
		out := wiring.ScalarList{}
		for _, v := range gathered {
			switch val := v.(type) {
			case wiring.ScalarList:
				out = append(out, val...)
			case wiring.Scalar:
				out = append(out, float64(val))
			case wiring.Int:
				out = append(out, float64(val))
			}
		}
		return out
	case wiring.TypeBoolList:
		out := wiring.BoolList{}
		for _, v := range gathered {
			switch val := v.(type) {
			case wiring.BoolList:
				out = append(out, val...)
			case wiring.Bool:
				out = append(out, bool(val))
			}
		}
		return out
	default:
		return wiring.Default(t)
	}
}

// extractOutput reads the diagram result from the output node: its
// first declared output port, else the conventional "out" port, else
// the sigil default.
func extractOutput(d wiring.Diagram, reg *registry.Registry, nodeOutputs map[string]map[string]wiring.Value) wiring.Value {
	outputs := nodeOutputs[d.Output]
	if outputs == nil {
		return wiring.Default(wiring.TypeSigil)
	}
	if node, ok := d.Node(d.Output); ok {
		if def, ok := reg.Lookup(node.Component); ok {
			if port, ok := def.FirstOutput(); ok {
				if v, ok := outputs[port.Name]; ok {
					return v
				}
			}
		}
	}
	if v, ok := outputs["out"]; ok {
		return v
	}
	return wiring.Default(wiring.TypeSigil)
}
