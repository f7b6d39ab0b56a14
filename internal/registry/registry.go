package registry

import (
	"fmt"
	"sort"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// Port is a named, typed input or output slot on a primitive.
type Port struct {
	Name string
	Type wiring.PortType
}

// ImplFunc is a primitive implementation: a pure function of the
// assembled inputs, the node's static params, and the ambient per-cell
// context. Implementations never touch shared mutable storage; hidden
// state flows through explicit State values.
type ImplFunc func(in map[string]wiring.Value, params map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error)

// Definition is one primitive: identifier, ordered ports, implementation.
type Definition struct {
	ID      string
	Inputs  []Port
	Outputs []Port
	Impl    ImplFunc
}

// FirstInput returns the first declared input port.
func (d Definition) FirstInput() (Port, bool) {
	if len(d.Inputs) == 0 {
		return Port{}, false
	}
	return d.Inputs[0], true
}

// FirstOutput returns the first declared output port.
func (d Definition) FirstOutput() (Port, bool) {
	if len(d.Outputs) == 0 {
		return Port{}, false
	}
	return d.Outputs[0], true
}

// Input returns the declared input port by name.
func (d Definition) Input(name string) (Port, bool) {
	for _, p := range d.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Output returns the declared output port by name.
func (d Definition) Output(name string) (Port, bool) {
	for _, p := range d.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Registry is the immutable primitive table. Construct with Load.
type Registry struct {
	defs  map[string]Definition
	order []string // declaration order from the signature document
}

// Load builds the registry: the builtin dispatch table cross-checked
// against the embedded CUE signature document. Any disagreement
// (missing identifier, extra identifier, mismatched ports, invalid
// port type) fails construction with every violation listed.
func Load() (*Registry, error) {
	sigs, order, err := loadSignatures()
	if err != nil {
		return nil, fmt.Errorf("load signature document: %w", err)
	}

	impls := builtinImpls()

	var problems []string
	for _, id := range order {
		if _, ok := impls[id]; !ok {
			problems = append(problems, fmt.Sprintf("component %q declared but not implemented", id))
		}
	}
	implIDs := make([]string, 0, len(impls))
	for id := range impls {
		implIDs = append(implIDs, id)
	}
	sort.Strings(implIDs)
	for _, id := range implIDs {
		if _, ok := sigs[id]; !ok {
			problems = append(problems, fmt.Sprintf("component %q implemented but not declared", id))
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("registry signature mismatch: %v", problems)
	}

	defs := make(map[string]Definition, len(sigs))
	for _, id := range order {
		sig := sigs[id]
		for _, p := range append(append([]Port{}, sig.Inputs...), sig.Outputs...) {
			if !p.Type.Valid() {
				return nil, fmt.Errorf("component %q port %q: invalid type %q", id, p.Name, p.Type)
			}
		}
		defs[id] = Definition{
			ID:      id,
			Inputs:  sig.Inputs,
			Outputs: sig.Outputs,
			Impl:    impls[id],
		}
	}

	return &Registry{defs: defs, order: order}, nil
}

// MustLoad is Load but panics on error. The builtin registry is
// statically consistent, so a panic here means the binary is broken.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the definition for a primitive identifier.
func (r *Registry) Lookup(id string) (Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Has reports whether the identifier is registered. Shaped for
// wiring.Validate's component checker.
func (r *Registry) Has(id string) bool {
	_, ok := r.defs[id]
	return ok
}

// IDs returns all primitive identifiers in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered primitives.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Execute invokes a primitive. Unknown identifiers are a hard error;
// the evaluator attaches the offending node id when wrapping it.
func (r *Registry) Execute(id string, in map[string]wiring.Value, params map[string]wiring.Value, ctx wiring.Context) (map[string]wiring.Value, error) {
	def, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("unknown primitive %q", id)
	}
	out, err := def.Impl(in, params, ctx)
	if err != nil {
		return nil, fmt.Errorf("execute %q: %w", id, err)
	}
	if out == nil {
		out = map[string]wiring.Value{}
	}
	return out, nil
}
