package registry

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

//go:embed registry.cue
var signatureCUE string

// signature is the data half of a primitive definition.
type signature struct {
	Inputs  []Port
	Outputs []Port
}

// loadSignatures compiles the embedded CUE document and extracts the
// per-component port lists, preserving declaration order.
func loadSignatures() (map[string]signature, []string, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(signatureCUE)
	if err := v.Err(); err != nil {
		return nil, nil, fmt.Errorf("compile registry.cue: %w", err)
	}

	components := v.LookupPath(cue.ParsePath("component"))
	if !components.Exists() {
		return nil, nil, fmt.Errorf("registry.cue: missing top-level \"component\" struct")
	}

	iter, err := components.Fields()
	if err != nil {
		return nil, nil, fmt.Errorf("registry.cue: iterate components: %w", err)
	}

	sigs := make(map[string]signature)
	var order []string
	for iter.Next() {
		id := iter.Label()
		body := iter.Value()

		inputs, err := parsePorts(body.LookupPath(cue.ParsePath("inputs")), id, "inputs")
		if err != nil {
			return nil, nil, err
		}
		outputs, err := parsePorts(body.LookupPath(cue.ParsePath("outputs")), id, "outputs")
		if err != nil {
			return nil, nil, err
		}

		sigs[id] = signature{Inputs: inputs, Outputs: outputs}
		order = append(order, id)
	}

	return sigs, order, nil
}

// parsePorts reads an ordered list of [name, type] pairs.
func parsePorts(v cue.Value, component, field string) ([]Port, error) {
	if !v.Exists() {
		return nil, fmt.Errorf("component %q: missing %s", component, field)
	}
	iter, err := v.List()
	if err != nil {
		return nil, fmt.Errorf("component %q: %s must be a list: %w", component, field, err)
	}

	var ports []Port
	for iter.Next() {
		pair, err := iter.Value().List()
		if err != nil {
			return nil, fmt.Errorf("component %q: %s entry must be a [name, type] pair: %w", component, field, err)
		}
		var elems []string
		for pair.Next() {
			s, err := pair.Value().String()
			if err != nil {
				return nil, fmt.Errorf("component %q: %s entry element: %w", component, field, err)
			}
			elems = append(elems, s)
		}
		if len(elems) != 2 {
			return nil, fmt.Errorf("component %q: %s entry has %d elements, want 2", component, field, len(elems))
		}
		ports = append(ports, Port{Name: elems[0], Type: wiring.PortType(elems[1])})
	}
	return ports, nil
}
