package category

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/registry"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// TypeError is one port-type incompatibility on an edge.
type TypeError struct {
	Edge    int    `json:"edge"`
	Message string `json:"message"`
}

func (e TypeError) Error() string {
	return fmt.Sprintf("edge %d: %s", e.Edge, e.Message)
}

// TypeReport is the outcome of checking a concrete diagram's edges.
type TypeReport struct {
	Valid  bool        `json:"valid"`
	Errors []TypeError `json:"errors,omitempty"`
}

// ValidateDiagramTypes walks every edge and checks source-output
// against destination-input port types under the coercion table. All
// violations are reported; the check never short-circuits on the first
// failure, so one pass shows everything wrong with a diagram.
func ValidateDiagramTypes(reg *registry.Registry, d wiring.Diagram) TypeReport {
	report := TypeReport{Valid: true}

	for i, e := range d.Edges {
		toNode, ok := d.Node(e.To)
		if !ok {
			report.add(i, fmt.Sprintf("target node %q does not exist", e.To))
			continue
		}
		toDef, ok := reg.Lookup(toNode.Component)
		if !ok {
			report.add(i, fmt.Sprintf("target node %q has unknown component %q", e.To, toNode.Component))
			continue
		}

		toPort, ok := resolveInput(toDef, e.ToPort)
		if !ok {
			report.add(i, fmt.Sprintf("component %q has no input port %q", toNode.Component, e.ToPort))
			continue
		}

		var fromType wiring.PortType
		switch {
		case e.IsConst():
			if e.Const == nil {
				report.add(i, "constant edge has no value")
				continue
			}
			fromType = e.Const.Type()
		default:
			fromNode, ok := d.Node(e.From)
			if !ok {
				report.add(i, fmt.Sprintf("source node %q does not exist", e.From))
				continue
			}
			fromDef, ok := reg.Lookup(fromNode.Component)
			if !ok {
				report.add(i, fmt.Sprintf("source node %q has unknown component %q", e.From, fromNode.Component))
				continue
			}
			fromPort, ok := resolveOutput(fromDef, e.FromPort)
			if !ok {
				report.add(i, fmt.Sprintf("component %q has no output port %q", fromNode.Component, e.FromPort))
				continue
			}
			fromType = fromPort.Type
		}

		if !wiring.Coercible(fromType, toPort.Type) {
			report.add(i, fmt.Sprintf("%s is not coercible to %s (%s -> %s:%s)",
				fromType, toPort.Type, e.From, e.To, toPort.Name))
		}
	}

	return report
}

// resolveInput finds the destination port: the named port, or the
// first declared input when the edge omits one.
func resolveInput(def registry.Definition, name string) (registry.Port, bool) {
	if name == "" {
		return def.FirstInput()
	}
	return def.Input(name)
}

// resolveOutput finds the source port: the named port, or the first
// declared output when the edge omits one.
func resolveOutput(def registry.Definition, name string) (registry.Port, bool) {
	if name == "" {
		return def.FirstOutput()
	}
	return def.Output(name)
}

func (r *TypeReport) add(edge int, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, TypeError{Edge: edge, Message: message})
}
