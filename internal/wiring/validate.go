package wiring

import "fmt"

// StructuralErrorCode categorizes definition errors.
type StructuralErrorCode string

const (
	// ErrCodeDuplicateNode indicates two nodes share an id.
	ErrCodeDuplicateNode StructuralErrorCode = "DUPLICATE_NODE"

	// ErrCodeDanglingEdge indicates an edge endpoint references a node
	// not present in the diagram.
	ErrCodeDanglingEdge StructuralErrorCode = "DANGLING_EDGE"

	// ErrCodeMissingOutput indicates the designated output node does
	// not exist (or no output is designated at all).
	ErrCodeMissingOutput StructuralErrorCode = "MISSING_OUTPUT"

	// ErrCodeUnknownComponent indicates a node references a primitive
	// id absent from the registry.
	ErrCodeUnknownComponent StructuralErrorCode = "UNKNOWN_COMPONENT"

	// ErrCodeNilConst indicates a constant edge with no value.
	ErrCodeNilConst StructuralErrorCode = "NIL_CONST"
)

// StructuralError identifies one definition error: a malformed node or
// edge, always with the offending identifier attached. Definition
// errors are surfaced to the caller and never silently patched.
type StructuralError struct {
	Code    StructuralErrorCode
	NodeID  string // offending node, when applicable
	Edge    int    // offending edge index, -1 when not edge-related
	Message string
}

func (e StructuralError) Error() string {
	if e.Edge >= 0 {
		return fmt.Sprintf("%s: %s (edge=%d)", e.Code, e.Message, e.Edge)
	}
	if e.NodeID != "" {
		return fmt.Sprintf("%s: %s (node=%s)", e.Code, e.Message, e.NodeID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validate checks structural well-formedness and returns every
// violation found (never short-circuits). known, when non-nil, reports
// whether a component id exists in the registry; passing nil skips the
// component check so the wiring package stays registry-independent.
//
// Acyclicity is deliberately NOT checked here: the evaluator degrades
// to declaration order on non-orderable residue, so a cyclic diagram
// is runnable for diagnostics even though it is almost certainly a
// construction bug upstream.
func Validate(d Diagram, known func(component string) bool) []StructuralError {
	var errs []StructuralError

	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if seen[n.ID] {
			errs = append(errs, StructuralError{
				Code:    ErrCodeDuplicateNode,
				NodeID:  n.ID,
				Edge:    -1,
				Message: fmt.Sprintf("duplicate node id %q", n.ID),
			})
		}
		seen[n.ID] = true

		if known != nil && !known(n.Component) {
			errs = append(errs, StructuralError{
				Code:    ErrCodeUnknownComponent,
				NodeID:  n.ID,
				Edge:    -1,
				Message: fmt.Sprintf("node %q references unknown component %q", n.ID, n.Component),
			})
		}
	}

	for i, e := range d.Edges {
		if !seen[e.To] {
			errs = append(errs, StructuralError{
				Code:    ErrCodeDanglingEdge,
				Edge:    i,
				Message: fmt.Sprintf("edge targets missing node %q", e.To),
			})
		}
		if e.IsConst() {
			if e.Const == nil {
				errs = append(errs, StructuralError{
					Code:    ErrCodeNilConst,
					Edge:    i,
					Message: "constant edge has no value",
				})
			}
		} else if !seen[e.From] {
			errs = append(errs, StructuralError{
				Code:    ErrCodeDanglingEdge,
				Edge:    i,
				Message: fmt.Sprintf("edge originates from missing node %q", e.From),
			})
		}
	}

	if d.Output == "" {
		errs = append(errs, StructuralError{
			Code:    ErrCodeMissingOutput,
			Edge:    -1,
			Message: "diagram designates no output node",
		})
	} else if !seen[d.Output] {
		errs = append(errs, StructuralError{
			Code:    ErrCodeMissingOutput,
			NodeID:  d.Output,
			Edge:    -1,
			Message: fmt.Sprintf("output node %q does not exist", d.Output),
		})
	}

	return errs
}

// ValidateStrict is Validate collapsed into a single error for callers
// that only need pass/fail. The error message lists every violation.
func ValidateStrict(d Diagram, known func(component string) bool) error {
	errs := Validate(d, known)
	if len(errs) == 0 {
		return nil
	}
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return fmt.Errorf("diagram validation failed: %s", msg)
}
