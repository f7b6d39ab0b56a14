package compose

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// SerialOption configures Serial.
type SerialOption func(*serialOptions)

type serialOptions struct {
	inputPort string
}

// WithInputPort selects which of B's context inputs A's output replaces.
// Default "self": B's context-self node is removed and every edge it fed
// is rewired to A's feed node.
func WithInputPort(port string) SerialOption {
	return func(o *serialOptions) {
		o.inputPort = port
	}
}

// Serial chains two wirings: A computes a value, and B consumes that
// value wherever it would have read its designated context input.
//
// Construction:
//  1. Namespace both parents with distinct prefixes.
//  2. Drop A's output node, remembering its feed node.
//  3. Remove B's designated input node (context-<port>).
//  4. Rewrite every B edge originating from the removed node so it
//     originates from A's feed node.
//  5. Union nodes and edges; the result's output is B's output, renamed.
func Serial(a, b *wiring.Wiring, opts ...SerialOption) (*wiring.Wiring, error) {
	o := serialOptions{inputPort: "self"}
	for _, opt := range opts {
		opt(&o)
	}

	da := wiring.Namespace(a.Diagram, prefixA)
	db := wiring.Namespace(b.Diagram, prefixB)

	da, aFeed := stripOutput(da)
	if aFeed == "" {
		return nil, fmt.Errorf("serial: first parent's output node has no feed")
	}

	inputComponent := "context-" + o.inputPort
	bInput := ""
	for _, n := range db.Nodes {
		if n.Component == inputComponent {
			bInput = n.ID
			break
		}
	}
	if bInput == "" {
		return nil, fmt.Errorf("serial: second parent has no %q input node", inputComponent)
	}

	// Rewire B's reads of the removed input to A's feed, then drop the
	// renamed node entry (the feed lives in A's half).
	db = wiring.RenameNodes(db, map[string]string{bInput: aFeed})
	db = dropNodeKeepEdges(db, aFeed)

	merged := wiring.Diagram{
		Nodes:  append(append([]wiring.Node{}, da.Nodes...), db.Nodes...),
		Edges:  append(append([]wiring.Edge{}, da.Edges...), db.Edges...),
		Output: db.Output,
	}

	name := fmt.Sprintf("serial(%s,%s)", a.Meta.Name, b.Meta.Name)
	return finish(name, OpSerial, a, b, merged)
}
