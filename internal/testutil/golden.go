package testutil

import (
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tothedarktowercame/loom/internal/engine"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// EvalSnapshot captures one evaluation for golden comparison. All
// fields use canonical JSON serialization so the snapshot bytes are
// deterministic across runs.
type EvalSnapshot struct {
	Wiring  string
	Context wiring.Context
	Result  *engine.Result
}

// toCanonicalMap converts the snapshot to plain maps that
// wiring.MarshalCanonical accepts.
func (s *EvalSnapshot) toCanonicalMap() map[string]any {
	nodes := make(map[string]any, len(s.Result.NodeOutputs))
	ids := make([]string, 0, len(s.Result.NodeOutputs))
	for id := range s.Result.NodeOutputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		ports := make(map[string]any, len(s.Result.NodeOutputs[id]))
		for port, v := range s.Result.NodeOutputs[id] {
			ports[port] = wiring.EncodeValue(v)
		}
		nodes[id] = ports
	}

	return map[string]any{
		"wiring": s.Wiring,
		"context": map[string]any{
			"pred": int64(s.Context.Pred),
			"self": int64(s.Context.Self),
			"succ": int64(s.Context.Succ),
		},
		"nodes":  nodes,
		"output": wiring.EncodeValue(s.Result.Output),
	}
}

// AssertGolden compares an evaluation snapshot against the golden file
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run the test with -update.
func AssertGolden(t *testing.T, name string, snapshot *EvalSnapshot) {
	t.Helper()

	data, err := wiring.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
