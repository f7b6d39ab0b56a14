package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothedarktowercame/loom/internal/engine"
	"github.com/tothedarktowercame/loom/internal/registry"
	"github.com/tothedarktowercame/loom/internal/testutil"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

func newEvaluator(t *testing.T) *engine.Evaluator {
	t.Helper()
	reg, err := registry.Load()
	require.NoError(t, err)
	return engine.New(reg)
}

func TestXorWithZeroIsIdentity(t *testing.T) {
	ev := newEvaluator(t)
	w := testutil.XorConstWiring(0)

	// x xor 0 == x for every sigil
	for s := 0; s <= 255; s++ {
		res, err := ev.Evaluate(w.Diagram, wiring.Context{Self: wiring.Sigil(s)})
		require.NoError(t, err)
		assert.Equal(t, wiring.Sigil(s), res.Output, "sigil %d", s)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	ev := newEvaluator(t)
	w := testutil.MajorityWiring()
	ctx := wiring.Context{Pred: 0b0110, Self: 0b0101, Succ: 0b0011}

	first, err := ev.Evaluate(w.Diagram, ctx)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		res, err := ev.Evaluate(w.Diagram, ctx)
		require.NoError(t, err)
		assert.Equal(t, first.Output, res.Output)
	}
	assert.Equal(t, wiring.Sigil(0b0111), first.Output)
}

func TestMissingInputDefaults(t *testing.T) {
	ev := newEvaluator(t)
	// bit-xor with nothing wired to port b: b defaults to sigil 0
	w := wiring.New("half-wired", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "self", Component: "context-self"},
			{ID: "x", Component: "bit-xor"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []wiring.Edge{
			{From: "self", To: "x", ToPort: "a"},
			{From: "x", To: "out", ToPort: "in"},
		},
		Output: "out",
	})

	res, err := ev.Evaluate(w.Diagram, wiring.Context{Self: 42})
	require.NoError(t, err)
	assert.Equal(t, wiring.Sigil(42), res.Output)
}

func TestStructuralErrorsBeforeExecution(t *testing.T) {
	ev := newEvaluator(t)
	d := wiring.Diagram{
		Nodes:  []wiring.Node{{ID: "a", Component: "no-such-thing"}},
		Output: "missing",
	}

	_, err := ev.Evaluate(d, wiring.Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNKNOWN_COMPONENT")
	assert.Contains(t, err.Error(), "MISSING_OUTPUT")
}

func TestCycleFallsBackToDeclarationOrder(t *testing.T) {
	ev := newEvaluator(t)
	w := testutil.CyclicWiring()

	// p reads q before q has run, so q's contribution defaults to 0
	// on the first pass: p = self xor 0 = self.
	res, err := ev.Evaluate(w.Diagram, wiring.Context{Self: 9})
	require.NoError(t, err)
	assert.Equal(t, wiring.Sigil(9), res.Output)

	// Still deterministic across repeats.
	again, err := ev.Evaluate(w.Diagram, wiring.Context{Self: 9})
	require.NoError(t, err)
	assert.Equal(t, res.Output, again.Output)
}

func TestListPortConcatenatesInEdgeOrder(t *testing.T) {
	ev := newEvaluator(t)
	w := wiring.New("freq-of-window", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "pred", Component: "context-pred"},
			{ID: "self", Component: "context-self"},
			{ID: "succ", Component: "context-succ"},
			{ID: "fc", Component: "freq-count"},
			{ID: "fm", Component: "freq-mode"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []wiring.Edge{
			{From: "pred", To: "fc", ToPort: "xs"},
			{From: "self", To: "fc", ToPort: "xs"},
			{From: "succ", To: "fc", ToPort: "xs"},
			{From: "fc", FromPort: "freq", To: "fm", ToPort: "freq"},
			{From: "fm", To: "out", ToPort: "in"},
		},
		Output: "out",
	})

	res, err := ev.Evaluate(w.Diagram, wiring.Context{Pred: 7, Self: 7, Succ: 2})
	require.NoError(t, err)
	assert.Equal(t, wiring.Sigil(7), res.Output, "7 occurs twice")
}

func TestConstEdgeCarriesLiteral(t *testing.T) {
	ev := newEvaluator(t)
	w := testutil.XorConstWiring(0xFF)

	res, err := ev.Evaluate(w.Diagram, wiring.Context{Self: 0x0F})
	require.NoError(t, err)
	assert.Equal(t, wiring.Sigil(0xF0), res.Output)
}

func TestNodeOutputsExposed(t *testing.T) {
	ev := newEvaluator(t)
	w := testutil.NegateWiring()

	res, err := ev.Evaluate(w.Diagram, wiring.Context{Self: 0x0F})
	require.NoError(t, err)
	require.Contains(t, res.NodeOutputs, "not")
	assert.Equal(t, wiring.Sigil(0xF0), res.NodeOutputs["not"]["out"])
	assert.Equal(t, wiring.Sigil(0x0F), res.NodeOutputs["self"]["out"])
}

func TestEvaluateGolden(t *testing.T) {
	ev := newEvaluator(t)
	w := testutil.XorConstWiring(3)
	ctx := wiring.Context{Pred: 1, Self: 5, Succ: 2}

	res, err := ev.Evaluate(w.Diagram, ctx)
	require.NoError(t, err)

	testutil.AssertGolden(t, "xor-const-eval", &testutil.EvalSnapshot{
		Wiring:  w.Meta.Name,
		Context: ctx,
		Result:  res,
	})
}
