package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothedarktowercame/loom/internal/engine"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// densityWiring reads the window's mean generation density.
func densityWiring() *wiring.Wiring {
	return wiring.New("density", wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "d", Component: "window-density"},
		},
		Output: "d",
	})
}

func TestEvaluateRunTumblingWindows(t *testing.T) {
	ev := newEvaluator(t)

	// Four generations of two sigils each. Densities: 0, 0.5, 1, 0.
	history := []wiring.SigilList{
		{0x00, 0x00},
		{0xFF, 0x00},
		{0xFF, 0xFF},
		{0x00, 0x00},
	}

	series, err := ev.EvaluateRun(densityWiring().Diagram, history, engine.WindowParams{Size: 2})
	require.NoError(t, err)
	require.Len(t, series, 2, "tumbling windows of size 2 over 4 generations")

	assert.Equal(t, wiring.Scalar(0.25), series[0], "mean of 0 and 0.5")
	assert.Equal(t, wiring.Scalar(0.5), series[1], "mean of 1 and 0")
}

func TestEvaluateRunSlidingWindows(t *testing.T) {
	ev := newEvaluator(t)
	history := []wiring.SigilList{
		{0x00}, {0xFF}, {0x00},
	}

	series, err := ev.EvaluateRun(densityWiring().Diagram, history, engine.WindowParams{Size: 2, Step: 1})
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, wiring.Scalar(0.5), series[0])
	assert.Equal(t, wiring.Scalar(0.5), series[1])
}

func TestEvaluateRunSignalIsLastGeneration(t *testing.T) {
	ev := newEvaluator(t)
	w := wiring.New("signal", wiring.Diagram{
		Nodes:  []wiring.Node{{ID: "s", Component: "aux-signal"}},
		Output: "s",
	})

	history := []wiring.SigilList{
		{0x00}, {0xFF},
	}
	series, err := ev.EvaluateRun(w.Diagram, history, engine.WindowParams{Size: 2})
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, wiring.Scalar(1), series[0], "signal is the final generation's density")
}

func TestEvaluateRunBadWindow(t *testing.T) {
	ev := newEvaluator(t)
	_, err := ev.EvaluateRun(densityWiring().Diagram, nil, engine.WindowParams{Size: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
}

func TestEvaluateRunShortHistory(t *testing.T) {
	ev := newEvaluator(t)
	history := []wiring.SigilList{{0x01}}

	series, err := ev.EvaluateRun(densityWiring().Diagram, history, engine.WindowParams{Size: 5})
	require.NoError(t, err)
	assert.Empty(t, series, "history shorter than one window yields no points")
}
