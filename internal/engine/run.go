package engine

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// WindowParams bounds the sliding window for run-level evaluation.
type WindowParams struct {
	// Size is the number of generations per window. Must be >= 1.
	Size int
	// Step is the window stride. Zero defaults to Size (tumbling).
	Step int
}

// EvaluateRun evaluates a diagram once per window position over a run
// history, feeding windowed aggregate features through Context.Aux
// instead of per-cell neighborhoods. The scoring subsystem consumes the
// resulting series.
//
// Aux signals set per window:
//
//	"density"      ScalarList - per-generation fraction of set bits
//	"signal"       Scalar     - density of the window's last generation
//	"freq"         Freq       - sigil counts over the whole window
//	"window-index" Int        - zero-based window position
func (e *Evaluator) EvaluateRun(d wiring.Diagram, history []wiring.SigilList, win WindowParams) ([]wiring.Value, error) {
	if win.Size < 1 {
		return nil, fmt.Errorf("window size must be >= 1, got %d", win.Size)
	}
	step := win.Step
	if step < 1 {
		step = win.Size
	}

	var series []wiring.Value
	index := 0
	for start := 0; start+win.Size <= len(history); start += step {
		window := history[start : start+win.Size]

		density := make(wiring.ScalarList, len(window))
		freq := wiring.Freq{}
		for i, gen := range window {
			density[i] = generationDensity(gen)
			for _, s := range gen {
				freq[s]++
			}
		}

		ctx := wiring.Context{Aux: map[string]wiring.Value{
			"density":      density,
			"signal":       wiring.Scalar(density[len(density)-1]),
			"freq":         freq,
			"window-index": wiring.Int(index),
		}}

		res, err := e.Evaluate(d, ctx)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", index, err)
		}
		series = append(series, res.Output)
		index++
	}

	return series, nil
}

// generationDensity is the fraction of set bits across one generation.
func generationDensity(gen wiring.SigilList) float64 {
	if len(gen) == 0 {
		return 0
	}
	ones := 0
	for _, s := range gen {
		for i := 0; i < 8; i++ {
			if s.Bit(i) {
				ones++
			}
		}
	}
	return float64(ones) / float64(len(gen)*8)
}
