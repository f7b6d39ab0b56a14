package signature

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// LandmarkVector projects a wiring onto a fixed reference set: the
// ordered tuple of Jaccard similarities against each landmark diagram.
// The result is a fixed-length coordinate embedding for clustering and
// visualization by external collaborators.
//
// An empty landmark set is a configuration error, not an empty vector:
// the reference set is supposed to be the five canonical elementary
// rule diagrams, and silently projecting onto nothing hides a broken
// deployment.
func LandmarkVector(w *wiring.Wiring, landmarks []*wiring.Wiring) ([]float64, error) {
	if len(landmarks) == 0 {
		return nil, fmt.Errorf("landmark reference set is empty")
	}
	sig := Compute(w)
	vec := make([]float64, len(landmarks))
	for i, lm := range landmarks {
		vec[i] = Similarity(sig, Compute(lm))
	}
	return vec, nil
}
