package wiringgen

import (
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// LandmarkRules are the reference elementary rules used as a fixed
// basis for landmark similarity vectors. The set spans the Wolfram
// classes: 30 chaotic, 90 additive, 110 universal, 150 additive
// three-input, 184 traffic.
var LandmarkRules = []uint8{30, 90, 110, 150, 184}

// Landmarks builds the landmark wirings in their fixed order.
func Landmarks() []*wiring.Wiring {
	out := make([]*wiring.Wiring, len(LandmarkRules))
	for i, r := range LandmarkRules {
		out[i] = FromRule(r)
	}
	return out
}

// LandmarkByName resolves a wiring name of the form "rule-N" to the
// corresponding landmark.
func LandmarkByName(name string) (*wiring.Wiring, error) {
	for _, r := range LandmarkRules {
		if fmt.Sprintf("rule-%d", r) == name {
			return FromRule(r), nil
		}
	}
	return nil, fmt.Errorf("unknown landmark %q", name)
}
