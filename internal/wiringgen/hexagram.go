package wiringgen

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

//go:embed hexagrams.yaml
var hexagramYAML []byte

// trigramEntry is one row of the embedded mapping table.
type trigramEntry struct {
	Name   string `yaml:"name"`
	Gate   string `yaml:"gate"`
	Invert bool   `yaml:"invert"`
}

var (
	trigramOnce  sync.Once
	trigramTable []trigramEntry
	trigramErr   error
)

// loadTrigrams parses the embedded table once. The table is
// configuration data; a malformed table is a build defect surfaced on
// first use.
func loadTrigrams() ([]trigramEntry, error) {
	trigramOnce.Do(func() {
		var doc struct {
			Trigrams []trigramEntry `yaml:"trigrams"`
		}
		if err := yaml.Unmarshal(hexagramYAML, &doc); err != nil {
			trigramErr = fmt.Errorf("parse hexagram table: %w", err)
			return
		}
		if len(doc.Trigrams) != 8 {
			trigramErr = fmt.Errorf("hexagram table has %d trigrams, want 8", len(doc.Trigrams))
			return
		}
		trigramTable = doc.Trigrams
	})
	return trigramTable, trigramErr
}

// FromHexagram translates a hexagram selector (1-64) into a wiring.
// The lower trigram gates pred with self; the upper trigram gates the
// intermediate result with succ.
func FromHexagram(n int) (*wiring.Wiring, error) {
	if n < 1 || n > 64 {
		return nil, fmt.Errorf("hexagram selector out of range: %d", n)
	}
	table, err := loadTrigrams()
	if err != nil {
		return nil, err
	}

	lower := table[(n-1)%8]
	upper := table[(n-1)/8]

	d := wiring.Diagram{
		Nodes: []wiring.Node{
			{ID: "pred", Component: "context-pred"},
			{ID: "self", Component: "context-self"},
			{ID: "succ", Component: "context-succ"},
			{ID: "g1", Component: lower.Gate},
		},
		Edges: []wiring.Edge{
			{From: "pred", To: "g1", ToPort: "a"},
			{From: "self", To: "g1", ToPort: "b"},
		},
		Output: "out",
	}

	lowerFeed := "g1"
	if lower.Invert {
		d.Nodes = append(d.Nodes, wiring.Node{ID: "g1-not", Component: "bit-not"})
		d.Edges = append(d.Edges, wiring.Edge{From: "g1", To: "g1-not", ToPort: "a"})
		lowerFeed = "g1-not"
	}

	d.Nodes = append(d.Nodes, wiring.Node{ID: "g2", Component: upper.Gate})
	d.Edges = append(d.Edges,
		wiring.Edge{From: lowerFeed, To: "g2", ToPort: "a"},
		wiring.Edge{From: "succ", To: "g2", ToPort: "b"},
	)

	upperFeed := "g2"
	if upper.Invert {
		d.Nodes = append(d.Nodes, wiring.Node{ID: "g2-not", Component: "bit-not"})
		d.Edges = append(d.Edges, wiring.Edge{From: "g2", To: "g2-not", ToPort: "a"})
		upperFeed = "g2-not"
	}

	d.Nodes = append(d.Nodes, wiring.Node{ID: "out", Component: "output-sigil"})
	d.Edges = append(d.Edges, wiring.Edge{From: upperFeed, To: "out", ToPort: "in"})

	name := fmt.Sprintf("hexagram-%d-%s-over-%s", n, upper.Name, lower.Name)
	return wiring.New(name, d), nil
}
