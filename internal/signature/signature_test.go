package signature

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothedarktowercame/loom/internal/testutil"
	"github.com/tothedarktowercame/loom/internal/wiring"
	"github.com/tothedarktowercame/loom/internal/wiringgen"
)

func TestComputeSimplePaths(t *testing.T) {
	sig := Compute(testutil.NegateWiring())

	assert.Equal(t, []string{
		"context-self>bit-not:a>output-sigil:in",
	}, sig.Strings())
}

func TestComputeMultipleSources(t *testing.T) {
	sig := Compute(testutil.MajorityWiring())

	// One path per context reader, all funneling through majority
	assert.Equal(t, []string{
		"context-pred>majority:xs>output-sigil:in",
		"context-self>majority:xs>output-sigil:in",
		"context-succ>majority:xs>output-sigil:in",
	}, sig.Strings())
}

func TestSignatureInvariantUnderRelabeling(t *testing.T) {
	w := testutil.MajorityWiring()
	renamed := &wiring.Wiring{
		Meta:    w.Meta,
		Diagram: wiring.RenameNodes(w.Diagram, map[string]string{"maj": "vote", "out": "sink"}),
	}
	renamed.Diagram.Output = "sink"

	assert.Equal(t, Compute(w).Strings(), Compute(renamed).Strings())
	assert.Equal(t, 1.0, SimilarityOf(w, renamed))
}

func TestSimilarityBounds(t *testing.T) {
	wirings := []*wiring.Wiring{
		testutil.IdentityWiring(),
		testutil.NegateWiring(),
		testutil.MajorityWiring(),
		wiringgen.FromRule(90),
		wiringgen.FromRule(110),
	}

	for _, a := range wirings {
		for _, b := range wirings {
			s := SimilarityOf(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
			assert.Equal(t, s, SimilarityOf(b, a), "symmetric")
		}
		assert.Equal(t, 1.0, SimilarityOf(a, a), "self-similarity")
	}
}

func TestSimilarityEmptyBothIsOne(t *testing.T) {
	assert.Equal(t, 1.0, Similarity(Signature{}, Signature{}))
	assert.Equal(t, 0.0, Similarity(Signature{"p": {}}, Signature{}))
}

func TestSimilarityDisjoint(t *testing.T) {
	assert.Equal(t, 0.0, SimilarityOf(testutil.IdentityWiring(), testutil.NegateWiring()))
}

func TestLandmarkVector(t *testing.T) {
	landmarks := wiringgen.Landmarks()

	vec, err := LandmarkVector(wiringgen.FromRule(90), landmarks)
	require.NoError(t, err)
	require.Len(t, vec, len(landmarks))

	// Rule 90 is its own landmark
	assert.Equal(t, 1.0, vec[1])
	for _, v := range vec {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}

	// Additive rules 90 and 150 share more structure than 90 and 184
	vec150, err := LandmarkVector(wiringgen.FromRule(150), landmarks)
	require.NoError(t, err)
	assert.Greater(t, vec150[1], 0.0, "150 overlaps the 90 landmark")
}

func TestLandmarkVectorEmptySet(t *testing.T) {
	_, err := LandmarkVector(testutil.IdentityWiring(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLandmarkVectorDeterministic(t *testing.T) {
	landmarks := wiringgen.Landmarks()
	w := wiringgen.FromRule(110)

	v1, err := LandmarkVector(w, landmarks)
	require.NoError(t, err)
	v2, err := LandmarkVector(w, landmarks)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestSignatureGolden(t *testing.T) {
	sig := Compute(testutil.MajorityWiring())

	paths := make([]any, 0, len(sig))
	for _, p := range sig.Strings() {
		paths = append(paths, p)
	}
	data, err := wiring.MarshalCanonical(paths)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "majority-signature", data)
}
