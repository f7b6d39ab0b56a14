package wiring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWiringIDDeterministic(t *testing.T) {
	d := xorConstDiagram(3)

	id1, err := WiringID(d)
	require.NoError(t, err)
	id2, err := WiringID(d)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64, "sha-256 hex")
}

func TestWiringIDIgnoresMeta(t *testing.T) {
	// Two wirings with the same structure but different uuids and
	// names hash identically.
	a := New("first", xorConstDiagram(3))
	b := New("second", xorConstDiagram(3))

	assert.Equal(t, MustWiringID(a.Diagram), MustWiringID(b.Diagram))
}

func TestWiringIDSensitiveToStructure(t *testing.T) {
	base := MustWiringID(xorConstDiagram(3))

	assert.NotEqual(t, base, MustWiringID(xorConstDiagram(4)), "const change")

	d := xorConstDiagram(3)
	d.Nodes[1].Component = "bit-and"
	assert.NotEqual(t, base, MustWiringID(d), "component change")

	d = xorConstDiagram(3)
	d.Edges[0].ToPort = "b"
	assert.NotEqual(t, base, MustWiringID(d), "port change")
}

func TestWiringIDSensitiveToNodeIDs(t *testing.T) {
	// Node ids are part of the structure document; a relabel changes
	// the content id even though behavior is unchanged. Behavioral
	// identity is the signature package's concern.
	d := xorConstDiagram(3)
	renamed := RenameNodes(d, map[string]string{"x": "y"})
	assert.NotEqual(t, MustWiringID(d), MustWiringID(renamed))
}

func TestBreedingIDDeterministic(t *testing.T) {
	id1, err := BreedingID("serial", "aaa", "bbb", "ccc")
	require.NoError(t, err)
	id2, err := BreedingID("serial", "aaa", "bbb", "ccc")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	other, err := BreedingID("parallel", "aaa", "bbb", "ccc")
	require.NoError(t, err)
	assert.NotEqual(t, id1, other)
}

func TestDomainSeparation(t *testing.T) {
	// The same payload under different domains must not collide.
	a := hashWithDomain(DomainWiring, []byte("payload"))
	b := hashWithDomain(DomainBreeding, []byte("payload"))
	assert.NotEqual(t, a, b)
}
