package wiring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xorConstDiagram(c Sigil) Diagram {
	return Diagram{
		Nodes: []Node{
			{ID: "self", Component: "context-self"},
			{ID: "x", Component: "bit-xor"},
			{ID: "out", Component: "output-sigil"},
		},
		Edges: []Edge{
			{From: "self", To: "x", ToPort: "a"},
			{Const: c, To: "x", ToPort: "b"},
			{From: "x", To: "out", ToPort: "in"},
		},
		Output: "out",
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	w := New("xor-three", xorConstDiagram(3))

	data, err := MarshalWiring(w)
	require.NoError(t, err)

	got, err := UnmarshalWiring(data)
	require.NoError(t, err)

	assert.Equal(t, w.Meta.ID, got.Meta.ID)
	assert.Equal(t, "xor-three", got.Meta.Name)
	assert.Equal(t, w.Diagram, got.Diagram)
}

func TestMarshalRoundTripProvenance(t *testing.T) {
	w := NewComposed("child", "serial", []string{"p1", "p2"}, xorConstDiagram(0))

	data, err := MarshalWiring(w)
	require.NoError(t, err)

	got, err := UnmarshalWiring(data)
	require.NoError(t, err)

	require.NotNil(t, got.Meta.Provenance)
	assert.Equal(t, "serial", got.Meta.Provenance.Operator)
	assert.Equal(t, []string{"p1", "p2"}, got.Meta.Provenance.Parents)
}

func TestDecodeValueConstPosition(t *testing.T) {
	// Small integers in const position are sigils
	v, err := DecodeValue(json.RawMessage("7"), true)
	require.NoError(t, err)
	assert.Equal(t, Sigil(7), v)

	// Out of sigil range falls back to Int
	v, err = DecodeValue(json.RawMessage("300"), true)
	require.NoError(t, err)
	assert.Equal(t, Int(300), v)
}

func TestDecodeValueParamPosition(t *testing.T) {
	v, err := DecodeValue(json.RawMessage("7"), false)
	require.NoError(t, err)
	assert.Equal(t, Int(7), v)

	v, err = DecodeValue(json.RawMessage("0.5"), false)
	require.NoError(t, err)
	assert.Equal(t, Scalar(0.5), v)

	v, err = DecodeValue(json.RawMessage("true"), false)
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = DecodeValue(json.RawMessage(`"10100101"`), false)
	require.NoError(t, err)
	assert.Equal(t, Bits("10100101"), v)

	_, err = DecodeValue(json.RawMessage(`"hello"`), false)
	assert.Error(t, err)
}

func TestDecodeValueLists(t *testing.T) {
	v, err := DecodeValue(json.RawMessage("[1, 2, 3]"), false)
	require.NoError(t, err)
	assert.Equal(t, SigilList{1, 2, 3}, v)

	v, err = DecodeValue(json.RawMessage("[0.5, 1.5]"), false)
	require.NoError(t, err)
	assert.Equal(t, ScalarList{0.5, 1.5}, v)

	v, err = DecodeValue(json.RawMessage("[true, false]"), false)
	require.NoError(t, err)
	assert.Equal(t, BoolList{true, false}, v)
}

func TestUnmarshalBadDocuments(t *testing.T) {
	_, err := UnmarshalWiring([]byte("{not json"))
	assert.Error(t, err)

	// Bad const surfaces the edge index
	doc := `{"meta":{"id":"i","name":"n"},"diagram":{
		"nodes":[{"id":"a","component":"context-self"}],
		"edges":[{"const":"junk","to":"a","to-port":"x"}],
		"output":"a"}}`
	_, err = UnmarshalWiring([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edge 0")
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a := New("a", xorConstDiagram(0))
	b := New("b", xorConstDiagram(0))
	assert.NotEmpty(t, a.Meta.ID)
	assert.NotEqual(t, a.Meta.ID, b.Meta.ID)
}
