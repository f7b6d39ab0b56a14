package wiring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalSortedKeys(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"zebra": int64(1),
		"apple": int64(2),
		"mango": int64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"mango":3,"zebra":1}`, string(b))
}

func TestCanonicalNoHTMLEscaping(t *testing.T) {
	b, err := MarshalCanonical("<a> & <b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a> & <b>"`, string(b))
}

func TestCanonicalNFCNormalization(t *testing.T) {
	// e + combining acute normalizes to precomposed e-acute
	decomposed := "é"
	precomposed := "é"

	b1, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b2, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b2), string(b1))
}

func TestCanonicalUTF16KeyOrder(t *testing.T) {
	// U+10000 encodes as a surrogate pair starting at 0xD800, which
	// sorts before U+FF61 in UTF-16 code units. UTF-8 byte order puts
	// them the other way around.
	b, err := MarshalCanonical(map[string]any{
		"\U00010000": int64(1),
		"｡":     int64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":1,\"｡\":2}", string(b))
}

func TestCanonicalFloats(t *testing.T) {
	b, err := MarshalCanonical(0.5)
	require.NoError(t, err)
	assert.Equal(t, "0.5", string(b))

	// Shortest round-trip formatting is stable
	b1, err := MarshalCanonical(0.1)
	require.NoError(t, err)
	b2, err := MarshalCanonical(0.1)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestCanonicalNullForbidden(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical([]any{int64(1), nil})
	assert.Error(t, err)
}

func TestCanonicalNested(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"edges": []any{
			map[string]any{"to": "x", "from": "self"},
		},
		"output": "out",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"edges":[{"from":"self","to":"x"}],"output":"out"}`, string(b))
}

func TestCanonicalLineSeparatorsLiteral(t *testing.T) {
	b, err := MarshalCanonical("a b c")
	require.NoError(t, err)
	assert.Equal(t, "\"a b c\"", string(b))
}
