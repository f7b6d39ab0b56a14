package wiringgen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothedarktowercame/loom/internal/engine"
	"github.com/tothedarktowercame/loom/internal/registry"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// ruleTable evaluates a wiring over the eight binary neighborhoods and
// reassembles the elementary rule number it encodes.
func ruleTable(t *testing.T, w *wiring.Wiring) uint8 {
	t.Helper()
	ev := engine.New(registry.MustLoad())

	var rule uint8
	for n := 0; n < 8; n++ {
		ctx := wiring.Context{
			Pred: wiring.Sigil((n >> 2) & 1),
			Self: wiring.Sigil((n >> 1) & 1),
			Succ: wiring.Sigil(n & 1),
		}
		res, err := ev.Evaluate(w.Diagram, ctx)
		require.NoError(t, err)
		s, ok := res.Output.(wiring.Sigil)
		require.True(t, ok)
		rule |= uint8(s&1) << uint(n)
	}
	return rule
}

func TestFromRuleTruthTables(t *testing.T) {
	for _, rule := range []uint8{0, 1, 30, 90, 110, 150, 184, 254, 255} {
		t.Run(fmt.Sprintf("rule-%d", rule), func(t *testing.T) {
			w := FromRule(rule)
			assert.Equal(t, fmt.Sprintf("rule-%d", rule), w.Meta.Name)
			assert.Equal(t, rule, ruleTable(t, w))
		})
	}
}

func TestFromRuleWellFormed(t *testing.T) {
	reg := registry.MustLoad()
	for rule := 0; rule <= 255; rule++ {
		errs := wiring.Validate(FromRule(uint8(rule)).Diagram, reg.Has)
		assert.Empty(t, errs, "rule %d", rule)
	}
}

func TestFromRuleDeterministic(t *testing.T) {
	a := FromRule(110)
	b := FromRule(110)
	assert.Equal(t, wiring.MustWiringID(a.Diagram), wiring.MustWiringID(b.Diagram))
}

func TestRule90IsPredXorSucc(t *testing.T) {
	// The construction is bitwise, so the xor identity holds on full
	// sigils, not just single bits.
	ev := engine.New(registry.MustLoad())
	w := FromRule(90)

	for _, tc := range []struct{ pred, succ wiring.Sigil }{
		{0x00, 0x00}, {0xFF, 0x00}, {0xA5, 0x5A}, {0x3C, 0x3C},
	} {
		res, err := ev.Evaluate(w.Diagram, wiring.Context{Pred: tc.pred, Succ: tc.succ})
		require.NoError(t, err)
		assert.Equal(t, tc.pred^tc.succ, res.Output, "%02x xor %02x", tc.pred, tc.succ)
	}
}

func TestFromHexagramTotality(t *testing.T) {
	reg := registry.MustLoad()
	ev := engine.New(reg)

	for n := 1; n <= 64; n++ {
		w, err := FromHexagram(n)
		require.NoError(t, err, "hexagram %d", n)
		assert.Empty(t, wiring.Validate(w.Diagram, reg.Has), "hexagram %d", n)

		_, err = ev.Evaluate(w.Diagram, wiring.Context{Pred: 3, Self: 5, Succ: 9})
		require.NoError(t, err, "hexagram %d", n)
	}
}

func TestFromHexagramOutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, 65, 100} {
		_, err := FromHexagram(n)
		require.Error(t, err, "%d", n)
		assert.Contains(t, err.Error(), "out of range")
	}
}

func TestFromHexagramDistinct(t *testing.T) {
	// Sanity: hexagram 1 and 64 differ structurally
	a, err := FromHexagram(1)
	require.NoError(t, err)
	b, err := FromHexagram(64)
	require.NoError(t, err)
	assert.NotEqual(t, wiring.MustWiringID(a.Diagram), wiring.MustWiringID(b.Diagram))
}

func TestFromHexagramNameCarriesTrigrams(t *testing.T) {
	w, err := FromHexagram(1)
	require.NoError(t, err)
	assert.Contains(t, w.Meta.Name, "hexagram-1-")
}

func TestLandmarks(t *testing.T) {
	lms := Landmarks()
	require.Len(t, lms, 5)
	for i, r := range LandmarkRules {
		assert.Equal(t, fmt.Sprintf("rule-%d", r), lms[i].Meta.Name)
	}
}

func TestLandmarkByName(t *testing.T) {
	w, err := LandmarkByName("rule-110")
	require.NoError(t, err)
	assert.Equal(t, "rule-110", w.Meta.Name)

	_, err = LandmarkByName("rule-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown landmark")
}
