package virtue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/virtue"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func TestNewSet_SkipsDuplicatesAndOverflow(t *testing.T) {
	kinds := virtue.Kinds()
	s := virtue.NewSet(append([]virtue.Kind{virtue.Harmony, virtue.Harmony, virtue.None}, kinds...)...)
	assert.Len(t, s.Kinds(), virtue.Slots)
	assert.Equal(t, virtue.Harmony, s.Kinds()[0])
}

func TestChange_UntrackedIsNoop(t *testing.T) {
	s := virtue.NewSet(virtue.Harmony)
	assert.False(t, s.Change(virtue.Valour, 10, fixedSrc{0}))
	assert.Equal(t, 0, s.Value(virtue.Valour))
}

func TestChange_BelowThresholdAlwaysApplies(t *testing.T) {
	s := virtue.NewSet(virtue.Nature)
	require.True(t, s.Change(virtue.Nature, 30, fixedSrc{0}))
	assert.Equal(t, 30, s.Value(virtue.Nature))
	s.Change(virtue.Nature, -70, fixedSrc{0})
	assert.Equal(t, -40, s.Value(virtue.Nature))
}

func TestChange_BlockedPinsAtThreshold(t *testing.T) {
	s := virtue.NewSet(virtue.Honour)
	s.Set(virtue.Honour, 45)
	// OneIn(2) true on a zero draw.
	s.Change(virtue.Honour, 10, fixedSrc{0})
	assert.Equal(t, 50, s.Value(virtue.Honour))

	s.Set(virtue.Honour, 45)
	s.Change(virtue.Honour, 10, fixedSrc{1})
	assert.Equal(t, 55, s.Value(virtue.Honour))
}

func TestChange_NegativeMirrors(t *testing.T) {
	s := virtue.NewSet(virtue.Faith)
	s.Set(virtue.Faith, -95)
	s.Change(virtue.Faith, -10, fixedSrc{0})
	// -105 passes -50 first; the first block pins at min(-95, -50).
	assert.Equal(t, -95, s.Value(virtue.Faith))

	s.Change(virtue.Faith, -100, fixedSrc{1})
	assert.Equal(t, virtue.Min, s.Value(virtue.Faith))
}

func TestChange_ThresholdBlockRateIsHalf(t *testing.T) {
	src := dice.NewSeededSource(7)
	const trials = 10000
	blocked := 0
	for i := 0; i < trials; i++ {
		s := virtue.NewSet(virtue.Justice)
		s.Set(virtue.Justice, 45)
		s.Change(virtue.Justice, 10, src)
		if s.Value(virtue.Justice) == 50 {
			blocked++
		}
	}
	rate := float64(blocked) / trials
	assert.InDelta(t, 0.5, rate, 0.03)
}

// Crossing all three thresholds at once gives each a 50% chance to pin the
// value, so 45+60 lands on 50, 80, 100 and 105 with 1/2, 1/4, 1/8, 1/8.
func TestChange_EveryThresholdBlocksHalf(t *testing.T) {
	cases := []struct {
		name   string
		start  int
		amount int
		want   map[int]float64
	}{
		{"rising", 45, 60, map[int]float64{50: 0.5, 80: 0.25, 100: 0.125, 105: 0.125}},
		{"falling", -45, -60, map[int]float64{-50: 0.5, -80: 0.25, -100: 0.125, -105: 0.125}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := dice.NewSeededSource(11)
			const trials = 40000
			counts := map[int]int{}
			for i := 0; i < trials; i++ {
				s := virtue.NewSet(virtue.Enlightenment)
				s.Set(virtue.Enlightenment, tc.start)
				s.Change(virtue.Enlightenment, tc.amount, src)
				counts[s.Value(virtue.Enlightenment)]++
			}
			assert.Len(t, counts, len(tc.want))
			for v, p := range tc.want {
				assert.InDelta(t, p, float64(counts[v])/trials, 0.015, "outcome %d", v)
			}
		})
	}
}

func TestChange_FortyFivePlusTenYieldsBoth(t *testing.T) {
	seen := map[int]bool{}
	for seed := uint64(0); seed < 64; seed++ {
		s := virtue.NewSet(virtue.Valour)
		s.Set(virtue.Valour, 45)
		s.Change(virtue.Valour, 10, dice.NewSeededSource(seed))
		seen[s.Value(virtue.Valour)] = true
	}
	assert.True(t, seen[50])
	assert.True(t, seen[55])
	assert.Len(t, seen, 2)
}

func TestChange_RoundTripNotGuaranteed(t *testing.T) {
	s := virtue.NewSet(virtue.Chance)
	s.Set(virtue.Chance, 45)
	s.Change(virtue.Chance, 20, fixedSrc{0})
	s.Change(virtue.Chance, -20, fixedSrc{0})
	assert.NotEqual(t, 45, s.Value(virtue.Chance))
}

func TestChange_AlwaysClamped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := virtue.NewSet(virtue.Vitality)
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		steps := rapid.SliceOf(rapid.IntRange(-300, 300)).Draw(rt, "steps")
		for _, d := range steps {
			s.Change(virtue.Vitality, d, src)
			v := s.Value(virtue.Vitality)
			assert.GreaterOrEqual(rt, v, virtue.Min)
			assert.LessOrEqual(rt, v, virtue.Max)
		}
	})
}

func TestParseKind(t *testing.T) {
	for _, k := range virtue.Kinds() {
		got, err := virtue.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := virtue.ParseKind("none")
	assert.Error(t, err)
}

func TestValues_ReportsEveryKind(t *testing.T) {
	s := virtue.NewSet(virtue.Harmony)
	s.Set(virtue.Harmony, 30)
	vals := s.Values()
	assert.Len(t, vals, len(virtue.Kinds()))
	assert.Equal(t, 30, vals["harmony"])
	assert.Equal(t, 0, vals["individualism"])
}
