package dice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Dice: dice.Dice{Count: 2, Sides: 6}, Faces: []int{4, 5}}
	assert.Equal(t, "2d6 → [4 5] = 9", r.String())
}

func TestParse(t *testing.T) {
	cases := map[string]dice.Dice{
		"3d8":  {Count: 3, Sides: 8},
		"d20":  {Count: 1, Sides: 20},
		"10D6": {Count: 10, Sides: 6},
		"7":    {Count: 7, Sides: 1},
	}
	for in, want := range cases {
		got, err := dice.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "xd6", "0d6", "2d0", "2d", "-3"} {
		_, err := dice.Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestDice_UnmarshalYAML(t *testing.T) {
	var v struct {
		Damage dice.Dice `yaml:"damage"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("damage: 4d6\n"), &v))
	assert.Equal(t, dice.Dice{Count: 4, Sides: 6}, v.Damage)

	err := yaml.Unmarshal([]byte("damage: [1, 2]\n"), &v)
	assert.Error(t, err)
}

func TestDice_Roll_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := dice.Dice{
			Count: rapid.IntRange(1, 30).Draw(rt, "count"),
			Sides: rapid.IntRange(1, 30).Draw(rt, "sides"),
		}
		seed := rapid.Uint64().Draw(rt, "seed")
		total := d.Roll(dice.NewSeededSource(seed)).Total()
		assert.GreaterOrEqual(rt, total, d.Count)
		assert.LessOrEqual(rt, total, d.Max())
	})
}

func TestDice_ZeroRollsNothing(t *testing.T) {
	assert.Equal(t, 0, dice.Dice{}.Roll(fixedSrc{3}).Total())
	assert.Equal(t, 0, dice.Damroll(fixedSrc{3}, 0, 6))
}

func TestRandHelpers(t *testing.T) {
	src := fixedSrc{val: 0}
	assert.Equal(t, 0, dice.RandInt0(src, 10))
	assert.Equal(t, 1, dice.RandInt1(src, 10))
	assert.True(t, dice.OneIn(src, 5))
	assert.Equal(t, 0, dice.RandInt0(src, 0))
	assert.Equal(t, 1, dice.RandInt1(src, -4))

	high := fixedSrc{val: 99}
	assert.Equal(t, 10, dice.RandInt1(high, 10))
	assert.False(t, dice.OneIn(high, 5))
	assert.Equal(t, 18, dice.Damroll(high, 3, 6))
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSources_PanicOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestRoller_SatisfiesSource(t *testing.T) {
	var src dice.Source = dice.NewLoggedRoller(fixedSrc{2}, zap.NewNop())
	assert.Equal(t, 2, src.Intn(6))
	r := src.(*dice.Roller)
	assert.Equal(t, 9, r.Damroll(3, 6))
	assert.True(t, strings.HasPrefix(r.Roll(dice.MustParse("2d4")).String(), "2d4"))
}
