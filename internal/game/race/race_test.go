package race_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
)

const fireGiant = `
id: fire_giant
name: Fire giant
level: 30
hp: 30d15
ac: 60
exp: 54
flags: [EVIL, GIANT, AURA_FIRE, HURT_COLD]
immune: [fire]
blows:
  - {method: hit, effect: fire, dice: 6d8}
  - {method: hit, effect: fire, dice: 6d8}
`

func TestLoadRaceFromBytes(t *testing.T) {
	r, err := race.LoadRaceFromBytes([]byte(fireGiant))
	require.NoError(t, err)
	assert.Equal(t, "fire_giant", r.ID)
	assert.Equal(t, dice.Dice{Count: 30, Sides: 15}, r.HP)
	assert.True(t, r.Flags.Has(race.Evil|race.Giant))
	assert.True(t, r.Flags.Has(race.AuraFire))
	assert.False(t, r.Flags.Has(race.Undead))
	assert.True(t, r.Immune.Has(element.Fire))
	require.Len(t, r.Blows, 2)
	assert.Equal(t, race.Hit, r.Blows[0].Method)
	assert.Equal(t, race.Fire, r.Blows[0].Effect)
	assert.Equal(t, "the fire giant", r.Describe())
	assert.True(t, r.IsLiving())
}

func TestLoadRaceFromBytes_UnknownEffect(t *testing.T) {
	data := `
id: x
name: X
level: 1
hp: 1d4
blows:
  - {method: hit, effect: tickle, dice: 1d2}
`
	_, err := race.LoadRaceFromBytes([]byte(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, race.ErrUnknownEffect))
}

func TestLoadRaceFromBytes_UnknownMethod(t *testing.T) {
	data := `
id: x
name: X
level: 1
hp: 1d4
blows:
  - {method: headbutt, effect: hurt, dice: 1d2}
`
	_, err := race.LoadRaceFromBytes([]byte(data))
	assert.ErrorIs(t, err, race.ErrUnknownMethod)
}

func TestLoadRaceFromBytes_RejectsUnknownKeys(t *testing.T) {
	_, err := race.LoadRaceFromBytes([]byte("id: x\nname: X\nhp: 1d4\ncolour: red\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]race.Race{
		"no id":    {Name: "X", HP: dice.Dice{Count: 1, Sides: 4}},
		"no name":  {ID: "x", HP: dice.Dice{Count: 1, Sides: 4}},
		"no hp":    {ID: "x", Name: "X"},
		"neg ac":   {ID: "x", Name: "X", HP: dice.Dice{Count: 1, Sides: 4}, AC: -1},
		"5 blows":  {ID: "x", Name: "X", HP: dice.Dice{Count: 1, Sides: 4}, Blows: make([]race.Blow, 5)},
		"smart+st": {ID: "x", Name: "X", HP: dice.Dice{Count: 1, Sides: 4}, Flags: race.Smart | race.Stupid},
	}
	for name, r := range cases {
		assert.Error(t, r.Validate(), name)
	}
}

func TestDescribe_Unique(t *testing.T) {
	r := race.Race{Name: "Grip, Farmer Maggot's Dog", Flags: race.Unique | race.Animal}
	assert.Equal(t, "Grip, Farmer Maggot's Dog", r.Describe())
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fire_giant.yaml"), []byte(fireGiant), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	reg, err := race.LoadDirectory(dir)
	require.NoError(t, err)
	r, err := reg.Get("fire_giant")
	require.NoError(t, err)
	assert.Equal(t, 30, r.Level)

	_, err = reg.Get("balrog")
	assert.ErrorIs(t, err, race.ErrRaceNotFound)

	_, err = race.NewRegistry(r, r)
	assert.Error(t, err)
}

func TestEffectAndMethodNames_RoundTrip(t *testing.T) {
	for _, e := range race.Effects() {
		got, err := race.ParseEffect(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	m, err := race.ParseMethod("bite")
	require.NoError(t, err)
	assert.True(t, m.Cuts())
	assert.False(t, m.Stuns())
	assert.True(t, m.Touches())
}

func TestFlags_ParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := []string{"UNIQUE", "EVIL", "UNDEAD", "NO_CONF", "HURT_FIRE", "AURA_ELEC", "SMART"}
		picked := rapid.SliceOfDistinct(rapid.SampledFrom(names), func(s string) string { return s }).Draw(rt, "names")
		var f race.Flags
		for _, n := range picked {
			fl, err := race.ParseFlag(n)
			require.NoError(rt, err)
			f |= fl
		}
		assert.Len(rt, f.Names(), len(picked), fmt.Sprint(picked))
	})
}

func TestLoadDirectory_Content(t *testing.T) {
	reg, err := race.LoadDirectory("../../../content/races")
	require.NoError(t, err)
	require.NotEmpty(t, reg.All())

	v, err := reg.Get("vampire")
	require.NoError(t, err)
	assert.Equal(t, "drink_blood", v.OnHit)
	assert.True(t, v.Flags.Has(race.Undead))
	assert.False(t, v.IsLiving())
	assert.True(t, v.Immune.Has(element.Nether))

	eye, err := reg.Get("floating_eye")
	require.NoError(t, err)
	assert.True(t, eye.Flags.Has(race.NeverBlow))

	grip, err := reg.Get("grip")
	require.NoError(t, err)
	assert.Equal(t, "Grip, Farmer Maggot's Dog", grip.Describe())

	for _, r := range reg.All() {
		assert.LessOrEqual(t, len(r.Blows), race.MaxBlows, r.ID)
	}
}
