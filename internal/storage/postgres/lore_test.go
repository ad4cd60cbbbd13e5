package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/storage/postgres"
	"github.com/cory-johannsen/deepdelve/internal/testutil"
)

func uniqueRace(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func find(entries []lore.Entry, raceID string) (lore.Entry, bool) {
	for _, e := range entries {
		if e.RaceID == raceID {
			return e, true
		}
	}
	return lore.Entry{}, false
}

func TestLoreRepository_SaveAndLoad(t *testing.T) {
	repo := postgres.NewLoreRepository(testutil.NewPool(t))
	ctx := context.Background()
	id := uniqueRace("kobold")

	in := lore.Entry{
		RaceID: id,
		Flags:  race.Evil | race.NoFear,
		Immune: element.Of(element.Poison),
		Resist: element.Of(element.Fire, element.Cold),
		Kills:  3,
		Deaths: 1,
		Blows:  [race.MaxBlows]int{4, 2, 0, 0},
	}
	require.NoError(t, repo.Save(ctx, []lore.Entry{in}))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	got, ok := find(out, id)
	require.True(t, ok)
	assert.Equal(t, in, got)
}

func TestLoreRepository_SaveMergesNeverForgets(t *testing.T) {
	repo := postgres.NewLoreRepository(testutil.NewPool(t))
	ctx := context.Background()
	id := uniqueRace("orc")

	require.NoError(t, repo.Save(ctx, []lore.Entry{{
		RaceID: id, Flags: race.Evil, Kills: 5, Blows: [race.MaxBlows]int{9, 0, 0, 0},
	}}))
	require.NoError(t, repo.Save(ctx, []lore.Entry{{
		RaceID: id, Flags: race.Animal, Kills: 2, Deaths: 1, Blows: [race.MaxBlows]int{1, 3, 0, 0},
	}}))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	got, ok := find(out, id)
	require.True(t, ok)
	assert.Equal(t, race.Evil|race.Animal, got.Flags)
	assert.Equal(t, 5, got.Kills)
	assert.Equal(t, 1, got.Deaths)
	assert.Equal(t, [race.MaxBlows]int{9, 3, 0, 0}, got.Blows)
}

func TestLoreRepository_SaveRejectsEmptyRaceID(t *testing.T) {
	repo := postgres.NewLoreRepository(testutil.NewPool(t))
	ctx := context.Background()
	id := uniqueRace("rollback")

	err := repo.Save(ctx, []lore.Entry{{RaceID: id, Kills: 1}, {RaceID: ""}})
	require.Error(t, err)

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	_, ok := find(out, id)
	assert.False(t, ok, "failed save must not write earlier entries")
}

func TestLoreRepository_RegistryRoundTrip(t *testing.T) {
	repo := postgres.NewLoreRepository(testutil.NewPool(t))
	ctx := context.Background()
	id := uniqueRace("ghost")

	src := lore.NewRegistry()
	rec := src.For(id)
	rec.Learn(race.Undead | race.EmptyMind)
	rec.LearnImmune(element.Of(element.Nether))
	rec.NoteKill()
	rec.NoteBlow(0)
	require.NoError(t, src.SaveTo(ctx, repo))

	dst := lore.NewRegistry()
	require.NoError(t, dst.LoadFrom(ctx, repo))
	got := dst.For(id)
	assert.True(t, got.Knows(race.Undead|race.EmptyMind))
	assert.True(t, got.KnowsImmune(element.Nether))
	assert.Equal(t, 1, got.Kills())
	assert.Equal(t, 1, got.BlowSeen(0))
}

func TestProperty_LoreRepository_FlagsSurviveHighBits(t *testing.T) {
	repo := postgres.NewLoreRepository(testutil.NewPool(t))
	ctx := context.Background()
	rapid.Check(t, func(rt *rapid.T) {
		flags := race.Flags(rapid.Uint64().Draw(rt, "flags"))
		id := uniqueRace("bits")
		require.NoError(rt, repo.Save(ctx, []lore.Entry{{RaceID: id, Flags: flags}}))
		out, err := repo.Load(ctx)
		require.NoError(rt, err)
		got, ok := find(out, id)
		require.True(rt, ok)
		if got.Flags != flags {
			rt.Fatalf("flags %x came back as %x", uint64(flags), uint64(got.Flags))
		}
	})
}
