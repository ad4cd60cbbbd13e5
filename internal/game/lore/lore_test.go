package lore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
)

type memStore struct {
	entries []lore.Entry
	err     error
}

func (m *memStore) Load(context.Context) ([]lore.Entry, error) { return m.entries, m.err }
func (m *memStore) Save(_ context.Context, e []lore.Entry) error {
	m.entries = e
	return m.err
}

func TestRegistry_ForSharesRecord(t *testing.T) {
	reg := lore.NewRegistry()
	a := reg.For("cave_spider")
	b := reg.For("cave_spider")
	assert.Same(t, a, b)
	a.Learn(race.Animal)
	assert.True(t, b.Knows(race.Animal))
}

func TestRecord_LearnIsAppendOnly(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rec := lore.NewRegistry().For("x")
		bits := rapid.SliceOf(rapid.Uint64Range(0, 1<<29-1)).Draw(rt, "bits")
		var seen race.Flags
		for _, b := range bits {
			rec.Learn(race.Flags(b))
			seen |= race.Flags(b)
			assert.Equal(rt, seen, rec.Flags())
		}
	})
}

func TestRecord_Counters(t *testing.T) {
	rec := lore.NewRegistry().For("orc")
	rec.NoteKill()
	rec.NoteKill()
	rec.NoteDeath()
	rec.NoteBlow(1)
	rec.NoteBlow(9)
	assert.Equal(t, 2, rec.Kills())
	assert.Equal(t, 1, rec.Deaths())
	assert.Equal(t, 1, rec.BlowSeen(1))
	assert.Equal(t, 0, rec.BlowSeen(9))
}

func TestRegistry_MergeNeverForgets(t *testing.T) {
	reg := lore.NewRegistry()
	rec := reg.For("dragon")
	rec.Learn(race.Evil)
	rec.LearnImmune(element.Of(element.Fire))
	rec.NoteKill()
	rec.NoteKill()

	reg.Merge(lore.Entry{RaceID: "dragon", Flags: race.Dragon, Kills: 1, Immune: element.Of(element.Poison)})

	assert.True(t, rec.Knows(race.Evil|race.Dragon))
	assert.True(t, rec.KnowsImmune(element.Fire))
	assert.True(t, rec.KnowsImmune(element.Poison))
	assert.Equal(t, 2, rec.Kills())
}

func TestRegistry_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := lore.NewRegistry()
	reg.For("b").NoteDeath()
	reg.For("a").Learn(race.Undead)

	store := &memStore{}
	require.NoError(t, reg.SaveTo(ctx, store))
	require.Len(t, store.entries, 2)
	assert.Equal(t, "a", store.entries[0].RaceID)

	fresh := lore.NewRegistry()
	require.NoError(t, fresh.LoadFrom(ctx, store))
	assert.True(t, fresh.For("a").Knows(race.Undead))
	assert.Equal(t, 1, fresh.For("b").Deaths())

	store.err = errors.New("boom")
	assert.Error(t, fresh.LoadFrom(ctx, store))
}

func TestRegistry_ConcurrentForCreatesOneRecord(t *testing.T) {
	g := lore.NewRegistry()
	const workers = 16
	got := make([]*lore.Record, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = g.For("ghoul")
		}()
	}
	wg.Wait()
	for _, r := range got {
		assert.Same(t, got[0], r)
	}
	assert.Len(t, g.Entries(), 1)
}
