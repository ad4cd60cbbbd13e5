// Package lore holds what the player has learned about each monster race.
//
// One Record exists per race and is shared by every instance of that race.
// Learned flags are append-only: nothing in the engine ever forgets.
package lore

import (
	"context"
	"sort"
	"sync"

	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
)

// Record is the accumulated knowledge about one race.
// It is not safe for concurrent use.
type Record struct {
	raceID string
	flags  race.Flags
	immune element.Set
	resist element.Set
	kills  int
	deaths int
	blows  [race.MaxBlows]int
}

// RaceID returns the race this record describes.
func (r *Record) RaceID() string { return r.raceID }

// Learn records race flags as known.
//
// Postcondition: r.Knows(f) for every bit in f.
func (r *Record) Learn(f race.Flags) {
	r.flags |= f
}

// LearnImmune records element immunities as known.
func (r *Record) LearnImmune(s element.Set) {
	r.immune |= s
}

// LearnResist records element resistances as known.
func (r *Record) LearnResist(s element.Set) {
	r.resist |= s
}

// Knows reports whether every flag in f has been learned.
func (r *Record) Knows(f race.Flags) bool {
	return r.flags.Has(f)
}

// KnowsImmune reports whether immunity to e has been learned.
func (r *Record) KnowsImmune(e element.Element) bool {
	return r.immune.Has(e)
}

// Flags returns every learned race flag.
func (r *Record) Flags() race.Flags { return r.flags }

// NoteKill increments the kill counter.
func (r *Record) NoteKill() { r.kills++ }

// NoteDeath increments the count of player deaths to this race.
func (r *Record) NoteDeath() { r.deaths++ }

// Kills returns how many of this race the player has killed.
func (r *Record) Kills() int { return r.kills }

// Deaths returns how many times this race has killed the player.
func (r *Record) Deaths() int { return r.deaths }

// NoteBlow increments the observation counter of blow i. Out-of-range indices
// are ignored.
func (r *Record) NoteBlow(i int) {
	if i < 0 || i >= race.MaxBlows {
		return
	}
	if r.blows[i] < 255 {
		r.blows[i]++
	}
}

// BlowSeen returns how many times blow i has been observed.
func (r *Record) BlowSeen(i int) int {
	if i < 0 || i >= race.MaxBlows {
		return 0
	}
	return r.blows[i]
}

// Entry is a flat snapshot of a Record used for persistence.
type Entry struct {
	RaceID string
	Flags  race.Flags
	Immune element.Set
	Resist element.Set
	Kills  int
	Deaths int
	Blows  [race.MaxBlows]int
}

// Store persists lore entries between sessions.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

// Registry maps race IDs to their shared Record.
// The mutex guards the map only. Records returned by For are mutated without
// it, so Entries, SaveTo and Merge must run while no session is resolving combat.
type Registry struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Record)}
}

// For returns the Record for raceID, creating it on first use.
//
// Postcondition: repeated calls with the same raceID return the same pointer.
func (g *Registry) For(raceID string) *Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.records[raceID]
	if !ok {
		rec = &Record{raceID: raceID}
		g.records[raceID] = rec
	}
	return rec
}

// Merge folds a persisted entry into the registry. Flags are OR-ed and
// counters keep the larger value, so merging never loses knowledge.
func (g *Registry) Merge(e Entry) {
	rec := g.For(e.RaceID)
	g.mu.Lock()
	defer g.mu.Unlock()
	rec.flags |= e.Flags
	rec.immune |= e.Immune
	rec.resist |= e.Resist
	rec.kills = max(rec.kills, e.Kills)
	rec.deaths = max(rec.deaths, e.Deaths)
	for i := range rec.blows {
		rec.blows[i] = max(rec.blows[i], e.Blows[i])
	}
}

// Entries snapshots every record, sorted by race ID.
func (g *Registry) Entries() []Entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Entry, 0, len(g.records))
	for _, r := range g.records {
		out = append(out, Entry{
			RaceID: r.raceID,
			Flags:  r.flags,
			Immune: r.immune,
			Resist: r.resist,
			Kills:  r.kills,
			Deaths: r.deaths,
			Blows:  r.blows,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RaceID < out[j].RaceID })
	return out
}

// LoadFrom merges everything s holds into g.
func (g *Registry) LoadFrom(ctx context.Context, s Store) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		g.Merge(e)
	}
	return nil
}

// SaveTo writes a snapshot of g to s.
func (g *Registry) SaveTo(ctx context.Context, s Store) error {
	return s.Save(ctx, g.Entries())
}
