package actor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
)

// Roster tracks the live monsters of one dungeon level, in spawn order.
// All methods are safe for concurrent use.
type Roster struct {
	mu       sync.RWMutex
	depth    int
	monsters map[string]*Monster
	order    []string
}

// NewRoster creates an empty roster for a level at depth.
func NewRoster(depth int) *Roster {
	return &Roster{depth: depth, monsters: make(map[string]*Monster)}
}

// Depth returns the dungeon level this roster belongs to.
func (r *Roster) Depth() int {
	return r.depth
}

// Spawn creates a monster of rc sharing lore record rec. Uniques get maximum
// hit points; everything else rolls its race dice.
//
// Precondition: rc and rec must be non-nil; rec must describe rc.
// Postcondition: Returns a new Monster with a unique ID registered in the roster.
func (r *Roster) Spawn(rc *race.Race, rec *lore.Record, src dice.Source) (*Monster, error) {
	if rc == nil || rec == nil {
		return nil, fmt.Errorf("actor.Roster.Spawn: race and lore record must not be nil")
	}
	if rec.RaceID() != rc.ID {
		return nil, fmt.Errorf("actor.Roster.Spawn: lore record %q does not describe race %q", rec.RaceID(), rc.ID)
	}
	hp := rc.HP.Max()
	if !rc.Flags.Has(race.Unique) {
		hp = rc.HP.Roll(src).Total()
	}
	m := NewMonster(uuid.New().String(), rc, rec, max(1, hp))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.monsters[m.ID] = m
	r.order = append(r.order, m.ID)
	return m, nil
}

// Get returns the monster with the given ID.
//
// Postcondition: Returns (m, true) if found, or (nil, false) otherwise.
func (r *Roster) Get(id string) (*Monster, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.monsters[id]
	return m, ok
}

// Remove deletes a monster by ID.
//
// Postcondition: Returns an error if the monster is not found.
func (r *Roster) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.monsters[id]; !ok {
		return fmt.Errorf("monster %q not found", id)
	}
	r.removeLocked(id)
	return nil
}

func (r *Roster) removeLocked(id string) {
	delete(r.monsters, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Living returns a snapshot of the monsters still in the fight, in spawn order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (r *Roster) Living() []*Monster {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Monster, 0, len(r.order))
	for _, id := range r.order {
		if m := r.monsters[id]; m.Alive() {
			out = append(out, m)
		}
	}
	return out
}

// Reap removes dead and departed monsters and returns how many were removed.
func (r *Roster) Reap() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var gone []string
	for _, id := range r.order {
		if !r.monsters[id].Alive() {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		r.removeLocked(id)
	}
	return len(gone)
}

// Find returns the first living monster whose race name has prefix as a
// case-insensitive prefix, or nil.
func (r *Roster) Find(prefix string) *Monster {
	lower := strings.ToLower(prefix)
	for _, m := range r.Living() {
		if strings.HasPrefix(strings.ToLower(m.Race.Name), lower) {
			return m
		}
	}
	return nil
}

// Len returns the number of tracked monsters, alive or not.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.monsters)
}

// Unload drops every monster when the level is left and returns how many
// were dropped. Lore records are untouched.
//
// Postcondition: r.Len() == 0.
func (r *Roster) Unload() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.monsters)
	r.monsters = make(map[string]*Monster)
	r.order = nil
	return n
}
