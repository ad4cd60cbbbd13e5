// Package race defines monster race templates loaded from YAML.
//
// Races are read-only after loading; per-race knowledge the player gathers
// lives in the lore package, and per-instance state in actor.
package race

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
)

// ErrRaceNotFound is returned when a race id is not registered.
var ErrRaceNotFound = errors.New("race not found")

// Race is a monster race template.
type Race struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Level       int         `yaml:"level"`
	HP          dice.Dice   `yaml:"hp"`
	AC          int         `yaml:"ac"`
	Speed       int         `yaml:"speed"`
	Exp         int         `yaml:"exp"`
	SaveBonus   int         `yaml:"save_bonus"`
	Flags       Flags       `yaml:"flags"`
	Immune      element.Set `yaml:"immune"`
	Resist      element.Set `yaml:"resist"`
	Blows       []Blow      `yaml:"blows"`
	// OnHit names a Lua hook called after each landed blow. Empty = none.
	OnHit string `yaml:"on_hit"`
}

// Validate checks that the race satisfies basic invariants.
//
// Precondition: r must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Level >= 0,
// HP rolls at least 1, AC >= 0, and there are at most MaxBlows blows.
func (r *Race) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("race: id must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("race %q: name must not be empty", r.ID)
	}
	if r.Level < 0 {
		return fmt.Errorf("race %q: level must be >= 0", r.ID)
	}
	if r.HP.IsZero() {
		return fmt.Errorf("race %q: hp must be a dice expression like 10d8", r.ID)
	}
	if r.AC < 0 {
		return fmt.Errorf("race %q: ac must be >= 0", r.ID)
	}
	if len(r.Blows) > MaxBlows {
		return fmt.Errorf("race %q: at most %d blows allowed, got %d", r.ID, MaxBlows, len(r.Blows))
	}
	if r.Flags.Has(Smart | Stupid) {
		return fmt.Errorf("race %q: SMART and STUPID are exclusive", r.ID)
	}
	return nil
}

// Describe returns the race name as it reads mid-sentence: uniques by their
// own name, everything else with a definite article.
func (r *Race) Describe() string {
	if r.Flags.Has(Unique) {
		return r.Name
	}
	return "the " + strings.ToLower(r.Name)
}

// IsLiving reports whether the race has life to drain or bleed.
func (r *Race) IsLiving() bool {
	return !r.Flags.Any(Undead | Demon | Nonliving)
}

// LoadRaceFromBytes parses a single race from raw YAML bytes. Unknown keys are
// rejected.
//
// Postcondition: Returns a validated *Race, or an error.
func LoadRaceFromBytes(data []byte) (*Race, error) {
	var r Race
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing race YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Registry holds all known races keyed by ID.
type Registry struct {
	races map[string]*Race
}

// NewRegistry creates a Registry from races.
//
// Postcondition: Returns an error if two races share an ID.
func NewRegistry(races ...*Race) (*Registry, error) {
	reg := &Registry{races: make(map[string]*Race, len(races))}
	for _, r := range races {
		if _, dup := reg.races[r.ID]; dup {
			return nil, fmt.Errorf("race %q: duplicate id", r.ID)
		}
		reg.races[r.ID] = r
	}
	return reg, nil
}

// Get returns the race with id, or an error wrapping ErrRaceNotFound.
func (g *Registry) Get(id string) (*Race, error) {
	r, ok := g.races[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRaceNotFound, id)
	}
	return r, nil
}

// All returns every race sorted by level then ID.
func (g *Registry) All() []*Race {
	out := make([]*Race, 0, len(g.races))
	for _, r := range g.races {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LoadDirectory reads every *.yaml file in dir as one race and returns the
// populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Registry or the first read, parse, or validate error.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading race dir %q: %w", dir, err)
	}
	var races []*Race
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		r, err := LoadRaceFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		races = append(races, r)
	}
	return NewRegistry(races...)
}
