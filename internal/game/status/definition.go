// Package status defines the timed status effects actors carry (confusion,
// fear, paralysis, stun, poison, blindness, slow, cut, ...) and the applier
// that sets them subject to immunity and saving throws.
package status

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/save"
)

// Kind identifies a status effect.
type Kind string

const (
	Confused  Kind = "confused"
	Afraid    Kind = "afraid"
	Paralyzed Kind = "paralyzed"
	Stunned   Kind = "stunned"
	Poisoned  Kind = "poisoned"
	Blind     Kind = "blind"
	Slow      Kind = "slow"
	Fast      Kind = "fast"
	Cut       Kind = "cut"
	Asleep    Kind = "asleep"
	ProtEvil  Kind = "prot_evil"
)

// DefaultMax caps a counter whose definition leaves max unset.
const DefaultMax = 10000

// Messages are the lines printed for each outcome. The *Other variants are
// used when the target is a monster and take its name through %s.
type Messages struct {
	Gain            string `yaml:"gain"`
	GainOther       string `yaml:"gain_other"`
	Unaffected      string `yaml:"unaffected"`
	UnaffectedOther string `yaml:"unaffected_other"`
	Resisted        string `yaml:"resisted"`
	ResistedOther   string `yaml:"resisted_other"`
	Expire          string `yaml:"expire"`
	ExpireOther     string `yaml:"expire_other"`
}

// Def is the static definition of a status kind, loaded from YAML.
type Def struct {
	ID          Kind   `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Max         int    `yaml:"max"`
	// Immunity is the element whose resistance blocks this status on players.
	Immunity string `yaml:"immunity"`
	// MonsterImmunity is the race flag that blocks this status on monsters.
	MonsterImmunity string   `yaml:"monster_immunity"`
	Save            string   `yaml:"save"`
	Messages        Messages `yaml:"messages"`

	immunity    element.Element
	hasImmunity bool
	monsterFlag race.Flags
	saveKind    save.Kind
}

// Validate checks the definition and resolves its named references.
//
// Postcondition: on nil error, ImmunityElement, MonsterFlag and SaveKind are usable.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("status: id must not be empty")
	}
	if d.Max < 0 {
		return fmt.Errorf("status %q: max must be >= 0", d.ID)
	}
	if d.Max == 0 {
		d.Max = DefaultMax
	}
	if d.Immunity != "" {
		e, err := element.Parse(d.Immunity)
		if err != nil {
			return fmt.Errorf("status %q: %w", d.ID, err)
		}
		d.immunity, d.hasImmunity = e, true
	}
	if d.MonsterImmunity != "" {
		f, err := race.ParseFlag(d.MonsterImmunity)
		if err != nil {
			return fmt.Errorf("status %q: %w", d.ID, err)
		}
		d.monsterFlag = f
	}
	d.saveKind = save.General
	if d.Save != "" {
		k, err := save.ParseKind(d.Save)
		if err != nil {
			return fmt.Errorf("status %q: %w", d.ID, err)
		}
		d.saveKind = k
	}
	for _, m := range []string{d.Messages.GainOther, d.Messages.UnaffectedOther, d.Messages.ResistedOther, d.Messages.ExpireOther} {
		if m != "" && strings.Count(m, "%s") != 1 {
			return fmt.Errorf("status %q: monster message %q must contain exactly one %%s", d.ID, m)
		}
	}
	return nil
}

// ImmunityElement returns the blocking element for players, if any.
func (d *Def) ImmunityElement() (element.Element, bool) {
	return d.immunity, d.hasImmunity
}

// MonsterFlag returns the race flag that blocks the status on monsters.
func (d *Def) MonsterFlag() race.Flags {
	return d.monsterFlag
}

// SaveKind returns the saving-throw kind rolled against this status.
func (d *Def) SaveKind() save.Kind {
	return d.saveKind
}

// Registry holds all known status definitions keyed by Kind.
type Registry struct {
	defs map[Kind]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Kind]*Def)}
}

// Register validates def and adds it, overwriting any entry with the same ID.
//
// Precondition: def must not be nil.
func (r *Registry) Register(def *Def) error {
	if err := def.Validate(); err != nil {
		return err
	}
	r.defs[def.ID] = def
	return nil
}

// Get returns the Def for k, or (nil, false) if not found.
func (r *Registry) Get(k Kind) (*Def, bool) {
	d, ok := r.defs[k]
	return d, ok
}

// All returns every registered Def sorted by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Def, and
// returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading status dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := reg.Register(&def); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
	}
	return reg, nil
}
