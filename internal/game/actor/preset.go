package actor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/inventory"
	"github.com/cory-johannsen/deepdelve/internal/game/virtue"
)

// Preset is a ready-made character loaded from YAML, used by the arena in
// place of the birth process.
type Preset struct {
	ID         string                    `yaml:"id"`
	Name       string                    `yaml:"name"`
	Level      int                       `yaml:"level"`
	HP         int                       `yaml:"hp"`
	SP         int                       `yaml:"sp"`
	Exp        int                       `yaml:"exp"`
	Gold       int                       `yaml:"gold"`
	SkillMelee int                       `yaml:"skill_melee"`
	SkillSave  int                       `yaml:"skill_save"`
	ToHit      int                       `yaml:"to_hit"`
	ToDam      int                       `yaml:"to_dam"`
	Blows      int                       `yaml:"blows"`
	AC         int                       `yaml:"ac"`
	Stats      map[string]int            `yaml:"stats"`
	Sustain    []string                  `yaml:"sustain"`
	Immune     element.Set               `yaml:"immune"`
	Resist     element.Set               `yaml:"resist"`
	Vulnerable element.Set               `yaml:"vulnerable"`
	HoldLife   bool                      `yaml:"hold_life"`
	SeeInvis   bool                      `yaml:"see_invisible"`
	Shields    Shields                   `yaml:"shields"`
	Virtues    []string                  `yaml:"virtues"`
	Equipment  map[string]inventory.Item `yaml:"equipment"`
	Pack       []inventory.Item          `yaml:"pack"`
}

// Validate checks the preset and every item it carries.
//
// Postcondition: returns nil iff NewPlayer will succeed.
func (p *Preset) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if p.Level < 1 {
		errs = append(errs, errors.New("level must be >= 1"))
	}
	if p.HP < 1 {
		errs = append(errs, errors.New("hp must be >= 1"))
	}
	if p.Blows < 0 || p.Blows > 4 {
		errs = append(errs, errors.New("blows must be in [0, 4]"))
	}
	for name, v := range p.Stats {
		if _, err := ParseStat(name); err != nil {
			errs = append(errs, err)
		}
		if v < StatMin || v > StatMax {
			errs = append(errs, fmt.Errorf("stat %s=%d out of range [%d, %d]", name, v, StatMin, StatMax))
		}
	}
	for _, name := range p.Sustain {
		if _, err := ParseStat(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(p.Virtues) > virtue.Slots {
		errs = append(errs, fmt.Errorf("at most %d virtues", virtue.Slots))
	}
	for _, name := range p.Virtues {
		if _, err := virtue.ParseKind(name); err != nil {
			errs = append(errs, err)
		}
	}
	valid := map[inventory.Slot]bool{}
	for _, s := range inventory.ValidSlots() {
		valid[s] = true
	}
	for slot, it := range p.Equipment {
		if !valid[inventory.Slot(slot)] {
			errs = append(errs, fmt.Errorf("unknown equipment slot %q", slot))
		}
		if err := it.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, it := range p.Pack {
		if err := it.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("preset %q: %w", p.ID, errors.Join(errs...))
	}
	return nil
}

// NewPlayer builds a fresh Player from the preset.
//
// Precondition: p.Validate() == nil.
func (p *Preset) NewPlayer() (*Player, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	name := p.Name
	if name == "" {
		name = p.ID
	}
	pl := NewPlayer(name, p.Level, p.HP)
	pl.SP, pl.MaxSP = p.SP, p.SP
	pl.Exp, pl.MaxExp = p.Exp, p.Exp
	pl.Gold = p.Gold
	pl.SkillMelee = p.SkillMelee
	pl.SkillSave = p.SkillSave
	pl.ToHit, pl.ToDam = p.ToHit, p.ToDam
	pl.Blows = max(1, p.Blows)
	pl.BaseAC = p.AC
	pl.Immune, pl.Resist, pl.Vulnerable = p.Immune, p.Resist, p.Vulnerable
	pl.HoldLife = p.HoldLife
	pl.SeeInvis = p.SeeInvis
	pl.Shields = p.Shields
	for name, v := range p.Stats {
		s, _ := ParseStat(name)
		pl.Stats.Cur[s], pl.Stats.Max[s] = v, v
	}
	for _, name := range p.Sustain {
		s, _ := ParseStat(name)
		pl.Stats.Sustain[s] = true
	}
	kinds := make([]virtue.Kind, 0, len(p.Virtues))
	for _, name := range p.Virtues {
		k, _ := virtue.ParseKind(name)
		kinds = append(kinds, k)
	}
	pl.Virtues = virtue.NewSet(kinds...)

	slots := make([]string, 0, len(p.Equipment))
	for s := range p.Equipment {
		slots = append(slots, s)
	}
	sort.Strings(slots)
	for _, s := range slots {
		pl.Equip.Wear(inventory.Slot(s), p.Equipment[s].Spawn())
	}
	for _, it := range p.Pack {
		if err := pl.Pack.Add(it.Spawn()); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.ID, err)
		}
	}
	return pl, nil
}

// LoadPresetFromBytes parses one preset. Unknown keys are rejected.
func LoadPresetFromBytes(data []byte) (*Preset, error) {
	var p Preset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing preset YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPresets reads every *.yaml file in dir and returns presets keyed by ID.
//
// Precondition: dir must be a readable directory.
func LoadPresets(dir string) (map[string]*Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading preset dir %q: %w", dir, err)
	}
	out := make(map[string]*Preset)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		p, err := LoadPresetFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := out[p.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate preset id %q", path, p.ID)
		}
		out[p.ID] = p
	}
	return out, nil
}
