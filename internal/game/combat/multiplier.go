package combat

import (
	"fmt"

	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/inventory"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

// BaseMultiplier is the unmodified damage multiplier, in tenths.
const BaseMultiplier = 10

// MaxMultiplier caps every technique-adjusted multiplier.
const MaxMultiplier = 150

// Technique is a special melee stance that changes the damage multiplier.
type Technique uint8

const (
	TechNone Technique = iota
	TechFire
	TechPoison
	TechZanma
	TechHagan
	TechCold
	TechElec
	TechBloodyMaelstrom
	TechUndead
)

var techniqueNames = []string{"none", "fire", "poison", "zanma", "hagan", "cold", "elec", "maelstrom", "undead"}

func (t Technique) String() string {
	if int(t) < len(techniqueNames) {
		return techniqueNames[t]
	}
	return fmt.Sprintf("Technique(%d)", uint8(t))
}

// ParseTechnique resolves a technique name.
func ParseTechnique(name string) (Technique, error) {
	for i, n := range techniqueNames {
		if n == name {
			return Technique(i), nil
		}
	}
	return TechNone, fmt.Errorf("unknown technique %q", name)
}

type slayRule struct {
	slay inventory.Slays
	flag race.Flags
	mult int
}

var slayRules = []slayRule{
	{inventory.SlayAnimal, race.Animal, 25},
	{inventory.SlayEvil, race.Evil, 20},
	{inventory.SlayHuman, race.Human, 25},
	{inventory.SlayUndead, race.Undead, 30},
	{inventory.SlayDemon, race.Demon, 30},
	{inventory.SlayOrc, race.Orc, 30},
	{inventory.SlayTroll, race.Troll, 30},
	{inventory.SlayGiant, race.Giant, 30},
	{inventory.SlayDragon, race.Dragon, 30},
	{inventory.KillDragon, race.Dragon, 50},
	{inventory.KillUndead, race.Undead, 50},
	{inventory.KillDemon, race.Demon, 50},
}

var brandRules = []struct {
	elem element.Element
	hurt race.Flags
}{
	{element.Acid, 0},
	{element.Elec, 0},
	{element.Fire, race.HurtFire},
	{element.Cold, race.HurtCold},
	{element.Poison, 0},
}

// WeaponMultiplier returns the best slay or brand multiplier w has against m,
// in tenths. A nil weapon yields BaseMultiplier. Matching race flags and
// element immunities are recorded in m's lore.
func WeaponMultiplier(w *inventory.Item, m *actor.Monster) int {
	mult := BaseMultiplier
	if w == nil {
		return mult
	}
	flags := m.Race.Flags
	for _, r := range slayRules {
		if w.Slays.Has(r.slay) && flags.Has(r.flag) {
			m.Learn(r.flag)
			mult = max(mult, r.mult)
		}
	}
	for _, r := range brandRules {
		if !w.Brands.Has(r.elem) || m.ImmuneToElement(r.elem) {
			continue
		}
		v := 25
		if r.hurt != 0 && flags.Has(r.hurt) {
			m.Learn(r.hurt)
			v = 50
		}
		mult = max(mult, v)
	}
	return mult
}

// TechniqueMultiplier applies tech on top of mult for a weapon carrying
// brands, and returns the result capped at MaxMultiplier. When m is immune to
// the technique's element the multiplier is left alone and the immunity is
// learned.
func TechniqueMultiplier(mult int, brands element.Set, m *actor.Monster, tech Technique, p *actor.Player) int {
	flags := m.Race.Flags
	switch tech {
	case TechFire:
		mult = elementalTechnique(mult, brands, m, element.Fire, race.HurtFire)
	case TechCold:
		mult = elementalTechnique(mult, brands, m, element.Cold, race.HurtCold)
	case TechPoison:
		if m.ImmuneToElement(element.Poison) {
			break
		}
		if brands.Has(element.Poison) {
			mult = max(mult, 35)
		} else {
			mult = max(mult, 25)
		}
	case TechElec:
		if m.ImmuneToElement(element.Elec) {
			break
		}
		if brands.Has(element.Elec) {
			mult = max(mult, 70)
		} else {
			mult = max(mult, 50)
		}
	case TechZanma:
		if !m.Race.IsLiving() && flags.Has(race.Evil) {
			if mult < 15 {
				mult = 25
			} else if mult < 50 {
				mult = min(50, mult+20)
			}
		}
	case TechHagan:
		if flags.Has(race.HurtRock) {
			m.Learn(race.HurtRock)
			if mult == BaseMultiplier {
				mult = 40
			} else if mult < 60 {
				mult = 60
			}
		}
	case TechBloodyMaelstrom:
		if cut := p.Timed().Get(status.Cut); cut > 0 && m.Race.IsLiving() {
			mult = max(mult, min(100, max(10, cut/10)))
		}
	case TechUndead:
		if flags.Has(race.Undead) {
			m.Learn(race.Undead)
			if mult == BaseMultiplier {
				mult = 70
			} else if mult < 140 {
				mult = min(140, mult+60)
			}
		}
		if mult == BaseMultiplier {
			mult = 40
		} else if mult < 60 {
			mult = min(60, mult+30)
		}
	}
	return min(mult, MaxMultiplier)
}

func elementalTechnique(mult int, brands element.Set, m *actor.Monster, e element.Element, hurt race.Flags) int {
	if m.ImmuneToElement(e) {
		return mult
	}
	weak := m.Race.Flags.Has(hurt)
	if weak {
		m.Learn(hurt)
	}
	switch {
	case brands.Has(e) && weak:
		return max(mult, 70)
	case brands.Has(e):
		return max(mult, 35)
	case weak:
		return max(mult, 50)
	default:
		return max(mult, 25)
	}
}
