package actor

import (
	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/inventory"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
	"github.com/cory-johannsen/deepdelve/internal/game/virtue"
)

// Player is the character's runtime state.
// It is not safe for concurrent use; a session serialises all access.
type Player struct {
	Name   string
	level  int
	Exp    int
	MaxExp int
	HP     int
	MaxHP  int
	SP     int
	MaxSP  int
	Gold   int

	// SkillMelee is the base melee skill (thn); SkillSave the saving throw.
	SkillMelee int
	SkillSave  int
	ToHit      int
	ToDam      int
	Blows      int
	BaseAC     int

	Stats Stats

	Immune     element.Set
	Resist     element.Set
	TempResist element.Set
	Vulnerable element.Set
	HoldLife   bool
	SeeInvis   bool

	Shields Shields
	// MultiShadow makes a decoy absorb every attack landing on an odd turn.
	MultiShadow bool
	// ConfusingTouch confuses the next monster struck in melee.
	ConfusingTouch bool
	// OnGlyph is set while the player stands on a glyph of warding.
	OnGlyph bool

	Virtues *virtue.Set
	Pack    *inventory.Pack
	Equip   *inventory.Equipment

	Dead     bool
	KilledBy string

	timed   *status.Timed
	turn    int64
	updates Update
}

// NewPlayer creates a player at level with full hit points and empty gear.
//
// Precondition: level >= 1 and maxHP >= 1.
func NewPlayer(name string, level, maxHP int) *Player {
	p := &Player{
		Name:    name,
		level:   level,
		HP:      maxHP,
		MaxHP:   maxHP,
		Blows:   1,
		Virtues: virtue.NewSet(),
		Pack:    inventory.NewPack(23),
		Equip:   inventory.NewEquipment(),
		timed:   status.NewTimed(),
	}
	for i := range p.Stats.Cur {
		p.Stats.Cur[i] = 10
		p.Stats.Max[i] = 10
	}
	return p
}

// Level returns the character level.
func (p *Player) Level() int { return p.level }

// SaveSkill returns the saving-throw skill.
func (p *Player) SaveSkill() int { return p.SkillSave }

// Timed returns the status counters.
func (p *Player) Timed() *status.Timed { return p.timed }

// Describe names the player mid-sentence.
func (p *Player) Describe() string { return "you" }

// IsPlayer is always true.
func (p *Player) IsPlayer() bool { return true }

// SyncTurn records the game turn so the decoy knows its phase.
func (p *Player) SyncTurn(turn int64) { p.turn = turn }

// Decoy reports whether the multishadow decoy takes attacks this turn.
func (p *Player) Decoy() bool {
	return p.MultiShadow && p.turn%2 == 1
}

// Resists reports immunity, resistance, or temporary resistance to e.
func (p *Player) Resists(e element.Element) bool {
	return p.Immune.Union(p.Resist).Union(p.TempResist).Has(e)
}

// FreeAction reports whether paralysis and slowing are blocked.
func (p *Player) FreeAction() bool {
	return p.Resists(element.FreeAction)
}

// ImmuneTo reports whether the player's resistances block def.
func (p *Player) ImmuneTo(def *status.Def) bool {
	e, ok := def.ImmunityElement()
	return ok && p.Resists(e)
}

// MarkStatusChanged raises status redraw and bonus recalculation.
func (p *Player) MarkStatusChanged() { p.Raise(RedrawStatus | UpdateBonus) }

// Raise adds u to the pending update flags.
func (p *Player) Raise(u Update) { p.updates |= u }

// Updates returns and clears the pending update flags.
func (p *Player) Updates() Update {
	u := p.updates
	p.updates = 0
	return u
}

// Pending returns the pending update flags without clearing them.
func (p *Player) Pending() Update { return p.updates }

// ArmorClass is base plus worn armour class.
func (p *Player) ArmorClass() int {
	return p.BaseAC + p.Equip.ArmorClass()
}

// TakeHit applies dmg and returns the hit points actually lost. Damage is
// never applied to a dead player.
//
// Postcondition: p.HP >= 0; p.Dead iff p.HP == 0 after a killing blow.
func (p *Player) TakeHit(dmg int, killer string) int {
	if p.Dead || dmg <= 0 {
		return 0
	}
	lost := min(dmg, p.HP)
	p.HP -= lost
	p.Raise(RedrawHP)
	if p.HP <= 0 {
		p.HP = 0
		p.Dead = true
		p.KilledBy = killer
	}
	return lost
}

// Heal restores up to n hit points.
func (p *Player) Heal(n int) int {
	if p.Dead || n <= 0 {
		return 0
	}
	gained := min(n, p.MaxHP-p.HP)
	p.HP += gained
	if gained > 0 {
		p.Raise(RedrawHP)
	}
	return gained
}

// GainExp adds n experience, raising MaxExp along with it.
func (p *Player) GainExp(n int) {
	if n <= 0 {
		return
	}
	p.Exp += n
	p.MaxExp = max(p.MaxExp, p.Exp)
	p.Raise(RedrawExp)
}

// LoseExp drains n experience; MaxExp is unaffected.
func (p *Player) LoseExp(n int) {
	if n <= 0 {
		return
	}
	p.Exp = max(0, p.Exp-n)
	p.Raise(RedrawExp)
}

// DrainStat lowers s by amount unless sustained.
func (p *Player) DrainStat(s Stat, amount int, src dice.Source) bool {
	changed := p.Stats.Decrease(s, amount, false, func(n int) int { return dice.RandInt1(src, n) })
	if changed {
		p.Raise(UpdateBonus | RedrawStats)
	}
	return changed
}

// ChangeVirtue shifts k through the damped virtue tracker.
func (p *Player) ChangeVirtue(k virtue.Kind, amount int, src dice.Source) {
	if p.Virtues.Change(k, amount, src) {
		p.Raise(UpdateBonus)
	}
}

// MeleeSkill is the to-hit chance used against a target's armour.
func (p *Player) MeleeSkill() int {
	toHit := p.ToHit
	if w := p.Equip.Weapon(); w != nil {
		toHit += w.ToHit
	}
	return p.SkillMelee + toHit*3
}
