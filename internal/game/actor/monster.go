package actor

import (
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/inventory"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/save"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

// Smart is a monster's tactical memory of the player's defences, learned by
// watching its own attacks fail.
type Smart struct {
	Resist  element.Set
	Opposed element.Set
	Immune  element.Set
}

// Knows reports whether any resistance to e has been witnessed.
func (s Smart) Knows(e element.Element) bool {
	return s.Resist.Union(s.Opposed).Union(s.Immune).Has(e)
}

// Monster is one live instance of a race.
type Monster struct {
	ID   string
	Race *race.Race
	// Lore is the shared record for Race; never nil.
	Lore  *lore.Record
	HP    int
	MaxHP int
	Smart Smart

	Visible bool
	// Disguise is the race ID the monster appears as; empty means its own.
	Disguise string

	Held     []*inventory.Item
	HeldGold int

	Pet  bool
	Dead bool
	// Fled is set when the monster teleported or ran out of the fight.
	Fled bool

	timed *status.Timed
}

// NewMonster creates an instance of r at full health.
//
// Precondition: r and rec are non-nil; hp >= 1.
func NewMonster(id string, r *race.Race, rec *lore.Record, hp int) *Monster {
	return &Monster{
		ID:      id,
		Race:    r,
		Lore:    rec,
		HP:      hp,
		MaxHP:   hp,
		Visible: true,
		timed:   status.NewTimed(),
	}
}

// Level returns the race level.
func (m *Monster) Level() int { return m.Race.Level }

// SaveSkill is race level plus its save bonus, plus 25 for magic resistance.
func (m *Monster) SaveSkill() int {
	skill := m.Race.Level + m.Race.SaveBonus
	if m.Race.Flags.Has(race.ResMagic) {
		skill += 25
	}
	return skill
}

// Observed reports whether the player sees the monster as its true race, the
// only case in which anything learned is recorded in lore.
func (m *Monster) Observed() bool {
	return m.Visible && m.Disguise == ""
}

// Learn records the intersection of f and the race's own flags in lore when
// the monster is observed.
func (m *Monster) Learn(f race.Flags) {
	if known := m.Race.Flags & f; known != 0 && m.Observed() {
		m.Lore.Learn(known)
	}
}

// LearnImmune records that the race is immune to e when observed.
func (m *Monster) LearnImmune(e element.Element) {
	if m.Observed() && m.Race.Immune.Has(e) {
		m.Lore.LearnImmune(element.Of(e))
	}
}

// ImmuneToElement reports race immunity to e, learning it if observed.
func (m *Monster) ImmuneToElement(e element.Element) bool {
	if !m.Race.Immune.Has(e) {
		return false
	}
	m.LearnImmune(e)
	return true
}

var autoResist = map[save.Kind]race.Flags{
	save.Confusion: race.NoConf,
	save.Fear:      race.NoFear,
	save.Sleep:     race.NoSleep,
	save.Stun:      race.NoStun,
	save.Charm:     race.Unique | race.Questor,
	save.Control:   race.Unique | race.Questor,
}

// AutoResists reports a blanket immunity to saves of kind, recording the
// responsible flag in lore.
func (m *Monster) AutoResists(kind save.Kind) bool {
	f, ok := autoResist[kind]
	if !ok || !m.Race.Flags.Any(f) {
		return false
	}
	m.Learn(f)
	return true
}

// Timed returns the status counters.
func (m *Monster) Timed() *status.Timed { return m.timed }

// Describe names the monster mid-sentence, "it" when unseen.
func (m *Monster) Describe() string {
	if !m.Visible {
		return "it"
	}
	return m.Race.Describe()
}

// IsPlayer is always false.
func (m *Monster) IsPlayer() bool { return false }

// Decoy is always false for monsters.
func (m *Monster) Decoy() bool { return false }

// ImmuneTo reports race immunity to def, recording it in lore.
func (m *Monster) ImmuneTo(def *status.Def) bool {
	f := def.MonsterFlag()
	if f == 0 || !m.Race.Flags.Any(f) {
		return false
	}
	m.Learn(f)
	return true
}

// MarkStatusChanged is a no-op; monster status is drawn on demand.
func (m *Monster) MarkStatusChanged() {}

// Alive reports whether the monster is still in the fight.
func (m *Monster) Alive() bool {
	return !m.Dead && !m.Fled
}

// Hurt removes dmg hit points and reports whether the monster died.
//
// Postcondition: m.HP >= 0; damage to a dead monster is ignored.
func (m *Monster) Hurt(dmg int) bool {
	if m.Dead || dmg <= 0 {
		return m.Dead
	}
	m.HP -= dmg
	if m.HP <= 0 {
		m.HP = 0
		m.Dead = true
	}
	return m.Dead
}

// Heal restores up to n hit points.
func (m *Monster) Heal(n int) int {
	if m.Dead || n <= 0 {
		return 0
	}
	gained := min(n, m.MaxHP-m.HP)
	m.HP += gained
	return gained
}

// Asleep reports whether the monster is sleeping.
func (m *Monster) Asleep() bool {
	return m.timed.Has(status.Asleep)
}
