package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/rules"
	"github.com/cory-johannsen/deepdelve/internal/game/save"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
	"github.com/cory-johannsen/deepdelve/internal/game/virtue"
)

// elementWeakness names the race flag that doubles damage from an element.
var elementWeakness = map[element.Element]race.Flags{
	element.Fire:  race.HurtFire,
	element.Cold:  race.HurtCold,
	element.Light: race.HurtLight,
}

// BoltDamage adjusts dam of element e against m and prints how m took it.
// Immune races take a ninth; resistant ones a third to a half; races hurt
// by the element take double. Holy damage doubles against evil and cannot
// touch good races.
func BoltDamage(sess *session.GameSession, m *actor.Monster, e element.Element, dam int) int {
	name := message.Capitalize(m.Describe())
	switch {
	case m.ImmuneToElement(e):
		sess.Msgf("%s resists a lot.", name)
		return dam / 9
	case m.Race.Resist.Has(e):
		if m.Observed() {
			m.Lore.LearnResist(element.Of(e))
		}
		sess.Msgf("%s resists.", name)
		return dam * 3 / (sess.RandInt1(6) + 6)
	}
	if e == element.Holy {
		switch {
		case m.Race.Flags.Has(race.Good):
			m.Learn(race.Good)
			sess.Msgf("%s is immune.", name)
			return 0
		case m.Race.Flags.Has(race.Evil):
			m.Learn(race.Evil)
			sess.Msgf("%s is hit hard.", name)
			return dam * 2
		}
		return dam
	}
	if f, ok := elementWeakness[e]; ok && m.Race.Flags.Has(f) {
		m.Learn(f)
		if e == element.Light {
			sess.Msgf("%s cringes from the light!", name)
		} else {
			sess.Msgf("%s is hit hard.", name)
		}
		return dam * 2
	}
	return dam
}

// CastBolt fires an elemental bolt of dam at m.
func CastBolt(sess *session.GameSession, m *actor.Monster, e element.Element, dam int) AttackReport {
	rep := AttackReport{AttackerID: PlayerID, DefenderID: m.ID, Blows: 1}
	if !m.Alive() || sess.Player.Dead {
		return rep
	}
	rep.Processed, rep.Hits = 1, 1
	dam = BoltDamage(sess, m, e, dam)
	rep.Damage = min(dam, m.HP)
	dead, fear := MonsterTakeHit(sess, m, dam, "")
	rep.DefenderDied = dead
	if fear {
		m.Fled = true
		rep.Fled = true
	}
	return rep
}

// spellPower passes power through the configured rule expression for kind.
// A failed evaluation logs and keeps the raw power.
func spellPower(sess *session.GameSession, m *actor.Monster, kind save.Kind, power int) int {
	p := sess.Player
	adjusted, err := sess.Adjuster.Adjust(kind, rules.Input{
		Power:       power,
		Level:       p.Level(),
		TargetLevel: m.Level(),
		Virtues:     p.Virtues.Values(),
	})
	if err != nil {
		sess.Logger.Warn("power rule failed", zap.Stringer("kind", kind), zap.Error(err))
		return power
	}
	return adjusted
}

// CastStatus tries to inflict kind on m with a spell of power; the monster
// saves against the power after rule adjustment.
func CastStatus(sess *session.GameSession, m *actor.Monster, kind status.Kind, power, amount int) status.Result {
	saveKind := save.General
	if def, ok := sess.Status.Registry().Get(kind); ok {
		saveKind = def.SaveKind()
	}
	return sess.Status.Apply(m, status.Request{
		Kind:   kind,
		Amount: amount,
		Save:   true,
		Power:  spellPower(sess, m, saveKind, power),
	})
}

// Charm tries to make m a pet. Success costs individualism and, for animals,
// earns nature.
func Charm(sess *session.GameSession, m *actor.Monster, power int) bool {
	name := message.Capitalize(m.Describe())
	if !m.Alive() || m.Pet {
		return false
	}
	if save.Resists(sess.Rng, spellPower(sess, m, save.Charm, power), m, save.Charm) {
		sess.Msgf("%s is unaffected.", name)
		return false
	}
	m.Pet = true
	sess.Msgf("%s suddenly seems friendly!", name)
	p := sess.Player
	p.ChangeVirtue(virtue.Individualism, -1, sess.Rng)
	if m.Race.Flags.Has(race.Animal) {
		p.ChangeVirtue(virtue.Nature, 1, sess.Rng)
	}
	return true
}
