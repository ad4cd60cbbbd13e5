package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/inventory"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
	"github.com/cory-johannsen/deepdelve/internal/game/virtue"
)

// MonsterTakeHit applies player-caused damage to m. A death prints note after
// the monster's name, or the standard slain message when note is empty. A
// survivor wakes up and may panic.
//
// Postcondition: dead reports whether m died; fear whether it became afraid.
func MonsterTakeHit(sess *session.GameSession, m *actor.Monster, dam int, note string) (dead, fear bool) {
	if !m.Alive() {
		return m.Dead, false
	}
	if m.Asleep() {
		sess.Status.Clear(m, status.Asleep)
	}
	if m.Hurt(dam) {
		monsterDies(sess, m, note, true)
		return true, false
	}
	if dam <= 0 || m.Timed().Has(status.Afraid) || m.Race.Flags.Has(race.NoFear) {
		return false, false
	}
	percentage := 100 * m.HP / m.MaxHP
	lethalish := dam >= m.HP
	if sess.RandInt1(10) >= percentage || (lethalish && sess.RandInt0(100) < 80) {
		amount := sess.RandInt1(10)
		if lethalish && percentage > 7 {
			amount += 20
		} else {
			amount += (11 - percentage) * 5
		}
		res := sess.Status.Apply(m, status.Request{Kind: status.Afraid, Amount: amount})
		fear = res.Outcome == status.Applied
	}
	return false, fear
}

// monsterDies reports the death and, when the player caused it, pays out
// experience, virtue shifts, bounty and lore kill counts. Held items drop to
// the floor either way.
func monsterDies(sess *session.GameSession, m *actor.Monster, note string, byPlayer bool) {
	name := message.Capitalize(m.Describe())
	switch {
	case note != "":
		sess.Msg(name + note)
	case !m.Race.IsLiving():
		sess.Msgf("You have destroyed %s.", m.Describe())
	default:
		sess.Msgf("You have slain %s.", m.Describe())
	}
	dropHeld(sess, m)
	if !byPlayer {
		return
	}
	p := sess.Player
	if m.Observed() {
		m.Lore.NoteKill()
	}
	killVirtues(sess, p, m)
	if p.Level() > 0 {
		p.GainExp(m.Race.Exp * m.Race.Level / p.Level())
	}
	if sess.Bounty != nil {
		today, wanted := sess.Bounty.Claim(m.Race.ID)
		if today {
			sess.Msgf("You have earned today's bounty on %s.", m.Race.Name)
		}
		if wanted {
			sess.Msgf("The wanted poster for %s can be redeemed.", m.Race.Name)
		}
	}
	sess.Logger.Debug("monster slain",
		zap.String("monster", m.ID),
		zap.String("race", m.Race.ID),
		zap.Int("depth", sess.Depth),
	)
}

func dropHeld(sess *session.GameSession, m *actor.Monster) {
	for _, it := range m.Held {
		sess.Floor.Drop(it)
	}
	m.Held = nil
	if m.HeldGold > 0 {
		sess.Floor.Drop(&inventory.Item{
			ID:       "gold",
			Name:     "gold pieces",
			Kind:     inventory.KindGold,
			Quantity: m.HeldGold,
		})
		m.HeldGold = 0
	}
}

// killVirtues shifts the player's virtues for killing m.
func killVirtues(sess *session.GameSession, p *actor.Player, m *actor.Monster) {
	r := m.Race
	f := r.Flags
	change := func(k virtue.Kind, amount int) { p.ChangeVirtue(k, amount, sess.Rng) }

	if f.Has(race.Unique) {
		if f.Any(race.Evil | race.Good) {
			change(virtue.Harmony, 2)
		}
		if f.Has(race.Good) {
			change(virtue.Unlife, 2)
			change(virtue.Vitality, -2)
		}
		if sess.OneIn(3) {
			change(virtue.Individualism, -1)
		}
	}
	if f.Has(race.Good) && r.Level/10+3*sess.Depth >= sess.RandInt1(100) {
		change(virtue.Unlife, 1)
	}
	if f.Has(race.Undead) && f.Has(race.Unique) {
		change(virtue.Vitality, 2)
	}
	if m.Lore.Deaths() > 0 {
		if f.Has(race.Unique) {
			change(virtue.Honour, 10)
		} else {
			change(virtue.Honour, 1)
		}
	}

	innocent, thief := true, false
	for _, b := range r.Blows {
		if !b.Dice.IsZero() {
			innocent = false
		}
		if b.Effect == race.EatGold || b.Effect == race.EatItem {
			thief = true
		}
	}
	switch {
	case thief && f.Has(race.Unique):
		change(virtue.Justice, 3)
	case thief:
		if 1+r.Level/10+2*sess.Depth >= sess.RandInt1(100) {
			change(virtue.Justice, 1)
		}
	case innocent:
		change(virtue.Justice, -1)
	}

	if f.Has(race.Animal) && !f.Has(race.Evil) && sess.OneIn(4) {
		change(virtue.Nature, -1)
	}

	if r.Level > sess.Depth && sess.RandInt1(10) <= r.Level-sess.Depth {
		change(virtue.Valour, 1)
	}
	if r.Level > 60 {
		change(virtue.Valour, 1)
	}
	if r.Level >= 2*(p.Level()+1) {
		change(virtue.Valour, 2)
	}
}
