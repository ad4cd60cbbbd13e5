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

// PlayerAttack resolves one melee action by the session player against m
// using technique tech.
//
// Precondition: m belongs to sess.
// Postcondition: the report's Processed <= Blows; the loop stops on either
// death or when m panics.
func PlayerAttack(sess *session.GameSession, m *actor.Monster, tech Technique) AttackReport {
	p := sess.Player
	rep := AttackReport{AttackerID: PlayerID, DefenderID: m.ID, Blows: min(max(1, p.Blows), race.MaxBlows)}
	if p.Dead || !m.Alive() {
		rep.Blows = 0
		return rep
	}
	if p.Timed().Has(status.Afraid) {
		if m.Visible {
			sess.Msgf("You are too afraid to attack %s!", m.Describe())
		} else {
			sess.Msg("There is something scary in your way!")
		}
		rep.Blocked = BlockFear
		return rep
	}
	if m.Asleep() {
		if !m.Race.Flags.Has(race.Evil) || sess.OneIn(5) {
			p.ChangeVirtue(virtue.Compassion, -1, sess.Rng)
			p.ChangeVirtue(virtue.Honour, -1, sess.Rng)
		}
		sess.Status.Clear(m, status.Asleep)
	}

	w := p.Equip.Weapon()
	chance := p.MeleeSkill()
	ac := m.Race.AC
	for range rep.Blows {
		rep.Processed++
		if !PlayerHits(sess.Rng, chance, ac, m.Visible) {
			sess.Msgf("You miss %s.", m.Describe())
			continue
		}
		rep.Hits++
		sess.Msgf("You hit %s.", m.Describe())

		dam := meleeDamage(sess, p, m, w, tech)
		if p.ConfusingTouch {
			confusingTouch(sess, p, m)
		}
		rep.Damage += min(dam, m.HP)
		dead, fear := MonsterTakeHit(sess, m, dam, "")
		if dead {
			rep.DefenderDied = true
			break
		}
		if monsterAura(sess, p, m) {
			rep.AttackerDied = true
			m.Lore.NoteDeath()
			break
		}
		if fear {
			m.Fled = true
			rep.Fled = true
			break
		}
	}

	sess.Logger.Debug("player attack",
		zap.String("monster", m.ID),
		zap.String("race", m.Race.ID),
		zap.Stringer("technique", tech),
		zap.Int("blows", rep.Blows),
		zap.Int("processed", rep.Processed),
		zap.Int("hits", rep.Hits),
		zap.Int("damage", rep.Damage),
		zap.Bool("monster_dead", rep.DefenderDied),
		zap.Bool("player_dead", rep.AttackerDied),
	)
	return rep
}

// meleeDamage rolls one landed blow: weapon dice times the best slay, brand
// or technique multiplier, then criticals and flat bonuses.
func meleeDamage(sess *session.GameSession, p *actor.Player, m *actor.Monster, w *inventory.Item, tech Technique) int {
	if w == nil {
		return max(0, sess.Damroll(1, 2)+p.ToDam)
	}
	mult := TechniqueMultiplier(WeaponMultiplier(w, m), w.Brands, m, tech, p)
	dam := sess.Roll(w.Dice) * mult / BaseMultiplier
	dam = PlayerCritical(sess, w.Weight, w.ToHit, dam)
	return max(0, dam+w.ToDam+p.ToDam)
}

// confusingTouch spends the player's glowing hands on m.
func confusingTouch(sess *session.GameSession, p *actor.Player, m *actor.Monster) {
	p.ConfusingTouch = false
	sess.Msg("Your hands stop glowing.")
	p.Raise(actor.RedrawStatus)
	if m.Race.Flags.Has(race.NoConf) {
		m.Learn(race.NoConf)
		sess.Msgf("%s is unaffected.", message.Capitalize(m.Describe()))
		return
	}
	if sess.RandInt0(100) < m.Race.Level {
		sess.Msgf("%s is unaffected.", message.Capitalize(m.Describe()))
		return
	}
	sess.Status.Apply(m, status.Request{
		Kind:   status.Confused,
		Amount: 10 + sess.RandInt0(p.Level())/5,
	})
}
