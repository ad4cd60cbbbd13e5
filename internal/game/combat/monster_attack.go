package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

// glyphStrength bounds the level roll a monster must beat to break a glyph.
const glyphStrength = 550

// MonsterAttack resolves one melee action by m against the session player.
//
// Blows resolve in order. The loop stops as soon as the monster dies to
// retaliation, the player dies, or a thief blinks away; remaining blows are
// not attempted.
//
// Precondition: m belongs to sess.
// Postcondition: the report's Processed <= Blows.
func MonsterAttack(sess *session.GameSession, m *actor.Monster) AttackReport {
	p := sess.Player
	rep := AttackReport{AttackerID: m.ID, DefenderID: PlayerID}
	if !m.Alive() || p.Dead || m.Race.Flags.Has(race.NeverBlow) {
		return rep
	}
	for _, b := range m.Race.Blows {
		if b.Method != race.MethodNone {
			rep.Blows++
		}
	}
	rlev := max(1, m.Race.Level)
	wasAfraid := m.Timed().Has(status.Afraid)
	name := message.Capitalize(m.Describe())

	if p.OnGlyph {
		if sess.RandInt1(glyphStrength) >= m.Race.Level {
			sess.Msgf("%s is repelled by the glyph of warding.", name)
			rep.Blocked = BlockGlyph
			return rep
		}
		sess.Msg("The rune of protection is broken!")
		p.OnGlyph = false
	}

	for i, b := range m.Race.Blows {
		if b.Method == race.MethodNone {
			break
		}
		rep.Processed++
		c := &blowCtx{sess: sess, m: m, p: p, blow: b, rlev: rlev, killer: m.Race.Describe()}

		if b.Effect == race.EffectNone || MonsterHits(sess.Rng, b.Effect.Power(), rlev, p.ArmorClass(), m.Timed().Has(status.Stunned)) {
			if p.Timed().Has(status.ProtEvil) && m.Race.Flags.Has(race.Evil) &&
				p.Level() >= rlev && sess.RandInt0(100)+p.Level() > 50 {
				m.Learn(race.Evil)
				sess.Msgf("%s is repelled.", name)
				rep.Repelled++
				noteBlow(m, i, c)
				continue
			}
			if p.Decoy() {
				sess.Msg(status.DecoyMessage)
				rep.Absorbed++
				continue
			}
			rep.Hits++
			sess.Msgf("%s %s", name, b.Method.Verb())
			c.damage = sess.Roll(b.Dice)
			blowHandlers[b.Effect](c)

			if !p.Dead {
				blowCriticals(sess, p, b, c.damage)
			}
			if b.Method == race.Explode {
				m.Hurt(m.HP)
				monsterDies(sess, m, " explodes into tiny shreds.", false)
			}
			if m.Race.OnHit != "" && sess.OnHit != nil && !p.Dead {
				bonus := sess.OnHit(m.Race.OnHit, m.Race.ID, p.Name, c.dealt)
				c.dealt += p.TakeHit(bonus, c.killer)
			}
			rep.Damage += c.dealt
			if b.Method.Touches() && m.Alive() && !p.Dead && playerShields(sess, p, m) {
				c.blinked = false
			}
		} else if b.Method.Misses() && m.Visible {
			sess.Msgf("%s misses you.", name)
		}
		noteBlow(m, i, c)

		if m.Dead {
			rep.AttackerDied = true
			break
		}
		if p.Dead {
			rep.DefenderDied = true
			break
		}
		if !wasAfraid && m.Timed().Has(status.Afraid) {
			m.Fled = true
			rep.Fled = true
			break
		}
		if c.blinked {
			rep.Blinked = true
			break
		}
	}

	if rep.Blinked && m.Alive() {
		sess.Msg("There is a puff of smoke!")
		m.Fled = true
	}
	if p.Dead {
		m.Lore.NoteDeath()
	}
	sess.Logger.Debug("monster attack",
		zap.String("monster", m.ID),
		zap.String("race", m.Race.ID),
		zap.Int("blows", rep.Blows),
		zap.Int("processed", rep.Processed),
		zap.Int("hits", rep.Hits),
		zap.Int("damage", rep.Damage),
		zap.Bool("player_dead", rep.DefenderDied),
		zap.Bool("attacker_dead", rep.AttackerDied),
		zap.Bool("blinked", rep.Blinked),
	)
	return rep
}

// noteBlow counts a witnessed blow in lore once it has told the player
// something, or once the player has seen it often enough to know it anyway.
func noteBlow(m *actor.Monster, i int, c *blowCtx) {
	if !m.Observed() {
		return
	}
	if c.obvious || c.dealt > 0 || m.Lore.BlowSeen(i) > 10 {
		m.Lore.NoteBlow(i)
	}
}

// blowCriticals rolls the cut or stun a cutting or stunning method inflicts.
// A method that can do both picks one at random.
func blowCriticals(sess *session.GameSession, p *actor.Player, b race.Blow, dam int) {
	cut, stun := b.Method.Cuts(), b.Method.Stuns()
	if cut && stun {
		if sess.RandInt0(100) < 50 {
			cut = false
		} else {
			stun = false
		}
	}
	if cut {
		if k := CutAmount(sess.Rng, MonsterCritical(sess.Rng, b.Dice, dam)); k > 0 {
			sess.Status.Apply(p, status.Request{Kind: status.Cut, Amount: k})
		}
	}
	if stun {
		if k := StunAmount(sess.Rng, MonsterCritical(sess.Rng, b.Dice, dam)); k > 0 {
			sess.Status.Apply(p, status.Request{Kind: status.Stunned, Amount: k})
		}
	}
}
