package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

// DefaultMaxTurns bounds a duel when the session sets no limit.
const DefaultMaxTurns = 1000

// Outcome is how a duel ended.
type Outcome string

const (
	PlayerWon   Outcome = "player_won"
	MonsterWon  Outcome = "monster_won"
	MonsterGone Outcome = "monster_gone"
	Stalemate   Outcome = "stalemate"
)

// DuelResult summarises a fight to the finish.
type DuelResult struct {
	Outcome Outcome
	Turns   int
	// DamageDealt is what the player did to the monster.
	DamageDealt int
	// DamageTaken is what the monster did to the player.
	DamageTaken int
}

// Duel alternates player and monster attacks until one side dies, the
// monster leaves, or the turn limit passes. Each round ends with timed
// effects ticking on both sides.
func Duel(sess *session.GameSession, m *actor.Monster, tech Technique) DuelResult {
	limit := sess.Options.MaxTurns
	if limit <= 0 {
		limit = DefaultMaxTurns
	}
	p := sess.Player
	var res DuelResult
	for res.Turns < limit {
		res.Turns++
		sess.Advance()
		if !p.Timed().Has(status.Paralyzed) {
			rep := PlayerAttack(sess, m, tech)
			res.DamageDealt += rep.Damage
		}
		if p.Dead || !m.Alive() {
			break
		}
		if !m.Asleep() && !m.Timed().Has(status.Afraid) {
			hp := p.HP
			MonsterAttack(sess, m)
			res.DamageTaken += hp - p.HP
		}
		if p.Dead || !m.Alive() {
			break
		}
		res.DamageTaken += ProcessTimed(sess, m)
		if p.Dead {
			break
		}
	}
	switch {
	case p.Dead:
		res.Outcome = MonsterWon
	case m.Dead:
		res.Outcome = PlayerWon
	case m.Fled:
		res.Outcome = MonsterGone
	default:
		res.Outcome = Stalemate
	}
	sess.Logger.Info("duel finished",
		zap.String("race", m.Race.ID),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("turns", res.Turns),
		zap.Int("dealt", res.DamageDealt),
		zap.Int("taken", res.DamageTaken),
	)
	return res
}

// bleed maps a cut counter to hit points lost per turn.
func bleed(cut int) int {
	switch {
	case cut > 1000:
		return 200
	case cut > 200:
		return 80
	case cut > 100:
		return 32
	case cut > 50:
		return 16
	case cut > 25:
		return 7
	case cut > 10:
		return 3
	default:
		return 1
	}
}

// ProcessTimed applies one turn of poison and bleeding to the player, then
// ticks every status counter on the player and m. It returns the hit points
// the player lost.
func ProcessTimed(sess *session.GameSession, m *actor.Monster) int {
	p := sess.Player
	lost := 0
	if p.Timed().Has(status.Poisoned) {
		lost += p.TakeHit(1, "poison")
	}
	if cut := p.Timed().Get(status.Cut); cut > 0 {
		lost += p.TakeHit(bleed(cut), "a fatal wound")
	}
	if !p.Dead {
		sess.Status.Tick(p)
	}
	if m != nil && m.Alive() {
		sess.Status.Tick(m)
	}
	return lost
}
