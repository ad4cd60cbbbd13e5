package combat

import (
	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
)

type shieldRule struct {
	shield actor.Shields
	// elem is the element a monster must be immune to to ignore the shield.
	elem element.Element
	// evilOnly limits the shield to evil races.
	evilOnly bool
	text     string
	note     string
}

var shieldRules = []shieldRule{
	{actor.ShieldFire, element.Fire, false, "%s is suddenly very hot!", " turns into a pile of ash."},
	{actor.ShieldElec, element.Elec, false, "%s gets zapped!", " turns into a pile of cinder."},
	{actor.ShieldCold, element.Cold, false, "%s is very cold!", " was frozen."},
	{actor.ShardRobe, element.Shards, false, "%s is struck by shards!", " is shredded."},
	{actor.HolyAura, element.Holy, true, "%s is injured by holy power!", " is destroyed."},
	{actor.ForceAura, element.Force, false, "%s is injured by the Force.", " is destroyed."},
	{actor.ShadowCloak, element.Dark, false, "%s is enveloped by shadows!", " is destroyed."},
}

// playerShields retaliates against a monster that touched the player.
// It reports whether the monster died.
func playerShields(sess *session.GameSession, p *actor.Player, m *actor.Monster) bool {
	for _, r := range shieldRules {
		if !p.Shields.Has(r.shield) || !m.Alive() || p.Dead {
			continue
		}
		if r.evilOnly {
			if !m.Race.Flags.Has(race.Evil) {
				continue
			}
			m.Learn(race.Evil)
		}
		if m.ImmuneToElement(r.elem) {
			continue
		}
		sess.Msgf(r.text, message.Capitalize(m.Describe()))
		if dead, _ := MonsterTakeHit(sess, m, sess.Damroll(2, 6), r.note); dead {
			return true
		}
	}
	return false
}

type auraRule struct {
	flag race.Flags
	elem element.Element
	text string
}

var auraRules = []auraRule{
	{race.AuraFire, element.Fire, "You are suddenly very hot!"},
	{race.AuraCold, element.Cold, "You are suddenly very cold!"},
	{race.AuraElec, element.Elec, "You get zapped!"},
}

// monsterAura burns the player for touching m. Aura damage scales with the
// race level and each resistance cuts it to a third.
// It reports whether the player died.
func monsterAura(sess *session.GameSession, p *actor.Player, m *actor.Monster) bool {
	killer := m.Race.Describe()
	for _, r := range auraRules {
		if !m.Race.Flags.Has(r.flag) || p.Dead || p.Immune.Has(r.elem) {
			continue
		}
		dam := sess.Damroll(1+m.Race.Level/13, 1+m.Race.Level/7)
		sess.Msg(r.text)
		if p.TempResist.Has(r.elem) {
			dam = (dam + 2) / 3
		}
		if p.Resist.Has(r.elem) {
			dam = (dam + 2) / 3
		}
		p.TakeHit(dam, killer)
		m.Learn(r.flag)
	}
	return p.Dead
}
