package combat

import (
	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
)

// hurtChance is the one-in odds that unresisted elemental damage drains a stat.
const hurtChance = 16

var elementStat = map[element.Element]actor.Stat{
	element.Acid: actor.Chr,
	element.Elec: actor.Dex,
	element.Fire: actor.Str,
	element.Cold: actor.Str,
}

// ElementDamage applies dam of element e to the player and returns the hit
// points lost. Immunity negates it; vulnerability doubles it; permanent and
// temporary resistance each cut it to a third. Unresisted damage may drain a
// stat; acid may be partly absorbed by armour; the pack's fragile items can
// be destroyed unless both resistances are up.
//
// Precondition: e is one of the four base elements.
func ElementDamage(sess *session.GameSession, p *actor.Player, e element.Element, dam int, killer string) int {
	if dam <= 0 || p.Immune.Has(e) {
		return 0
	}
	perc := 1
	switch {
	case dam >= 60:
		perc = 3
	case dam >= 30:
		perc = 2
	}
	resist, opposed := p.Resist.Has(e), p.TempResist.Has(e)
	if p.Vulnerable.Has(e) {
		dam *= 2
	}
	if resist {
		dam = (dam + 2) / 3
	}
	if opposed {
		dam = (dam + 2) / 3
	}
	if !resist && !opposed && sess.OneIn(hurtChance) {
		if s, ok := elementStat[e]; ok {
			drainStat(sess, p, s)
		}
	}
	if e == element.Acid && minusAC(sess, p) {
		dam = (dam + 1) / 2
	}
	lost := p.TakeHit(dam, killer)
	if !(resist && opposed) {
		inventoryDamage(sess, p, e, perc)
	}
	return lost
}
