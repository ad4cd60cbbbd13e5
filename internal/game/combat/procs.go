package combat

import (
	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/inventory"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/save"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
	"github.com/cory-johannsen/deepdelve/internal/game/virtue"
)

// adjDexSafe is the percentage bonus to guarding gold and items, indexed by
// actor.Index of current dexterity.
var adjDexSafe = [38]int{
	0, 1, 2, 3, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9,
	10, 10, 15, 15, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80, 90,
	100, 100, 100, 100, 100, 100, 100, 100,
}

// disenchantSlots are the equipment slots disenchantment can strike.
var disenchantSlots = []inventory.Slot{
	inventory.SlotWeapon, inventory.SlotBow, inventory.SlotBody, inventory.SlotCloak,
	inventory.SlotShield, inventory.SlotHead, inventory.SlotHands, inventory.SlotFeet,
}

// drainStat lowers s by a temporary drain, reporting the sustain or the loss.
func drainStat(sess *session.GameSession, p *actor.Player, s actor.Stat) bool {
	if p.Stats.Sustain[s] {
		sess.Msgf("You feel very %s for a moment, but the feeling passes.", s.Adjective())
		return true
	}
	if p.DrainStat(s, 10, sess.Rng) {
		sess.Msgf("You feel very %s.", s.Adjective())
		return true
	}
	return false
}

// drainExp removes drain experience, or a tenth of it when life is held. A
// held life resists outright with probability holdProb percent.
// It reports whether any experience was lost.
func drainExp(sess *session.GameSession, p *actor.Player, drain, holdProb int) bool {
	if p.HoldLife && sess.RandInt0(100) < holdProb {
		sess.Msg("You keep hold of your life force!")
		return false
	}
	if p.HoldLife {
		sess.Msg("You feel your life slipping away!")
		p.LoseExp(drain / 10)
	} else {
		sess.Msg("You feel your life draining away!")
		p.LoseExp(drain)
	}
	return true
}

// protectsBelongings is the dexterity check against theft.
func protectsBelongings(sess *session.GameSession, p *actor.Player) bool {
	if p.Timed().Has(status.Paralyzed) {
		return false
	}
	idx := actor.Index(p.Stats.Cur[actor.Dex])
	return sess.RandInt0(100) < adjDexSafe[idx]+p.Level()
}

// stealGold moves some of the player's gold to m.
func stealGold(sess *session.GameSession, p *actor.Player, m *actor.Monster) {
	gold := p.Gold/10 + sess.RandInt1(25)
	if gold < 2 {
		gold = 2
	}
	if gold > 5000 {
		gold = p.Gold/20 + sess.RandInt1(3000)
	}
	gold = min(gold, p.Gold)
	p.Gold -= gold
	switch {
	case gold <= 0:
		sess.Msg("Nothing was stolen.")
	case p.Gold > 0:
		sess.Msg("Your purse feels lighter.")
		sess.Msgf("%d coins were stolen!", gold)
		p.ChangeVirtue(virtue.Sacrifice, 1, sess.Rng)
	default:
		sess.Msg("Your purse feels lighter.")
		sess.Msg("All of your coins were stolen!")
		p.ChangeVirtue(virtue.Sacrifice, 2, sess.Rng)
	}
	if gold > 0 {
		m.HeldGold += gold
		p.Raise(actor.RedrawGold)
	}
}

// stealItem moves one unit of a random non-artifact pack item to m.
// It reports whether anything was taken.
func stealItem(sess *session.GameSession, p *actor.Player, m *actor.Monster) bool {
	for range 10 {
		if p.Pack.Len() == 0 {
			return false
		}
		slot := sess.RandInt0(p.Pack.Len())
		it := p.Pack.Item(slot)
		if it == nil || it.Quantity <= 0 || it.Artifact {
			continue
		}
		if it.Quantity > 1 {
			sess.Msgf("One of your %s was stolen!", it.Name)
		} else {
			sess.Msgf("Your %s was stolen!", it.Name)
		}
		m.Held = append(m.Held, it.Split(1))
		p.Pack.Increase(slot, -1)
		p.Pack.Optimize()
		return true
	}
	return false
}

// eatFood destroys one unit of a random food item. It reports success.
func eatFood(sess *session.GameSession, p *actor.Player) bool {
	for range 10 {
		if p.Pack.Len() == 0 {
			return false
		}
		slot := sess.RandInt0(p.Pack.Len())
		it := p.Pack.Item(slot)
		if it == nil || it.Kind != inventory.KindFood || it.Quantity <= 0 {
			continue
		}
		if it.Quantity > 1 {
			sess.Msgf("One of your %s was eaten!", it.Name)
		} else {
			sess.Msgf("Your %s was eaten!", it.Name)
		}
		p.Pack.Increase(slot, -1)
		p.Pack.Optimize()
		return true
	}
	return false
}

// drainLight burns fuel from the wielded light source.
func drainLight(sess *session.GameSession, p *actor.Player) bool {
	light := p.Equip.Get(inventory.SlotLight)
	if light == nil || light.Artifact || light.Fuel <= 0 {
		return false
	}
	light.Fuel = max(1, light.Fuel-(250+sess.RandInt1(250)))
	if !p.Timed().Has(status.Blind) {
		sess.Msg("Your light dims!")
	}
	p.Raise(actor.RedrawEquip)
	return true
}

// disenchant strips bonuses from one random worn item. Artifacts usually
// resist.
func disenchant(sess *session.GameSession, p *actor.Player) bool {
	slot := disenchantSlots[sess.RandInt0(len(disenchantSlots))]
	it := p.Equip.Get(slot)
	if it == nil || (it.ToHit <= 0 && it.ToDam <= 0 && it.ToAC <= 0) {
		return false
	}
	if it.Artifact && sess.RandInt0(100) < 71 {
		sess.Msgf("Your %s resists disenchantment!", it.Name)
		return true
	}
	lower := func(v *int) {
		if *v > 0 {
			*v--
		}
		if *v > 5 && sess.RandInt0(100) < 20 {
			*v--
		}
	}
	lower(&it.ToHit)
	lower(&it.ToDam)
	lower(&it.ToAC)
	sess.Msgf("Your %s was disenchanted!", it.Name)
	p.Raise(actor.UpdateBonus | actor.RedrawEquip)
	return true
}

// drainCharges empties one charged device and feeds the energy to m.
func drainCharges(sess *session.GameSession, p *actor.Player, m *actor.Monster) bool {
	for range 10 {
		if p.Pack.Len() == 0 {
			return false
		}
		it := p.Pack.Item(sess.RandInt0(p.Pack.Len()))
		if it == nil || it.Charges <= 0 {
			continue
		}
		sess.Msg("Energy drains from your pack!")
		if m.Heal(m.Level()*it.Charges) > 0 {
			sess.Msgf("%s appears healthier.", message.Capitalize(m.Describe()))
		}
		it.Charges = 0
		return true
	}
	return false
}

// curseEquipment places a curse on a random worn non-artifact item unless the
// player saves.
func curseEquipment(sess *session.GameSession, p *actor.Player, power int) bool {
	if save.Resists(sess.Rng, power, p, save.General) {
		sess.Msg("You feel as if someone is watching over you.")
		return false
	}
	filled := p.Equip.Filled()
	if len(filled) == 0 {
		return false
	}
	it := p.Equip.Get(filled[sess.RandInt0(len(filled))])
	if it.Artifact || it.Cursed {
		return false
	}
	it.Cursed = true
	sess.Msgf("There is a malignant black aura surrounding your %s...", it.Name)
	p.Raise(actor.UpdateBonus)
	return true
}

// minusAC damages a random armour piece. It reports whether armour absorbed
// part of an acid attack.
func minusAC(sess *session.GameSession, p *actor.Player) bool {
	pieces := p.Equip.ArmorPieces()
	if len(pieces) == 0 {
		return false
	}
	it := p.Equip.Get(pieces[sess.RandInt0(len(pieces))])
	if it.AC+it.ToAC <= 0 {
		return false
	}
	if it.Artifact {
		sess.Msgf("Your %s is unaffected!", it.Name)
		return true
	}
	sess.Msgf("Your %s is damaged!", it.Name)
	it.ToAC--
	p.Raise(actor.UpdateBonus | actor.RedrawEquip)
	return true
}

// fragile lists the item kinds each element destroys in the pack.
var fragile = map[element.Element][]inventory.Kind{
	element.Acid: {inventory.KindScroll, inventory.KindStaff, inventory.KindJunk},
	element.Elec: {inventory.KindRing, inventory.KindWand},
	element.Fire: {inventory.KindScroll, inventory.KindStaff, inventory.KindFood},
	element.Cold: {inventory.KindPotion},
}

// inventoryDamage destroys each fragile unit with probability perc percent.
func inventoryDamage(sess *session.GameSession, p *actor.Player, e element.Element, perc int) int {
	destroyed := 0
	for _, kind := range fragile[e] {
		for _, slot := range p.Pack.SlotsOf(kind) {
			it := p.Pack.Item(slot)
			if it == nil || it.Artifact {
				continue
			}
			amt := 0
			for range it.Quantity {
				if sess.RandInt0(100) < perc {
					amt++
				}
			}
			if amt == 0 {
				continue
			}
			switch {
			case amt == it.Quantity && amt > 1:
				sess.Msgf("All of your %s were destroyed!", it.Name)
			case amt == it.Quantity:
				sess.Msgf("Your %s was destroyed!", it.Name)
			default:
				sess.Msgf("%d of your %s were destroyed!", amt, it.Name)
			}
			p.Pack.Increase(slot, -amt)
			destroyed += amt
		}
	}
	if destroyed > 0 {
		p.Pack.Optimize()
	}
	return destroyed
}

// learnSmart lets m remember how the player defends against e. Stupid races
// never learn; ordinary races learn half the time.
func learnSmart(sess *session.GameSession, m *actor.Monster, p *actor.Player, e element.Element) {
	if !sess.Options.SmartLearn || m.Race.Flags.Has(race.Stupid) {
		return
	}
	if !m.Race.Flags.Has(race.Smart) && sess.RandInt0(100) < 50 {
		return
	}
	if p.Resist.Has(e) {
		m.Smart.Resist = m.Smart.Resist.With(e)
	}
	if p.TempResist.Has(e) {
		m.Smart.Opposed = m.Smart.Opposed.With(e)
	}
	if p.Immune.Has(e) {
		m.Smart.Immune = m.Smart.Immune.With(e)
	}
}
