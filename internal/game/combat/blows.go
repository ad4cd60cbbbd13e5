package combat

import (
	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

// blowCtx carries one landed monster blow through its effect handler.
type blowCtx struct {
	sess   *session.GameSession
	m      *actor.Monster
	p      *actor.Player
	blow   race.Blow
	rlev   int
	killer string

	// damage is the rolled damage; handlers may reduce it for armour.
	damage int
	// dealt is the hit points the player actually lost.
	dealt   int
	obvious bool
	blinked bool
}

// hit applies dam to the player.
func (c *blowCtx) hit(dam int) {
	c.dealt += c.p.TakeHit(dam, c.killer)
}

// inflict extends a player status; a visible change makes the blow obvious.
func (c *blowCtx) inflict(kind status.Kind, amount int, saves bool) {
	res := c.sess.Status.Apply(c.p, status.Request{
		Kind:   kind,
		Amount: amount,
		Save:   saves,
		Power:  c.blow.Effect.Power(),
		Fresh:  kind == status.Paralyzed,
	})
	if res.Outcome == status.Applied || res.Outcome == status.Unaffected || res.Outcome == status.Resisted {
		c.obvious = true
	}
}

func (c *blowCtx) learn(e element.Element) {
	learnSmart(c.sess, c.m, c.p, e)
}

type blowHandler func(c *blowCtx)

// blowHandlers maps every effect to its resolution. Each handler assumes the
// blow has already passed the hit check and the pre-effect gates.
var blowHandlers = map[race.Effect]blowHandler{
	race.EffectNone: effectNone,
	race.Hurt:       effectHurt,
	race.SuperHurt:  effectSuperHurt,
	race.Poison:     effectPoison,
	race.UnBonus:    effectUnBonus,
	race.UnPower:    effectUnPower,
	race.EatGold:    effectEatGold,
	race.EatItem:    effectEatItem,
	race.EatFood:    effectEatFood,
	race.EatLight:   effectEatLight,
	race.Acid:       elementalEffect(element.Acid, "You are covered in acid!"),
	race.Elec:       elementalEffect(element.Elec, "You are struck by electricity!"),
	race.Fire:       elementalEffect(element.Fire, "You are enveloped in flames!"),
	race.Cold:       elementalEffect(element.Cold, "You are covered with frost!"),
	race.Blind:      effectBlind,
	race.Confuse:    effectConfuse,
	race.Terrify:    effectTerrify,
	race.Paralyze:   effectParalyze,
	race.LoseStr:    loseStat(actor.Str),
	race.LoseInt:    loseStat(actor.Int),
	race.LoseWis:    loseStat(actor.Wis),
	race.LoseDex:    loseStat(actor.Dex),
	race.LoseCon:    loseStat(actor.Con),
	race.LoseChr:    loseStat(actor.Chr),
	race.LoseAll:    effectLoseAll,
	race.Shatter:    effectShatter,
	race.Exp10:      drainLife(10, 95),
	race.Exp20:      drainLife(20, 90),
	race.Exp40:      drainLife(40, 75),
	race.Exp80:      drainLife(80, 50),
	race.Disease:    effectDisease,
	race.ExpVamp:    effectExpVamp,
	race.DrainMana:  effectDrainMana,
	race.Inertia:    effectInertia,
	race.Stun:       effectStun,
	race.Curse:      effectCurse,
}

func effectNone(c *blowCtx) {
	c.obvious = true
	c.damage = 0
}

func effectHurt(c *blowCtx) {
	c.obvious = true
	c.damage = ArmourReduce(c.damage, c.p.ArmorClass())
	c.hit(c.damage)
}

// effectSuperHurt may land a critical worth twice the armour-reduced damage;
// otherwise it resolves exactly as Hurt.
func effectSuperHurt(c *blowCtx) {
	ac := c.p.ArmorClass()
	if c.sess.RandInt1(c.rlev*2+300) > ac+200 || c.sess.OneIn(13) {
		c.obvious = true
		c.sess.Msg("It was a critical hit!")
		c.damage = max(c.damage, ArmourReduce(c.damage, ac)*2)
		c.hit(c.damage)
		return
	}
	effectHurt(c)
}

func effectPoison(c *blowCtx) {
	c.inflict(status.Poisoned, c.sess.RandInt1(c.rlev)+5, false)
	c.hit(c.damage)
	c.learn(element.Poison)
}

func effectUnBonus(c *blowCtx) {
	if !c.p.Resists(element.Disenchant) && disenchant(c.sess, c.p) {
		c.obvious = true
	}
	c.hit(c.damage)
	c.learn(element.Disenchant)
}

func effectUnPower(c *blowCtx) {
	c.hit(c.damage)
	if !c.p.Dead && drainCharges(c.sess, c.p, c.m) {
		c.obvious = true
	}
}

func effectEatGold(c *blowCtx) {
	c.obvious = true
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	if protectsBelongings(c.sess, c.p) {
		c.sess.Msg("You quickly protect your money pouch!")
		c.blinked = c.sess.RandInt0(3) != 0
		return
	}
	stealGold(c.sess, c.p, c.m)
	c.blinked = true
}

func effectEatItem(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	if protectsBelongings(c.sess, c.p) {
		c.obvious = true
		c.sess.Msg("You grab hold of your backpack!")
		c.blinked = true
		return
	}
	if stealItem(c.sess, c.p, c.m) {
		c.obvious = true
		c.blinked = true
	}
}

func effectEatFood(c *blowCtx) {
	c.hit(c.damage)
	if !c.p.Dead && eatFood(c.sess, c.p) {
		c.obvious = true
	}
}

func effectEatLight(c *blowCtx) {
	c.hit(c.damage)
	if !c.p.Dead && drainLight(c.sess, c.p) {
		c.obvious = true
	}
}

func elementalEffect(e element.Element, text string) blowHandler {
	return func(c *blowCtx) {
		c.obvious = true
		c.sess.Msg(text)
		c.dealt += ElementDamage(c.sess, c.p, e, c.damage, c.killer)
		c.learn(e)
	}
}

func effectBlind(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	c.inflict(status.Blind, 10+c.sess.RandInt1(c.rlev), false)
	c.learn(element.Blindness)
}

func effectConfuse(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	c.inflict(status.Confused, 3+c.sess.RandInt1(c.rlev), false)
	c.learn(element.Confusion)
}

func effectTerrify(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	c.inflict(status.Afraid, 3+c.sess.RandInt1(c.rlev), true)
	c.learn(element.Fear)
}

func effectParalyze(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	c.inflict(status.Paralyzed, 3+c.sess.RandInt1(c.rlev), true)
	c.learn(element.FreeAction)
}

func loseStat(s actor.Stat) blowHandler {
	return func(c *blowCtx) {
		c.hit(c.damage)
		if !c.p.Dead && drainStat(c.sess, c.p, s) {
			c.obvious = true
		}
	}
}

func effectLoseAll(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	for s := actor.Str; s < actor.NumStats; s++ {
		if drainStat(c.sess, c.p, s) {
			c.obvious = true
		}
	}
}

func effectShatter(c *blowCtx) {
	c.obvious = true
	c.damage = ArmourReduce(c.damage, c.p.ArmorClass())
	c.hit(c.damage)
	if c.damage > 23 && !c.p.Dead {
		c.sess.Msg("The floor shakes violently!")
	}
}

// drainLife builds an experience drain of n d6 plus 2% of current experience.
func drainLife(n, holdProb int) blowHandler {
	return func(c *blowCtx) {
		c.obvious = true
		c.hit(c.damage)
		if c.p.Dead {
			return
		}
		drainExp(c.sess, c.p, c.sess.Damroll(n, 6)+(c.p.Exp/100)*2, holdProb)
		c.learn(element.Nether)
	}
}

func effectDisease(c *blowCtx) {
	c.inflict(status.Poisoned, c.sess.RandInt1(c.rlev)+5, false)
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	if c.sess.RandInt1(100) < 11 && drainStat(c.sess, c.p, actor.Con) {
		c.obvious = true
	}
	c.learn(element.Poison)
}

func effectExpVamp(c *blowCtx) {
	c.obvious = true
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	drained := drainExp(c.sess, c.p, c.sess.Damroll(20, 6)+(c.p.Exp/100)*2, 50)
	if drained && c.m.Race.IsLiving() && c.m.Heal(c.damage) > 0 {
		c.sess.Msgf("%s appears healthier.", message.Capitalize(c.m.Describe()))
	}
	c.learn(element.Nether)
}

func effectDrainMana(c *blowCtx) {
	c.obvious = true
	if c.p.SP <= 0 {
		return
	}
	c.p.SP = max(0, c.p.SP-c.damage)
	c.p.Raise(actor.RedrawMana)
	c.sess.Msg("Your mind is drained!")
}

func effectInertia(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	c.inflict(status.Slow, 4+c.sess.RandInt0(c.rlev/10), false)
	c.learn(element.Inertia)
}

func effectStun(c *blowCtx) {
	c.hit(c.damage)
	if c.p.Dead {
		return
	}
	c.inflict(status.Stunned, 10+c.sess.RandInt1(max(1, c.rlev/4)), false)
	c.learn(element.Sound)
}

func effectCurse(c *blowCtx) {
	c.hit(c.damage)
	if !c.p.Dead && curseEquipment(c.sess, c.p, c.blow.Effect.Power()+c.rlev) {
		c.obvious = true
	}
}
