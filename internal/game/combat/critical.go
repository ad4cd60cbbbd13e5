package combat

import (
	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
)

// MonsterCritical grades a monster blow that rolled dam on d. Blows under 95%
// of the dice maximum never crit; small blows crit only occasionally.
//
// Postcondition: returns 0 for no critical, otherwise a severity of 1 or more.
func MonsterCritical(src dice.Source, d dice.Dice, dam int) int {
	total := d.Max()
	if dam < total*19/20 {
		return 0
	}
	if dam < 20 && dice.RandInt0(src, 100) >= dam {
		return 0
	}
	bonus := 0
	if dam >= total && dam >= 40 {
		bonus++
	}
	if dam >= 20 {
		for dice.RandInt0(src, 100) < 2 {
			bonus++
		}
	}
	switch {
	case dam > 45:
		return 6 + bonus
	case dam > 33:
		return 5 + bonus
	case dam > 25:
		return 4 + bonus
	case dam > 18:
		return 3 + bonus
	case dam > 11:
		return 2 + bonus
	default:
		return 1 + bonus
	}
}

// CutAmount converts a critical severity into cut counter points.
func CutAmount(src dice.Source, k int) int {
	switch k {
	case 0:
		return 0
	case 1:
		return dice.RandInt1(src, 5)
	case 2:
		return dice.RandInt1(src, 5) + 5
	case 3:
		return dice.RandInt1(src, 20) + 20
	case 4:
		return dice.RandInt1(src, 50) + 50
	case 5:
		return dice.RandInt1(src, 100) + 100
	case 6:
		return 300
	default:
		return 500
	}
}

// StunAmount converts a critical severity into stun counter points.
func StunAmount(src dice.Source, k int) int {
	switch k {
	case 0:
		return 0
	case 1:
		return dice.RandInt1(src, 5)
	case 2:
		return dice.RandInt1(src, 5) + 10
	case 3:
		return dice.RandInt1(src, 10) + 20
	case 4:
		return dice.RandInt1(src, 15) + 30
	case 5:
		return dice.RandInt1(src, 20) + 40
	case 6:
		return 80
	default:
		return 150
	}
}

type critTier struct {
	below int
	text  string
	mul   int
	div   int
	add   int
}

var critTiers = []critTier{
	{400, "It was a good hit!", 2, 1, 5},
	{700, "It was a great hit!", 2, 1, 10},
	{900, "It was a superb hit!", 3, 1, 15},
	{1300, "It was a *GREAT* hit!", 3, 1, 20},
	{0, "It was a *SUPERB* hit!", 7, 2, 25},
}

// PlayerCritical may upgrade a player's melee damage. weight is the weapon
// weight in tenth-pounds and plus its to-hit bonus. The tier message is
// printed when a critical lands.
func PlayerCritical(sess *session.GameSession, weight, plus, dam int) int {
	i := weight + sess.Player.ToHit*3 + plus*5 + sess.Player.Level()*3
	if sess.RandInt1(5000) > i {
		return dam
	}
	k := weight + sess.RandInt1(650)
	for _, t := range critTiers {
		if t.below == 0 || k < t.below {
			sess.Msg(t.text)
			return dam*t.mul/t.div + t.add
		}
	}
	return dam
}
