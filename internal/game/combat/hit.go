package combat

import "github.com/cory-johannsen/deepdelve/internal/game/dice"

// armourCap bounds how much armour class counts against damage.
const armourCap = 150

// MonsterHits decides whether a monster blow of the given effect power lands
// against armour class ac. A stunned monster fails half its blows outright;
// otherwise 5% of blows always hit and 5% always miss.
func MonsterHits(src dice.Source, power, level, ac int, stunned bool) bool {
	k := dice.RandInt0(src, 100)
	if stunned && dice.OneIn(src, 2) {
		return false
	}
	if k < 10 {
		return k < 5
	}
	i := power + level*3
	return i > 0 && dice.RandInt1(src, i) > ac*3/4
}

// PlayerHits decides whether a player blow with skill chance lands against
// armour class ac. Unseen targets halve the chance.
func PlayerHits(src dice.Source, chance, ac int, visible bool) bool {
	k := dice.RandInt0(src, 100)
	if k < 10 {
		return k < 5
	}
	if chance <= 0 {
		return false
	}
	if !visible {
		chance = (chance + 1) / 2
	}
	return dice.RandInt0(src, chance) >= ac*3/4
}

// ArmourReduce removes the share of dam that armour class ac absorbs.
func ArmourReduce(dam, ac int) int {
	return dam - dam*min(ac, armourCap)/250
}
