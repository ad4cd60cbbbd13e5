package inventory

import "sort"

// Slot identifies an equipment slot.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotBow    Slot = "bow"
	SlotRing1  Slot = "ring_1"
	SlotRing2  Slot = "ring_2"
	SlotAmulet Slot = "amulet"
	SlotLight  Slot = "light"
	SlotBody   Slot = "body"
	SlotCloak  Slot = "cloak"
	SlotShield Slot = "shield"
	SlotHead   Slot = "head"
	SlotHands  Slot = "hands"
	SlotFeet   Slot = "feet"
)

// armorSlots are the slots whose items contribute armour class.
var armorSlots = []Slot{SlotBody, SlotCloak, SlotShield, SlotHead, SlotHands, SlotFeet}

// ValidSlots returns every equipment slot.
func ValidSlots() []Slot {
	return []Slot{SlotWeapon, SlotBow, SlotRing1, SlotRing2, SlotAmulet, SlotLight,
		SlotBody, SlotCloak, SlotShield, SlotHead, SlotHands, SlotFeet}
}

// Equipment is what a character wears and wields.
// It is not safe for concurrent use.
type Equipment struct {
	items map[Slot]*Item
}

// NewEquipment creates empty Equipment.
func NewEquipment() *Equipment {
	return &Equipment{items: make(map[Slot]*Item)}
}

// Wear puts it in slot and returns whatever was there.
func (e *Equipment) Wear(slot Slot, it *Item) *Item {
	prev := e.items[slot]
	if it == nil {
		delete(e.items, slot)
	} else {
		e.items[slot] = it
	}
	return prev
}

// Get returns the item in slot, or nil.
func (e *Equipment) Get(slot Slot) *Item {
	return e.items[slot]
}

// Weapon returns the wielded weapon, or nil when fighting bare-handed.
func (e *Equipment) Weapon() *Item {
	return e.items[SlotWeapon]
}

// Filled returns the occupied slots sorted by name.
func (e *Equipment) Filled() []Slot {
	out := make([]Slot, 0, len(e.items))
	for s := range e.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ArmorPieces returns the occupied armour slots in body order.
func (e *Equipment) ArmorPieces() []Slot {
	var out []Slot
	for _, s := range armorSlots {
		if e.items[s] != nil {
			out = append(out, s)
		}
	}
	return out
}

// ArmorClass sums base and magical armour class over every worn item.
func (e *Equipment) ArmorClass() int {
	total := 0
	for _, it := range e.items {
		total += it.AC + it.ToAC
	}
	return total
}

// Weight is the total weight of worn items in tenth-pounds.
func (e *Equipment) Weight() int {
	total := 0
	for _, it := range e.items {
		total += it.TotalWeight()
	}
	return total
}
