// Package inventory models the items a character carries, wears, or leaves on
// the floor, and the slot-level mutators the combat engine uses for theft,
// fuel drain, and similar effects.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
)

// Kind classifies an item.
type Kind string

// Kind constants for Item.Kind.
const (
	KindWeapon Kind = "weapon"
	KindArmor  Kind = "armor"
	KindLight  Kind = "light"
	KindFood   Kind = "food"
	KindPotion Kind = "potion"
	KindScroll Kind = "scroll"
	KindWand   Kind = "wand"
	KindStaff  Kind = "staff"
	KindRing   Kind = "ring"
	KindAmulet Kind = "amulet"
	KindJunk   Kind = "junk"
	KindGold   Kind = "gold"
)

var validKinds = map[Kind]bool{
	KindWeapon: true, KindArmor: true, KindLight: true, KindFood: true,
	KindPotion: true, KindScroll: true, KindWand: true, KindStaff: true,
	KindRing: true, KindAmulet: true, KindJunk: true, KindGold: true,
}

// Slays is the bitset of race-keyed damage multipliers a weapon carries.
type Slays uint16

const (
	SlayAnimal Slays = 1 << iota
	SlayEvil
	SlayUndead
	SlayDemon
	SlayOrc
	SlayTroll
	SlayGiant
	SlayDragon
	SlayHuman
	KillDragon
	KillUndead
	KillDemon
)

var slayNames = []struct {
	slay Slays
	name string
}{
	{SlayAnimal, "animal"}, {SlayEvil, "evil"}, {SlayUndead, "undead"},
	{SlayDemon, "demon"}, {SlayOrc, "orc"}, {SlayTroll, "troll"},
	{SlayGiant, "giant"}, {SlayDragon, "dragon"}, {SlayHuman, "human"},
	{KillDragon, "kill_dragon"}, {KillUndead, "kill_undead"}, {KillDemon, "kill_demon"},
}

// Has reports whether s carries every slay in o.
func (s Slays) Has(o Slays) bool {
	return o != 0 && s&o == o
}

// UnmarshalYAML reads a list of slay names.
func (s *Slays) UnmarshalYAML(node *yaml.Node) error {
	var list []string
	if err := node.Decode(&list); err != nil {
		return fmt.Errorf("line %d: slays must be a list: %w", node.Line, err)
	}
	var out Slays
outer:
	for _, n := range list {
		n = strings.ToLower(strings.TrimSpace(n))
		for _, sn := range slayNames {
			if sn.name == n {
				out |= sn.slay
				continue outer
			}
		}
		return fmt.Errorf("line %d: unknown slay %q", node.Line, n)
	}
	*s = out
	return nil
}

// Item is one stack of identical objects.
//
// Weight is in tenth-pounds per unit.
type Item struct {
	InstanceID string      `yaml:"-"`
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Kind       Kind        `yaml:"kind"`
	Quantity   int         `yaml:"quantity"`
	Weight     int         `yaml:"weight"`
	Artifact   bool        `yaml:"artifact"`
	Cursed     bool        `yaml:"cursed"`
	Dice       dice.Dice   `yaml:"dice"`
	ToHit      int         `yaml:"to_hit"`
	ToDam      int         `yaml:"to_dam"`
	AC         int         `yaml:"ac"`
	ToAC       int         `yaml:"to_ac"`
	Brands     element.Set `yaml:"brands"`
	Slays      Slays       `yaml:"slays"`
	Fuel       int         `yaml:"fuel"`
	Charges    int         `yaml:"charges"`
}

// Validate checks that the item satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (it *Item) Validate() error {
	var errs []error
	if it.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if it.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[it.Kind] {
		errs = append(errs, fmt.Errorf("kind %q is not valid", it.Kind))
	}
	if it.Quantity < 0 {
		errs = append(errs, errors.New("quantity must be >= 0"))
	}
	if it.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q: %w", it.ID, errors.Join(errs...))
	}
	return nil
}

// Spawn copies it into a fresh instance with a new InstanceID. A zero quantity
// becomes one.
func (it Item) Spawn() *Item {
	out := it
	out.InstanceID = uuid.New().String()
	if out.Quantity == 0 {
		out.Quantity = 1
	}
	return &out
}

// Split copies qty units of it into a new instance without touching it.
func (it *Item) Split(qty int) *Item {
	out := *it
	out.InstanceID = uuid.New().String()
	out.Quantity = qty
	return &out
}

// Describe names the stack for messages.
func (it *Item) Describe() string {
	if it.Quantity > 1 {
		return fmt.Sprintf("%d %s", it.Quantity, it.Name)
	}
	return it.Name
}

// TotalWeight is Weight times Quantity.
func (it *Item) TotalWeight() int {
	return it.Weight * it.Quantity
}
