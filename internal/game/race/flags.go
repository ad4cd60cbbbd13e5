package race

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Flags is the bitset of race descriptor flags.
type Flags uint64

const (
	Unique Flags = 1 << iota
	Questor
	Evil
	Good
	Undead
	Demon
	Dragon
	Orc
	Troll
	Giant
	Animal
	Human
	Nonliving
	HurtRock
	HurtFire
	HurtCold
	HurtLight
	NoConf
	NoFear
	NoSleep
	NoStun
	Smart
	Stupid
	ResMagic
	NeverBlow
	AuraFire
	AuraElec
	AuraCold
	EmptyMind
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Unique, "UNIQUE"}, {Questor, "QUESTOR"}, {Evil, "EVIL"}, {Good, "GOOD"},
	{Undead, "UNDEAD"}, {Demon, "DEMON"}, {Dragon, "DRAGON"}, {Orc, "ORC"},
	{Troll, "TROLL"}, {Giant, "GIANT"}, {Animal, "ANIMAL"}, {Human, "HUMAN"},
	{Nonliving, "NONLIVING"}, {HurtRock, "HURT_ROCK"}, {HurtFire, "HURT_FIRE"},
	{HurtCold, "HURT_COLD"}, {HurtLight, "HURT_LITE"}, {NoConf, "NO_CONF"},
	{NoFear, "NO_FEAR"}, {NoSleep, "NO_SLEEP"}, {NoStun, "NO_STUN"},
	{Smart, "SMART"}, {Stupid, "STUPID"}, {ResMagic, "RES_MAGIC"},
	{NeverBlow, "NEVER_BLOW"}, {AuraFire, "AURA_FIRE"}, {AuraElec, "AURA_ELEC"},
	{AuraCold, "AURA_COLD"}, {EmptyMind, "EMPTY_MIND"},
}

// ParseFlag resolves one upper-case flag name.
func ParseFlag(name string) (Flags, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for _, fn := range flagNames {
		if fn.name == n {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("race: unknown flag %q", name)
}

// Has reports whether every bit in f2 is set in f.
func (f Flags) Has(f2 Flags) bool {
	return f2 != 0 && f&f2 == f2
}

// Any reports whether any bit in f2 is set in f.
func (f Flags) Any(f2 Flags) bool {
	return f&f2 != 0
}

// Names lists the names of the set flags in declaration order.
func (f Flags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			out = append(out, fn.name)
		}
	}
	return out
}

// String renders f as a "|" separated list.
func (f Flags) String() string {
	return strings.Join(f.Names(), "|")
}

// UnmarshalYAML reads a sequence of flag names.
func (f *Flags) UnmarshalYAML(node *yaml.Node) error {
	var list []string
	if err := node.Decode(&list); err != nil {
		return fmt.Errorf("line %d: flags must be a list: %w", node.Line, err)
	}
	var out Flags
	for _, name := range list {
		fl, err := ParseFlag(name)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		out |= fl
	}
	*f = out
	return nil
}
