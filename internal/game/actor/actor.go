// Package actor holds the runtime state of the player and of monster
// instances: hit points, timed statuses, resistances, and what each has
// learned about the other.
package actor

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Update is the set of recalculation and redraw flags an actor raises when
// its state changes. The frontend consumes and clears them.
type Update uint32

const (
	UpdateBonus Update = 1 << iota
	UpdateHP
	RedrawStatus
	RedrawHP
	RedrawMana
	RedrawEquip
	RedrawGold
	RedrawExp
	RedrawStats
)

// Has reports whether every flag in o is raised.
func (u Update) Has(o Update) bool {
	return o != 0 && u&o == o
}

// Shields is the set of defensive auras a player may wear.
type Shields uint16

const (
	ShieldFire Shields = 1 << iota
	ShieldElec
	ShieldCold
	ShardRobe
	HolyAura
	ForceAura
	ShadowCloak
)

var shieldNames = []struct {
	shield Shields
	name   string
}{
	{ShieldFire, "fire"}, {ShieldElec, "elec"}, {ShieldCold, "cold"},
	{ShardRobe, "shards"}, {HolyAura, "holy"}, {ForceAura, "force"},
	{ShadowCloak, "shadow"},
}

// Has reports whether every shield in o is up.
func (s Shields) Has(o Shields) bool {
	return o != 0 && s&o == o
}

// UnmarshalYAML reads a list of shield names.
func (s *Shields) UnmarshalYAML(node *yaml.Node) error {
	var list []string
	if err := node.Decode(&list); err != nil {
		return fmt.Errorf("line %d: shields must be a list: %w", node.Line, err)
	}
	var out Shields
outer:
	for _, n := range list {
		n = strings.ToLower(strings.TrimSpace(n))
		for _, sn := range shieldNames {
			if sn.name == n {
				out |= sn.shield
				continue outer
			}
		}
		return fmt.Errorf("line %d: unknown shield %q", node.Line, n)
	}
	*s = out
	return nil
}
