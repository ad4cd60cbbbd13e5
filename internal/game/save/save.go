// Package save implements the saving throw every status-inflicting effect
// rolls against its target.
package save

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
)

// Kind classifies a saving throw so defenders can declare blanket immunities.
type Kind uint8

const (
	General Kind = iota
	Confusion
	Fear
	Sleep
	Stun
	Paralysis
	Charm
	Control
)

var kindNames = map[Kind]string{
	General:   "general",
	Confusion: "confusion",
	Fear:      "fear",
	Sleep:     "sleep",
	Stun:      "stun",
	Paralysis: "paralysis",
	Charm:     "charm",
	Control:   "control",
}

// String returns the lowercase name of k.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("save(%d)", uint8(k))
}

// ParseKind resolves a save kind name.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range kindNames {
		if s == n {
			return k, nil
		}
	}
	return General, fmt.Errorf("save: unknown save kind %q", name)
}

// Defender is anything that can roll a saving throw.
type Defender interface {
	// Level is the defender's experience or race level.
	Level() int
	// SaveSkill is the defender's saving-throw skill.
	SaveSkill() int
}

// Warded is implemented by defenders with blanket immunities to some save kinds.
// AutoResists may record what it reveals about the defender.
type Warded interface {
	AutoResists(kind Kind) bool
}

// Resists reports whether d shrugs off an effect of the given power.
//
// A Warded defender that declares kind resists automatically. A non-positive
// power is always resisted. Otherwise the defender resists when
// randint1(100 + level/2) < save skill.
//
// Precondition: src and d must be non-nil.
func Resists(src dice.Source, power int, d Defender, kind Kind) bool {
	if w, ok := d.(Warded); ok && w.AutoResists(kind) {
		return true
	}
	if power <= 0 {
		return true
	}
	return dice.RandInt1(src, 100+d.Level()/2) < d.SaveSkill()
}

// Chance returns the exact probability that a defender of the given level and
// save skill resists a positive-power effect.
func Chance(level, skill int) float64 {
	n := 100 + level/2
	wins := max(0, min(n, skill-1))
	return float64(wins) / float64(n)
}
