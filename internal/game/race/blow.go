package race

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
)

// MaxBlows is the most blows a race may declare.
const MaxBlows = 4

var (
	// ErrUnknownEffect is returned when content names an effect that does not exist.
	ErrUnknownEffect = errors.New("unknown blow effect")
	// ErrUnknownMethod is returned when content names a method that does not exist.
	ErrUnknownMethod = errors.New("unknown blow method")
)

// Method is how a blow is delivered. It is cosmetic except that it decides
// whether the blow can cut or stun and whether it touches the defender.
type Method uint8

const (
	MethodNone Method = iota
	Hit
	Touch
	Punch
	Kick
	Claw
	Bite
	Sting
	Slash
	Butt
	Crush
	Engulf
	Charge
	Crawl
	Drool
	Spit
	Explode
	Gaze
	Wail
	Spore
	Beg
	Insult
	Moan
	Show
	numMethods
)

type methodInfo struct {
	name    string
	verb    string
	cut     bool
	stun    bool
	touches bool
	misses  bool
}

var methods = [numMethods]methodInfo{
	MethodNone: {name: "none", verb: "attacks you."},
	Hit:        {name: "hit", verb: "hits you.", cut: true, stun: true, touches: true, misses: true},
	Touch:      {name: "touch", verb: "touches you.", touches: true, misses: true},
	Punch:      {name: "punch", verb: "punches you.", stun: true, touches: true, misses: true},
	Kick:       {name: "kick", verb: "kicks you.", stun: true, touches: true, misses: true},
	Claw:       {name: "claw", verb: "claws you.", cut: true, touches: true, misses: true},
	Bite:       {name: "bite", verb: "bites you.", cut: true, touches: true, misses: true},
	Sting:      {name: "sting", verb: "stings you.", touches: true, misses: true},
	Slash:      {name: "slash", verb: "slashes you.", cut: true, touches: true, misses: true},
	Butt:       {name: "butt", verb: "butts you.", stun: true, touches: true, misses: true},
	Crush:      {name: "crush", verb: "crushes you.", stun: true, touches: true, misses: true},
	Engulf:     {name: "engulf", verb: "engulfs you.", touches: true, misses: true},
	Charge:     {name: "charge", verb: "charges you.", touches: true, misses: true},
	Crawl:      {name: "crawl", verb: "crawls on you.", touches: true},
	Drool:      {name: "drool", verb: "drools on you."},
	Spit:       {name: "spit", verb: "spits on you."},
	Explode:    {name: "explode", verb: "explodes."},
	Gaze:       {name: "gaze", verb: "gazes at you."},
	Wail:       {name: "wail", verb: "wails at you."},
	Spore:      {name: "spore", verb: "releases spores at you."},
	Beg:        {name: "beg", verb: "begs you for money."},
	Insult:     {name: "insult", verb: "insults you!"},
	Moan:       {name: "moan", verb: "moans."},
	Show:       {name: "show", verb: "sings to you."},
}

// String returns the content name of m.
func (m Method) String() string {
	if m >= numMethods {
		return fmt.Sprintf("method(%d)", uint8(m))
	}
	return methods[m].name
}

// Verb is the third-person phrase used when the blow lands.
func (m Method) Verb() string { return methods[m].verb }

// Cuts reports whether a near-maximum blow of this method can cut.
func (m Method) Cuts() bool { return methods[m].cut }

// Stuns reports whether a near-maximum blow of this method can stun.
func (m Method) Stuns() bool { return methods[m].stun }

// Touches reports whether the blow makes contact, triggering auras.
func (m Method) Touches() bool { return methods[m].touches }

// Misses reports whether a failed blow of this method prints a miss message.
func (m Method) Misses() bool { return methods[m].misses }

// ParseMethod resolves a method name.
func ParseMethod(name string) (Method, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, mi := range methods {
		if mi.name == n {
			return Method(i), nil
		}
	}
	return MethodNone, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// UnmarshalYAML reads a method name.
func (m *Method) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseMethod(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = parsed
	return nil
}

// Effect is what a landed blow does beyond its method.
type Effect uint8

const (
	EffectNone Effect = iota
	Hurt
	SuperHurt
	Poison
	UnBonus
	UnPower
	EatGold
	EatItem
	EatFood
	EatLight
	Acid
	Elec
	Fire
	Cold
	Blind
	Confuse
	Terrify
	Paralyze
	LoseStr
	LoseInt
	LoseWis
	LoseDex
	LoseCon
	LoseChr
	LoseAll
	Shatter
	Exp10
	Exp20
	Exp40
	Exp80
	Disease
	ExpVamp
	DrainMana
	Inertia
	Stun
	Curse
	numEffects
)

var effects = [numEffects]struct {
	name  string
	power int
}{
	EffectNone: {"none", 0},
	Hurt:       {"hurt", 60},
	SuperHurt:  {"superhurt", 60},
	Poison:     {"poison", 5},
	UnBonus:    {"un_bonus", 20},
	UnPower:    {"un_power", 15},
	EatGold:    {"eat_gold", 5},
	EatItem:    {"eat_item", 5},
	EatFood:    {"eat_food", 5},
	EatLight:   {"eat_light", 5},
	Acid:       {"acid", 0},
	Elec:       {"elec", 10},
	Fire:       {"fire", 10},
	Cold:       {"cold", 10},
	Blind:      {"blind", 2},
	Confuse:    {"confuse", 10},
	Terrify:    {"terrify", 10},
	Paralyze:   {"paralyze", 2},
	LoseStr:    {"lose_str", 0},
	LoseInt:    {"lose_int", 0},
	LoseWis:    {"lose_wis", 0},
	LoseDex:    {"lose_dex", 0},
	LoseCon:    {"lose_con", 0},
	LoseChr:    {"lose_chr", 0},
	LoseAll:    {"lose_all", 2},
	Shatter:    {"shatter", 60},
	Exp10:      {"exp_10", 5},
	Exp20:      {"exp_20", 5},
	Exp40:      {"exp_40", 5},
	Exp80:      {"exp_80", 5},
	Disease:    {"disease", 5},
	ExpVamp:    {"exp_vamp", 5},
	DrainMana:  {"dr_mana", 5},
	Inertia:    {"inertia", 5},
	Stun:       {"stun", 5},
	Curse:      {"curse", 5},
}

// String returns the content name of e.
func (e Effect) String() string {
	if e >= numEffects {
		return fmt.Sprintf("effect(%d)", uint8(e))
	}
	return effects[e].name
}

// Power is the to-hit bonus the effect adds to the attacker's level.
func (e Effect) Power() int {
	if e >= numEffects {
		return 0
	}
	return effects[e].power
}

// Effects lists every effect in declaration order.
func Effects() []Effect {
	out := make([]Effect, numEffects)
	for i := range out {
		out[i] = Effect(i)
	}
	return out
}

// ParseEffect resolves an effect name.
func ParseEffect(name string) (Effect, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, ef := range effects {
		if ef.name == n {
			return Effect(i), nil
		}
	}
	return EffectNone, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// UnmarshalYAML reads an effect name.
func (e *Effect) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseEffect(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*e = parsed
	return nil
}

// Blow is one entry of a race's melee attack.
type Blow struct {
	Method Method    `yaml:"method"`
	Effect Effect    `yaml:"effect"`
	Dice   dice.Dice `yaml:"dice"`
}
