// Package element names the damage and effect elements actors resist, and
// provides the bitset used for immunity, resistance, and vulnerability tables.
package element

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Element is a damage or effect element.
type Element uint8

const (
	Acid Element = iota
	Elec
	Fire
	Cold
	Poison
	Light
	Dark
	Nether
	Water
	Plasma
	Shards
	Sound
	Chaos
	Nexus
	Disenchant
	Force
	Inertia
	Time
	Gravity
	Holy
	Confusion
	Blindness
	Fear
	FreeAction
	numElements
)

var names = [numElements]string{
	"acid", "elec", "fire", "cold", "poison", "light", "dark", "nether",
	"water", "plasma", "shards", "sound", "chaos", "nexus", "disenchant",
	"force", "inertia", "time", "gravity", "holy", "confusion", "blindness",
	"fear", "free_action",
}

// All returns every element in declaration order.
func All() []Element {
	out := make([]Element, numElements)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// String returns the lowercase content name of e.
func (e Element) String() string {
	if e >= numElements {
		return fmt.Sprintf("element(%d)", uint8(e))
	}
	return names[e]
}

// Parse resolves a content name to an Element.
func Parse(name string) (Element, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range names {
		if s == n {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("element: unknown element %q", name)
}

// Set is a bitset of elements.
type Set uint32

// Of builds a Set from the given elements.
func Of(es ...Element) Set {
	var s Set
	for _, e := range es {
		s |= 1 << e
	}
	return s
}

// Has reports whether e is in s.
func (s Set) Has(e Element) bool {
	return s&(1<<e) != 0
}

// With returns s plus e.
func (s Set) With(e Element) Set {
	return s | 1<<e
}

// Union returns the elements in s or o.
func (s Set) Union(o Set) Set {
	return s | o
}

// Intersect returns the elements in both s and o.
func (s Set) Intersect(o Set) Set {
	return s & o
}

// Elements lists the members of s in declaration order.
func (s Set) Elements() []Element {
	var out []Element
	for e := Element(0); e < numElements; e++ {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// String renders s as a comma separated list.
func (s Set) String() string {
	es := s.Elements()
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

// UnmarshalYAML reads a sequence of element names.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var list []string
	if err := node.Decode(&list); err != nil {
		return fmt.Errorf("line %d: element set must be a list: %w", node.Line, err)
	}
	var out Set
	for _, name := range list {
		e, err := Parse(name)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		out = out.With(e)
	}
	*s = out
	return nil
}

// Brands are the elements a weapon or technique can carry.
var Brands = Of(Acid, Elec, Fire, Cold, Poison)
