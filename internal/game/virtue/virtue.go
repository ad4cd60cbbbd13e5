// Package virtue tracks a character's alignment as eight virtue slots drawn
// from eighteen virtue kinds.
//
// Movement past each of the ±50, ±80, and ±100 thresholds is resisted with
// probability one half; values are clamped to [-125, 125].
package virtue

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
)

// Kind identifies a virtue. None marks an empty slot.
type Kind uint8

const (
	None Kind = iota
	Compassion
	Honour
	Justice
	Sacrifice
	Knowledge
	Faith
	Enlightenment
	Enchantment
	Chance
	Nature
	Harmony
	Vitality
	Unlife
	Patience
	Temperance
	Diligence
	Valour
	Individualism
	numKinds
)

const (
	// Slots is the number of virtues a character tracks.
	Slots = 8
	// Max is the clamp ceiling for any virtue value.
	Max = 125
	// Min is the clamp floor for any virtue value.
	Min = -125
)

var kindNames = [numKinds]string{
	"none", "compassion", "honour", "justice", "sacrifice", "knowledge",
	"faith", "enlightenment", "enchantment", "chance", "nature", "harmony",
	"vitality", "unlife", "patience", "temperance", "diligence", "valour",
	"individualism",
}

// thresholds are checked in order; each one blocks further movement with
// probability 1/2 and pins the value at the threshold instead.
var thresholds = [...]int{50, 80, 100}

// Kinds returns every real virtue kind, excluding None.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := Compassion; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the lowercase name of k.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("virtue(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a virtue name.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i := Compassion; i < numKinds; i++ {
		if kindNames[i] == n {
			return i, nil
		}
	}
	return None, fmt.Errorf("virtue: unknown virtue %q", name)
}

// Set is the eight-slot virtue vector of one character.
//
// Invariant: every value lies in [Min, Max]; a kind occupies at most one slot.
type Set struct {
	kinds  [Slots]Kind
	values [Slots]int
}

// NewSet binds up to Slots kinds to slots in order, starting at zero.
// Duplicate and None kinds are skipped.
//
// Postcondition: len(s.Kinds()) <= Slots.
func NewSet(kinds ...Kind) *Set {
	s := &Set{}
	n := 0
	for _, k := range kinds {
		if n == Slots {
			break
		}
		if k == None || k >= numKinds || s.slot(k) >= 0 {
			continue
		}
		s.kinds[n] = k
		n++
	}
	return s
}

func (s *Set) slot(k Kind) int {
	if k == None {
		return -1
	}
	for i, sk := range s.kinds {
		if sk == k {
			return i
		}
	}
	return -1
}

// Tracks reports whether k is bound to a slot.
func (s *Set) Tracks(k Kind) bool {
	return s.slot(k) >= 0
}

// Kinds lists the bound kinds in slot order.
func (s *Set) Kinds() []Kind {
	var out []Kind
	for _, k := range s.kinds {
		if k != None {
			out = append(out, k)
		}
	}
	return out
}

// Value returns the current value of k; untracked kinds read as 0.
func (s *Set) Value(k Kind) int {
	i := s.slot(k)
	if i < 0 {
		return 0
	}
	return s.values[i]
}

// Set stores v for k, clamped to [Min, Max]. Untracked kinds are ignored.
func (s *Set) Set(k Kind, v int) {
	i := s.slot(k)
	if i < 0 {
		return
	}
	s.values[i] = clamp(v)
}

// Values returns a name→value map of the tracked kinds. Every known virtue
// name is present; untracked kinds map to 0.
func (s *Set) Values() map[string]int {
	out := make(map[string]int, numKinds-1)
	for _, k := range Kinds() {
		out[k.String()] = s.Value(k)
	}
	return out
}

// Change moves k by amount with threshold damping and reports whether k is
// tracked. A zero amount or an untracked kind is a no-op.
//
// Moving upward: at each threshold t in 50, 80, 100 that the new value would
// exceed, with probability 1/2 the value is raised to at most t and movement
// stops. Past every threshold the result is clamped to Max. Downward movement
// mirrors this with negative thresholds.
//
// Precondition: src must be non-nil.
// Postcondition: Min <= s.Value(k) <= Max.
func (s *Set) Change(k Kind, amount int, src dice.Source) bool {
	i := s.slot(k)
	if i < 0 {
		return false
	}
	if amount == 0 {
		return true
	}
	v := s.values[i]
	next := v + amount
	if amount > 0 {
		for _, t := range thresholds {
			if next > t && dice.OneIn(src, 2) {
				s.values[i] = max(v, t)
				return true
			}
		}
	} else {
		for _, t := range thresholds {
			if next < -t && dice.OneIn(src, 2) {
				s.values[i] = min(v, -t)
				return true
			}
		}
	}
	s.values[i] = clamp(next)
	return true
}

func clamp(v int) int {
	return max(Min, min(Max, v))
}
