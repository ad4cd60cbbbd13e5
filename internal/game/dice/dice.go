// Package dice provides the randomness abstraction, classic NdS dice, and the
// integer helpers every combat rule in deepdelve draws from.
package dice

import (
	"fmt"
	"strings"
)

// Source is the randomness provider for all rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Dice is a classic "NdS" expression: Count dice of Sides faces, no modifier.
//
// Invariant: the zero value rolls 0.
type Dice struct {
	Count int
	Sides int
}

// Max returns the largest total the dice can produce.
func (d Dice) Max() int {
	return d.Count * d.Sides
}

// IsZero reports whether d rolls nothing.
func (d Dice) IsZero() bool {
	return d.Count <= 0 || d.Sides <= 0
}

// String renders d as "NdS".
func (d Dice) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// Roll rolls d against src and returns the per-die audit trail.
//
// Precondition: src must be non-nil.
// Postcondition: len(result.Faces) == d.Count when !d.IsZero().
func (d Dice) Roll(src Source) RollResult {
	res := RollResult{Dice: d}
	if d.IsZero() {
		return res
	}
	res.Faces = make([]int, d.Count)
	for i := range res.Faces {
		res.Faces[i] = src.Intn(d.Sides) + 1
	}
	return res
}

// RollResult holds the audit trail for a single dice roll.
//
// Postcondition: Total() == sum(Faces).
type RollResult struct {
	Dice  Dice
	Faces []int
}

// Total returns the sum of all faces.
func (r RollResult) Total() int {
	total := 0
	for _, f := range r.Faces {
		total += f
	}
	return total
}

// String returns an audit string in the format "3d8 → [1 4 7] = 12".
func (r RollResult) String() string {
	faces := make([]string, len(r.Faces))
	for i, f := range r.Faces {
		faces[i] = fmt.Sprint(f)
	}
	return fmt.Sprintf("%s → [%s] = %d", r.Dice, strings.Join(faces, " "), r.Total())
}
