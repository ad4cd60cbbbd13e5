package dice

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse parses an "NdS" expression. A bare integer "N" is read as "Nd1" so
// content can express fixed damage.
//
// Precondition: expr must be non-empty.
// Postcondition: Returns a Dice with Count >= 1 and Sides >= 1, or an error.
func Parse(expr string) (Dice, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Dice{}, fmt.Errorf("dice: empty expression")
	}
	count, sides, found := strings.Cut(s, "d")
	if !found {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Dice{}, fmt.Errorf("dice: invalid expression %q", expr)
		}
		return Dice{Count: n, Sides: 1}, nil
	}
	c := 1
	if count != "" {
		var err error
		c, err = strconv.Atoi(count)
		if err != nil {
			return Dice{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		if c < 1 {
			return Dice{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", expr)
		}
	}
	sd, err := strconv.Atoi(sides)
	if err != nil {
		return Dice{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sd < 1 {
		return Dice{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 1", expr)
	}
	return Dice{Count: c, Sides: sd}, nil
}

// MustParse parses expr and panics on error. Useful for fixtures.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Dice {
	d, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return d
}

// UnmarshalYAML reads a scalar "NdS" node.
func (d *Dice) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: dice must be a scalar like \"3d8\"", node.Line)
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}
