// Package rules holds the tunable balance expressions evaluated with CEL, so
// content authors can adjust how virtues bend spell power without a rebuild.
package rules

import (
	"fmt"
	"sort"

	"github.com/google/cel-go/cel"

	"github.com/cory-johannsen/deepdelve/internal/game/save"
)

// Input is the context visible to a power expression.
type Input struct {
	// Power is the unadjusted effect power.
	Power int
	// Level is the caster's level.
	Level int
	// TargetLevel is the defender's level.
	TargetLevel int
	// Virtues maps every virtue name to the caster's value (0 when untracked).
	Virtues map[string]int
}

// PowerAdjuster rewrites effect power per save kind with compiled CEL programs.
// A nil *PowerAdjuster, or a kind without an expression, leaves power as is.
type PowerAdjuster struct {
	programs map[save.Kind]cel.Program
	sources  map[save.Kind]string
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("power", cel.IntType),
		cel.Variable("level", cel.IntType),
		cel.Variable("target_level", cel.IntType),
		cel.Variable("virtues", cel.MapType(cel.StringType, cel.IntType)),
	)
}

// NewPowerAdjuster compiles one expression per save kind name. Empty
// expressions are skipped.
//
// Postcondition: Returns an error naming the first kind that fails to parse,
// type-check, or produce an int.
func NewPowerAdjuster(exprs map[string]string) (*PowerAdjuster, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("building CEL env: %w", err)
	}
	a := &PowerAdjuster{
		programs: make(map[save.Kind]cel.Program),
		sources:  make(map[save.Kind]string),
	}
	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		src := exprs[name]
		if src == "" {
			continue
		}
		kind, err := save.ParseKind(name)
		if err != nil {
			return nil, err
		}
		ast, iss := env.Compile(src)
		if iss.Err() != nil {
			return nil, fmt.Errorf("compiling %s power expression %q: %w", name, src, iss.Err())
		}
		if !ast.OutputType().IsExactType(cel.IntType) {
			return nil, fmt.Errorf("%s power expression %q must produce an int, got %s", name, src, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("planning %s power expression: %w", name, err)
		}
		a.programs[kind] = prg
		a.sources[kind] = src
	}
	return a, nil
}

// Expression returns the source text bound to kind, or "".
func (a *PowerAdjuster) Expression(kind save.Kind) string {
	if a == nil {
		return ""
	}
	return a.sources[kind]
}

// Adjust evaluates the expression bound to kind.
//
// Postcondition: returns in.Power unchanged when no expression is bound.
func (a *PowerAdjuster) Adjust(kind save.Kind, in Input) (int, error) {
	if a == nil {
		return in.Power, nil
	}
	prg, ok := a.programs[kind]
	if !ok {
		return in.Power, nil
	}
	virtues := make(map[string]int64, len(in.Virtues))
	for k, v := range in.Virtues {
		virtues[k] = int64(v)
	}
	out, _, err := prg.Eval(map[string]any{
		"power":        int64(in.Power),
		"level":        int64(in.Level),
		"target_level": int64(in.TargetLevel),
		"virtues":      virtues,
	})
	if err != nil {
		return in.Power, fmt.Errorf("evaluating %s power expression: %w", kind, err)
	}
	v, ok := out.Value().(int64)
	if !ok {
		return in.Power, fmt.Errorf("%s power expression produced %T, want int", kind, out.Value())
	}
	return int(v), nil
}
