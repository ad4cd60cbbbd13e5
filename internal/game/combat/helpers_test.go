package combat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

// fixedSrc returns val from every roll, or n-1 when val is out of range.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func statuses(t *testing.T) *status.Registry {
	t.Helper()
	reg, err := status.LoadDirectory("../../../content/statuses")
	require.NoError(t, err)
	return reg
}

func newArena(t *testing.T, src dice.Source, opts session.Options) (*session.GameSession, *message.Buffer) {
	t.Helper()
	var sink message.Buffer
	p := actor.NewPlayer("Tester", 5, 30)
	p.SkillMelee = 50
	p.SkillSave = 20
	sess, err := session.New(session.Deps{
		Player:   p,
		Statuses: statuses(t),
		Lore:     lore.NewRegistry(),
		Rng:      src,
		Sink:     &sink,
		Depth:    1,
		Options:  opts,
	})
	require.NoError(t, err)
	return sess, &sink
}

func monster(sess *session.GameSession, r *race.Race, hp int) *actor.Monster {
	return actor.NewMonster(r.ID+"-1", r, sess.Lore.For(r.ID), hp)
}

func kobold() *race.Race {
	return &race.Race{
		ID: "kobold", Name: "Kobold", Level: 2, Exp: 10, AC: 0,
		HP:    dice.Dice{Count: 3, Sides: 7},
		Blows: []race.Blow{{Method: race.Hit, Effect: race.Hurt, Dice: dice.Dice{Count: 2, Sides: 5}}},
	}
}
