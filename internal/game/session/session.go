// Package session owns the mutable game state shared across one play session:
// the turn counter, the current level's monsters and floor, race lore, bounty
// tables, randomness, and the message sink. Every combat call receives the
// session explicitly.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/inventory"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/rules"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

// HitHook runs a named script after a monster blow lands and returns bonus
// damage to apply to the player.
type HitHook func(hook, attacker, target string, damage int) int

// Options are the rule switches read from configuration.
type Options struct {
	// SmartLearn lets monsters remember the player's resistances.
	SmartLearn bool
	// MaxTurns bounds a single duel.
	MaxTurns int
}

// Deps are the collaborators a GameSession is built from.
type Deps struct {
	Player   *actor.Player
	Races    *race.Registry
	Statuses *status.Registry
	Lore     *lore.Registry
	Rng      dice.Source
	Sink     message.Sink
	Logger   *zap.Logger
	Adjuster *rules.PowerAdjuster
	OnHit    HitHook
	Bounty   *Bounty
	Depth    int
	Options  Options
}

// GameSession is the single owner of shared mutable game state.
// It is not safe for concurrent use.
type GameSession struct {
	Turn   int64
	Depth  int
	Player *actor.Player
	Races  *race.Registry
	Lore   *lore.Registry
	Roster *actor.Roster
	Floor  *inventory.Floor
	Bounty *Bounty

	Rng      dice.Source
	Sink     message.Sink
	Logger   *zap.Logger
	Status   *status.Applier
	Adjuster *rules.PowerAdjuster
	OnHit    HitHook
	Options  Options
}

// New builds a session from d.
//
// Precondition: d.Player, d.Lore and d.Rng must be non-nil.
// Postcondition: Sink, Logger, Races, Statuses and Bounty default to empty
// implementations when nil.
func New(d Deps) (*GameSession, error) {
	if d.Player == nil || d.Lore == nil || d.Rng == nil {
		return nil, fmt.Errorf("session.New: player, lore and rng must not be nil")
	}
	if d.Sink == nil {
		d.Sink = message.Discard{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Statuses == nil {
		d.Statuses = status.NewRegistry()
	}
	if d.Races == nil {
		d.Races, _ = race.NewRegistry()
	}
	if d.Bounty == nil {
		d.Bounty = NewBounty("")
	}
	s := &GameSession{
		Depth:    d.Depth,
		Player:   d.Player,
		Races:    d.Races,
		Lore:     d.Lore,
		Roster:   actor.NewRoster(d.Depth),
		Floor:    inventory.NewFloor(),
		Bounty:   d.Bounty,
		Rng:      d.Rng,
		Sink:     d.Sink,
		Logger:   d.Logger,
		Status:   status.NewApplier(d.Statuses, d.Rng, d.Sink),
		Adjuster: d.Adjuster,
		OnHit:    d.OnHit,
		Options:  d.Options,
	}
	s.Player.SyncTurn(s.Turn)
	return s, nil
}

// Advance moves the game clock forward one turn.
func (s *GameSession) Advance() {
	s.Turn++
	s.Player.SyncTurn(s.Turn)
}

// Msg writes one line to the sink.
func (s *GameSession) Msg(text string) {
	s.Sink.Msg(text)
}

// Msgf formats and writes one line to the sink.
func (s *GameSession) Msgf(format string, args ...any) {
	message.Msgf(s.Sink, format, args...)
}

// Spawn places a new monster of raceID on the current level.
//
// Postcondition: returns an error wrapping race.ErrRaceNotFound for unknown IDs.
func (s *GameSession) Spawn(raceID string) (*actor.Monster, error) {
	r, err := s.Races.Get(raceID)
	if err != nil {
		return nil, err
	}
	m, err := s.Roster.Spawn(r, s.Lore.For(r.ID), s.Rng)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("monster spawned",
		zap.String("race", r.ID),
		zap.String("id", m.ID),
		zap.Int("hp", m.HP),
		zap.Int("depth", s.Depth),
	)
	return m, nil
}

// ChangeLevel unloads every monster and floor item and moves to depth.
// Lore and bounties survive.
func (s *GameSession) ChangeLevel(depth int) {
	dropped := s.Roster.Unload()
	s.Floor.Clear()
	s.Depth = depth
	s.Roster = actor.NewRoster(depth)
	s.Logger.Debug("level changed", zap.Int("depth", depth), zap.Int("unloaded", dropped))
}

// Damroll rolls count dice of sides faces, logging through a dice.Roller when
// the session's source is one.
func (s *GameSession) Damroll(count, sides int) int {
	if r, ok := s.Rng.(*dice.Roller); ok && count > 0 && sides > 0 {
		return r.Damroll(count, sides)
	}
	return dice.Damroll(s.Rng, count, sides)
}

// Roll rolls d.
func (s *GameSession) Roll(d dice.Dice) int {
	return s.Damroll(d.Count, d.Sides)
}

// RandInt0 returns a value in [0, n).
func (s *GameSession) RandInt0(n int) int { return dice.RandInt0(s.Rng, n) }

// RandInt1 returns a value in [1, n].
func (s *GameSession) RandInt1(n int) int { return dice.RandInt1(s.Rng, n) }

// OneIn reports true with probability 1/n.
func (s *GameSession) OneIn(n int) bool { return dice.OneIn(s.Rng, n) }
