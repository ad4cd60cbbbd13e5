package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/config"
	"github.com/cory-johannsen/deepdelve/internal/game/actor"
	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
	"github.com/cory-johannsen/deepdelve/internal/game/rules"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
	"github.com/cory-johannsen/deepdelve/internal/observability"
	"github.com/cory-johannsen/deepdelve/internal/scripting"
	"github.com/cory-johannsen/deepdelve/internal/storage/postgres"
)

// app holds everything loaded once per invocation.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	roller   *dice.Roller
	races    *race.Registry
	statuses *status.Registry
	presets  map[string]*actor.Preset
	adjuster *rules.PowerAdjuster
	scripts  *scripting.Manager
	lore     *lore.Registry
	pool     *postgres.Pool
	store    lore.Store
}

// loadApp reads configuration and content. The caller must call close.
func loadApp(ctx context.Context, path string) (*app, error) {
	start := time.Now()

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, lore: lore.NewRegistry()}

	var src dice.Source
	if cfg.Rules.Seed != 0 {
		src = dice.NewSeededSource(cfg.Rules.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	a.roller = dice.NewLoggedRoller(src, logger)

	if a.races, err = race.LoadDirectory(cfg.Content.RacesDir); err != nil {
		return nil, err
	}
	if a.statuses, err = status.LoadDirectory(cfg.Content.StatusesDir); err != nil {
		return nil, err
	}
	if a.presets, err = actor.LoadPresets(cfg.Content.PlayersDir); err != nil {
		return nil, err
	}
	if a.adjuster, err = rules.NewPowerAdjuster(cfg.Rules.PowerAdjust.Expressions()); err != nil {
		return nil, err
	}

	a.scripts = scripting.NewManager(a.roller, logger, 0)
	if cfg.Content.ScriptsDir != "" {
		if err := a.scripts.LoadDir(cfg.Content.ScriptsDir); err != nil {
			return nil, err
		}
	}

	if cfg.Database.Enabled {
		a.pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.store = postgres.NewLoreRepository(a.pool.DB())
		if err := a.lore.LoadFrom(ctx, a.store); err != nil {
			a.close()
			return nil, fmt.Errorf("loading lore: %w", err)
		}
	}

	logger.Info("content loaded",
		zap.Int("races", len(a.races.All())),
		zap.Int("presets", len(a.presets)),
		zap.Bool("lore_db", a.store != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return a, nil
}

// newSession builds a fresh character from presetID and a session around it.
// Lore is shared across every session of the invocation.
func (a *app) newSession(presetID string, sink message.Sink, bounty *session.Bounty) (*session.GameSession, error) {
	preset, ok := a.presets[presetID]
	if !ok {
		return nil, fmt.Errorf("unknown player preset %q", presetID)
	}
	p, err := preset.NewPlayer()
	if err != nil {
		return nil, err
	}
	return session.New(session.Deps{
		Player:   p,
		Races:    a.races,
		Statuses: a.statuses,
		Lore:     a.lore,
		Rng:      a.roller,
		Sink:     sink,
		Logger:   a.logger,
		Adjuster: a.adjuster,
		OnHit:    a.scripts.OnHit,
		Bounty:   bounty,
		Depth:    a.cfg.Rules.Depth,
		Options: session.Options{
			SmartLearn: a.cfg.Rules.SmartLearn,
			MaxTurns:   a.cfg.Rules.MaxTurns,
		},
	})
}

// saveLore flushes the lore registry when a database is configured.
func (a *app) saveLore(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	if err := a.lore.SaveTo(ctx, a.store); err != nil {
		return fmt.Errorf("saving lore: %w", err)
	}
	a.logger.Info("lore saved", zap.Int("races", len(a.lore.Entries())))
	return nil
}

func (a *app) close() {
	a.scripts.Close()
	if a.pool != nil {
		a.pool.Close()
	}
	_ = a.logger.Sync()
}
