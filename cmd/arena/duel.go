package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/combat"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
	"github.com/cory-johannsen/deepdelve/internal/observability"
)

var (
	duelRace   string
	duelPlayer string
	duelTech   string
	duelWanted []string
	duelToday  string
)

var duelCmd = &cobra.Command{
	Use:   "duel",
	Short: "Fight one monster to the finish and print every message",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tech, err := combat.ParseTechnique(duelTech)
		if err != nil {
			return err
		}
		a, err := loadApp(ctx, configPath)
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		sess, err := a.newSession(duelPlayer, consoleSink{w: out}, session.NewBounty(duelToday, duelWanted...))
		if err != nil {
			return err
		}
		sess.Logger = observability.WithRun(a.logger, a.cfg.Rules.Seed, duelRace)
		a.scripts.Sink = sess.Sink

		m, err := sess.Spawn(duelRace)
		if err != nil {
			return err
		}
		banner(out, "%s (%d HP) vs %s (%d HP)", sess.Player.Name, sess.Player.HP, m.Race.Name, m.HP)

		res := combat.Duel(sess, m, tech)
		banner(out, "%s after %d turns: dealt %d, took %d", res.Outcome, res.Turns, res.DamageDealt, res.DamageTaken)
		if sess.Player.Gold > 0 {
			fmt.Fprintf(out, "Gold: %d  Exp: %d\n", sess.Player.Gold, sess.Player.Exp)
		}

		if err := a.saveLore(ctx); err != nil {
			a.logger.Error("lore not saved", zap.Error(err))
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	},
}

func init() {
	duelCmd.Flags().StringVar(&duelRace, "race", "kobold", "monster race id")
	duelCmd.Flags().StringVar(&duelPlayer, "player", "warrior", "player preset id")
	duelCmd.Flags().StringVar(&duelTech, "tech", "none", "melee technique")
	duelCmd.Flags().StringSliceVar(&duelWanted, "wanted", nil, "race ids with a wanted poster up")
	duelCmd.Flags().StringVar(&duelToday, "today", "", "race id carrying today's bounty")
}
