package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/combat"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/session"
)

var (
	simRace   string
	simPlayer string
	simTech   string
	simCount  int
)

// tally accumulates duel results across a batch.
type tally struct {
	fights   int
	outcomes map[combat.Outcome]int
	turns    int
	dealt    int
	taken    int
}

func newTally() *tally {
	return &tally{outcomes: make(map[combat.Outcome]int)}
}

func (t *tally) add(r combat.DuelResult) {
	t.fights++
	t.outcomes[r.Outcome]++
	t.turns += r.Turns
	t.dealt += r.DamageDealt
	t.taken += r.DamageTaken
}

// winRate is the share of fights the player won, in percent.
func (t *tally) winRate() float64 {
	if t.fights == 0 {
		return 0
	}
	return float64(t.outcomes[combat.PlayerWon]) * 100 / float64(t.fights)
}

func (t *tally) write(w io.Writer) {
	if t.fights == 0 {
		fmt.Fprintln(w, "no fights run")
		return
	}
	names := make([]string, 0, len(t.outcomes))
	for o := range t.outcomes {
		names = append(names, string(o))
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "%-14s %6d\n", n, t.outcomes[combat.Outcome(n)])
	}
	fmt.Fprintf(w, "win rate       %5.1f%%\n", t.winRate())
	fmt.Fprintf(w, "avg turns      %6.1f\n", float64(t.turns)/float64(t.fights))
	fmt.Fprintf(w, "avg dealt      %6.1f\n", float64(t.dealt)/float64(t.fights))
	fmt.Fprintf(w, "avg taken      %6.1f\n", float64(t.taken)/float64(t.fights))
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a batch of silent duels and summarise the outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if simCount < 1 {
			return fmt.Errorf("-n must be >= 1, got %d", simCount)
		}
		tech, err := combat.ParseTechnique(simTech)
		if err != nil {
			return err
		}
		a, err := loadApp(ctx, configPath)
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		bar := progressbar.Default(int64(simCount), fmt.Sprintf("%s vs %s", simPlayer, simRace))
		t := newTally()
		for i := 0; i < simCount; i++ {
			sess, err := a.newSession(simPlayer, message.Discard{}, session.NewBounty(""))
			if err != nil {
				return err
			}
			m, err := sess.Spawn(simRace)
			if err != nil {
				return err
			}
			t.add(combat.Duel(sess, m, tech))
			_ = bar.Add(1)
		}
		fmt.Fprintln(out)
		banner(out, "%s vs %s, %d fights, technique %s", simPlayer, simRace, simCount, tech)
		t.write(out)

		a.logger.Info("simulation finished",
			zap.String("race", simRace),
			zap.String("player", simPlayer),
			zap.Int("fights", t.fights),
			zap.Float64("win_rate", t.winRate()),
		)
		return a.saveLore(ctx)
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simRace, "race", "kobold", "monster race id")
	simulateCmd.Flags().StringVar(&simPlayer, "player", "warrior", "player preset id")
	simulateCmd.Flags().StringVar(&simTech, "tech", "none", "melee technique")
	simulateCmd.Flags().IntVarP(&simCount, "count", "n", 100, "number of fights")
}
