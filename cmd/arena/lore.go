package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
)

var loreRace string

// errNoStore is returned when lore is requested without a database.
var errNoStore = errors.New("lore needs database.enabled: true")

var loreCmd = &cobra.Command{
	Use:   "lore",
	Short: "Print what has been learned about a race",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := loadApp(ctx, configPath)
		if err != nil {
			return err
		}
		defer a.close()
		if a.store == nil {
			return errNoStore
		}
		r, err := a.races.Get(loreRace)
		if err != nil {
			return err
		}
		for _, e := range a.lore.Entries() {
			if e.RaceID == r.ID {
				writeLore(cmd.OutOrStdout(), r, e)
				return nil
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing is known about %s.\n", r.Describe())
		return nil
	},
}

// writeLore renders one lore entry the way a monster recall reads.
func writeLore(w io.Writer, r *race.Race, e lore.Entry) {
	banner(w, "%s (level %d)", r.Name, r.Level)
	fmt.Fprintf(w, "Kills: %d  Deaths: %d\n", e.Kills, e.Deaths)
	if e.Flags != 0 {
		fmt.Fprintf(w, "Known traits: %s\n", strings.Join(e.Flags.Names(), ", "))
	}
	if e.Immune != 0 {
		fmt.Fprintf(w, "Immune to: %s\n", e.Immune)
	}
	if e.Resist != 0 {
		fmt.Fprintf(w, "Resists: %s\n", e.Resist)
	}
	for i, b := range r.Blows {
		if e.Blows[i] == 0 {
			continue
		}
		fmt.Fprintf(w, "Blow %d: %s to %s (seen %d times)\n", i+1, b.Method, b.Effect, e.Blows[i])
	}
}

func init() {
	loreCmd.Flags().StringVar(&loreRace, "race", "kobold", "monster race id")
}
