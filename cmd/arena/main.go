// Package main provides the arena binary: it pits a preset character against
// a monster race and reports how the fight went.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Run monster fights against preset characters",
	Long: `arena loads races, statuses, player presets and hook scripts from the
configured content directories and runs melee duels between a preset
character and a freshly spawned monster.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
	rootCmd.AddCommand(duelCmd, simulateCmd, loreCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
