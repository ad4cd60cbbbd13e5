// Package main applies the lore schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/cory-johannsen/deepdelve/internal/config"
)

// apply moves m in direction by steps (0 = all the way).
func apply(m *migrate.Migrate, direction string, steps int) error {
	switch direction {
	case "up":
		if steps > 0 {
			return m.Steps(steps)
		}
		return m.Up()
	case "down":
		if steps > 0 {
			return m.Steps(-steps)
		}
		return m.Down()
	}
	return fmt.Errorf("invalid direction %q: must be 'up' or 'down'", direction)
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	dir := flag.String("dir", "migrations", "directory holding migration files")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	m, err := migrate.New("file://"+*dir, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("creating migrator: %v", err)
	}
	defer m.Close()

	err = apply(m, *direction, *steps)
	unchanged := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !unchanged {
		log.Fatalf("migrating %s: %v", *direction, err)
	}

	version, dirty, _ := m.Version()
	state := "migrated " + *direction
	if unchanged {
		state = "no changes"
	}
	log.Printf("%s: race_lore schema at version=%d dirty=%v [%s]", state, version, dirty, time.Since(start))
}
