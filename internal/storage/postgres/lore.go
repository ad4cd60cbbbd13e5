package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/lore"
	"github.com/cory-johannsen/deepdelve/internal/game/race"
)

// upsertLore merges an entry into race_lore. Bit sets are OR-ed and counters
// keep the larger value, matching lore.Registry.Merge.
const upsertLore = `
INSERT INTO race_lore (race_id, flags, immune, resist, kills, deaths, blows)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (race_id) DO UPDATE SET
    flags  = race_lore.flags  | EXCLUDED.flags,
    immune = race_lore.immune | EXCLUDED.immune,
    resist = race_lore.resist | EXCLUDED.resist,
    kills  = GREATEST(race_lore.kills,  EXCLUDED.kills),
    deaths = GREATEST(race_lore.deaths, EXCLUDED.deaths),
    blows  = ARRAY[
        GREATEST(race_lore.blows[1], EXCLUDED.blows[1]),
        GREATEST(race_lore.blows[2], EXCLUDED.blows[2]),
        GREATEST(race_lore.blows[3], EXCLUDED.blows[3]),
        GREATEST(race_lore.blows[4], EXCLUDED.blows[4])
    ],
    updated_at = NOW()`

// LoreRepository stores monster lore in the race_lore table.
// It implements lore.Store.
type LoreRepository struct {
	db *pgxpool.Pool
}

var _ lore.Store = (*LoreRepository)(nil)

// NewLoreRepository creates a LoreRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewLoreRepository(db *pgxpool.Pool) *LoreRepository {
	return &LoreRepository{db: db}
}

// Load returns every persisted entry, sorted by race ID.
//
// Postcondition: Returns an empty slice (not nil) when the table is empty.
func (r *LoreRepository) Load(ctx context.Context) ([]lore.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT race_id, flags, immune, resist, kills, deaths, blows
		 FROM race_lore ORDER BY race_id`)
	if err != nil {
		return nil, fmt.Errorf("querying lore: %w", err)
	}
	defer rows.Close()

	out := []lore.Entry{}
	for rows.Next() {
		var (
			e                     lore.Entry
			flags, immune, resist int64
			kills, deaths         int32
			blows                 []int32
		)
		if err := rows.Scan(&e.RaceID, &flags, &immune, &resist, &kills, &deaths, &blows); err != nil {
			return nil, fmt.Errorf("scanning lore: %w", err)
		}
		e.Flags = race.Flags(uint64(flags))
		e.Immune = element.Set(uint32(immune))
		e.Resist = element.Set(uint32(resist))
		e.Kills = int(kills)
		e.Deaths = int(deaths)
		for i := 0; i < len(blows) && i < race.MaxBlows; i++ {
			e.Blows[i] = int(blows[i])
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lore: %w", err)
	}
	return out, nil
}

// Save merges entries into the table in a single transaction.
//
// Precondition: every entry has a non-empty RaceID.
// Postcondition: stored knowledge is never reduced; on error nothing is written.
func (r *LoreRepository) Save(ctx context.Context, entries []lore.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, e := range entries {
			if e.RaceID == "" {
				return fmt.Errorf("saving lore: entry has empty race id")
			}
			blows := make([]int32, race.MaxBlows)
			for i, b := range e.Blows {
				blows[i] = int32(b)
			}
			if _, err := tx.Exec(ctx, upsertLore,
				e.RaceID,
				int64(uint64(e.Flags)),
				int64(e.Immune),
				int64(e.Resist),
				int32(e.Kills),
				int32(e.Deaths),
				blows,
			); err != nil {
				return fmt.Errorf("saving lore for %q: %w", e.RaceID, err)
			}
		}
		return nil
	})
}
