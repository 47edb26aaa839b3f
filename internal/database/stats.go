// internal/database/stats.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/unoplay/uno-server/internal/models"
)

// RecordGameResult upserts per-player aggregate statistics once per finished
// game: the winner gains a game played and a game won, every other seated
// player a game played. It is a no-op when no pool is connected.
func RecordGameResult(ctx context.Context, winnerID string, players []*models.Player) error {
	if DB == nil {
		return nil
	}

	q := `
		INSERT INTO player_stats (player_id, player_name, games_played, games_won, last_played)
		VALUES ($1, $2, 1, $3, NOW())
		ON CONFLICT (player_id)
		DO UPDATE SET
			player_name  = EXCLUDED.player_name,
			games_played = player_stats.games_played + 1,
			games_won    = player_stats.games_won + EXCLUDED.games_won,
			last_played  = NOW()
	`

	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, p := range players {
			won := 0
			if p.ID == winnerID {
				won = 1
			}
			if _, e := tx.Exec(ctx, q, p.ID, p.Name, won); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx upsert player stats: %w", err)
	}
	return nil
}

// GetPlayerStats loads one player's aggregates, mainly for the stats API.
func GetPlayerStats(ctx context.Context, playerID string) (gamesPlayed, gamesWon int, err error) {
	if DB == nil {
		return 0, 0, fmt.Errorf("stats store not connected")
	}
	q := `SELECT games_played, games_won FROM player_stats WHERE player_id = $1`
	err = DB.QueryRow(ctx, q, playerID).Scan(&gamesPlayed, &gamesWon)
	return gamesPlayed, gamesWon, err
}
