// internal/handlers/stats.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/unoplay/uno-server/internal/database"
)

// PlayerStatsHandler serves a player's aggregate statistics:
// GET /stats?player={id}.
func PlayerStatsHandler(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player")
	if playerID == "" {
		http.Error(w, "missing player query parameter", http.StatusBadRequest)
		return
	}

	played, won, err := database.GetPlayerStats(r.Context(), playerID)
	if err != nil {
		http.Error(w, "stats unavailable", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"playerId":    playerID,
		"gamesPlayed": played,
		"gamesWon":    won,
	})
}
