// internal/game/view.go
package game

import (
	"github.com/unoplay/uno-server/internal/models"
)

// PlayerView is the per-viewer rendering of one seat. It is built from
// scratch rather than copied from models.Player, so the only way a hand can
// appear in a view is the explicit self-reveal in Project. Everyone else is
// reduced to a card count.
type PlayerView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
	Score  int    `json:"score"`

	Status   models.PlayerStatus `json:"status"`
	JoinedAt int64               `json:"joinedAt"`

	CardCount      int  `json:"cardsCount"`
	SaidUno        bool `json:"saidUno"`
	CanBePenalized bool `json:"canBePenalized"`

	// Cards is populated only for the viewer's own seat.
	Cards []models.Card `json:"cards"`
}

// View is a room snapshot as seen by one viewer. This is the sole shape that
// leaves the engine; serializing players any other way leaks hands.
type View struct {
	RoomID      string              `json:"roomId"`
	Players     []PlayerView        `json:"players"`
	CurrentCard *models.Card        `json:"currentCard"`
	CurrentID   string              `json:"currentPlayer"`
	GameStarted bool                `json:"gameStarted"`
	Direction   int                 `json:"direction"`
	DeckCount   int                 `json:"deckCount"`
	Settings    models.RoomSettings `json:"settings"`
	IsHost      bool                `json:"isHost"`
}

// Project renders the room for one viewer. Room-wide data (seat list with
// card counts, active card, turn, direction, settings) is identical for
// everyone; only the viewer's own seat carries hand contents.
func (r *Room) Project(viewerID string) View {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	view := View{
		RoomID:      r.ID,
		Players:     make([]PlayerView, 0, len(r.Players)),
		CurrentID:   r.currentPlayerIDLocked(),
		GameStarted: r.Phase == PhaseInProgress,
		Direction:   r.Direction,
		Settings:    r.Settings,
	}
	if r.Deck != nil {
		view.DeckCount = r.Deck.Len()
	}
	if len(r.Discard) > 0 {
		card := r.Discard[len(r.Discard)-1]
		view.CurrentCard = &card
	}

	for _, p := range r.Players {
		pv := PlayerView{
			ID:             p.ID,
			Name:           p.Name,
			IsHost:         p.IsHost,
			Score:          p.Score,
			Status:         p.Status,
			JoinedAt:       p.JoinedAt,
			CardCount:      len(p.Hand),
			SaidUno:        p.SaidUno,
			CanBePenalized: p.CanBePenalized,
			Cards:          []models.Card{},
		}
		if p.ID == viewerID {
			pv.Cards = make([]models.Card, len(p.Hand))
			copy(pv.Cards, p.Hand)
			view.IsHost = p.IsHost
		}
		view.Players = append(view.Players, pv)
	}
	return view
}
