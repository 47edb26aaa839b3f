// internal/game/view_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unoplay/uno-server/internal/models"
)

func findSeat(t *testing.T, v View, id string) PlayerView {
	t.Helper()
	for _, pv := range v.Players {
		if pv.ID == id {
			return pv
		}
	}
	t.Fatalf("seat %s not in view", id)
	return PlayerView{}
}

func TestProjectHidesOtherHands(t *testing.T) {
	r, players := newTestRoom(t, 3, 7)
	require.NoError(t, r.Start())

	for _, viewer := range players {
		view := r.Project(viewer.ID)
		require.Len(t, view.Players, 3)
		for _, pv := range view.Players {
			if pv.ID == viewer.ID {
				assert.Equal(t, viewer.Hand, pv.Cards, "viewer sees their own hand")
			} else {
				assert.Empty(t, pv.Cards, "%s must not see %s's cards", viewer.ID, pv.ID)
			}
			assert.Equal(t, HandSize, pv.CardCount)
		}
	}
}

func TestProjectRoomWideDataIsIdentical(t *testing.T) {
	r, _ := newTestRoom(t, 3, 7)
	require.NoError(t, r.Start())

	v1 := r.Project("p1")
	v2 := r.Project("p2")

	assert.Equal(t, v1.RoomID, v2.RoomID)
	assert.Equal(t, v1.CurrentCard, v2.CurrentCard)
	assert.Equal(t, v1.CurrentID, v2.CurrentID)
	assert.Equal(t, v1.Direction, v2.Direction)
	assert.Equal(t, v1.DeckCount, v2.DeckCount)
	assert.Equal(t, v1.Settings, v2.Settings)
	for i := range v1.Players {
		assert.Equal(t, v1.Players[i].CardCount, v2.Players[i].CardCount)
	}
}

func TestProjectFields(t *testing.T) {
	r, _ := newTestRoom(t, 2, 7)
	require.NoError(t, r.Start())

	view := r.Project("p1")
	assert.Equal(t, "room-1", view.RoomID)
	assert.True(t, view.GameStarted)
	assert.Equal(t, "p1", view.CurrentID)
	assert.Equal(t, 1, view.Direction)
	assert.Equal(t, DeckSize-2*HandSize-1, view.DeckCount)
	require.NotNil(t, view.CurrentCard)
	assert.True(t, view.IsHost, "p1 hosts the room")

	assert.False(t, r.Project("p2").IsHost)
}

func TestProjectLobbyView(t *testing.T) {
	r, _ := newTestRoom(t, 2, 7)
	view := r.Project("p1")

	assert.False(t, view.GameStarted)
	assert.Nil(t, view.CurrentCard)
	assert.Equal(t, 0, view.DeckCount)
	for _, pv := range view.Players {
		assert.Equal(t, 0, pv.CardCount)
	}
}

func TestProjectUnseatedViewer(t *testing.T) {
	r, _ := newTestRoom(t, 2, 7)
	require.NoError(t, r.Start())

	view := r.Project("spectator")
	assert.False(t, view.IsHost)
	for _, pv := range view.Players {
		assert.Empty(t, pv.Cards)
		assert.Equal(t, HandSize, pv.CardCount)
	}
}

func TestProjectFlagsFollowGameState(t *testing.T) {
	r, players := newTestRoom(t, 2, 7)
	require.NoError(t, r.Start())
	setActive(r, card(models.Red, "3"))
	setHand(players[0], card(models.Red, "5"), card(models.Blue, "7"))

	_, err := r.PlayCard("p1", card(models.Red, "5"))
	require.NoError(t, err)

	seat := findSeat(t, r.Project("p2"), "p1")
	assert.Equal(t, 1, seat.CardCount)
	assert.True(t, seat.CanBePenalized)
	assert.False(t, seat.SaidUno)
}

func TestProjectHandIsACopy(t *testing.T) {
	r, players := newTestRoom(t, 2, 7)
	require.NoError(t, r.Start())

	view := r.Project("p1")
	seat := findSeat(t, view, "p1")
	require.NotEmpty(t, seat.Cards)

	seat.Cards[0] = card(models.Red, "0")
	assert.NotEqual(t, seat.Cards[0], players[0].Hand[0],
		"mutating a view must not reach the room")
}

// The serialized view is what actually crosses the wire; the hidden-hand
// invariant has to survive marshaling too.
func TestProjectSerializedViewOmitsOtherHands(t *testing.T) {
	r, _ := newTestRoom(t, 2, 7)
	require.NoError(t, r.Start())

	raw, err := json.Marshal(r.Project("p1"))
	require.NoError(t, err)

	var decoded struct {
		Players []struct {
			ID         string        `json:"id"`
			Cards      []models.Card `json:"cards"`
			CardsCount int           `json:"cardsCount"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Players, 2)
	for _, p := range decoded.Players {
		if p.ID == "p1" {
			assert.Len(t, p.Cards, HandSize)
		} else {
			assert.Empty(t, p.Cards)
		}
		assert.Equal(t, HandSize, p.CardsCount)
	}
}
