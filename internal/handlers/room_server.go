// internal/handlers/room_server.go
package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/unoplay/uno-server/internal/cache"
	"github.com/unoplay/uno-server/internal/database"
	"github.com/unoplay/uno-server/internal/game"
	"github.com/unoplay/uno-server/internal/models"
)

// RoomServer owns the live room registry and the fan-out plumbing that keeps
// every seated player's view current.
type RoomServer struct {
	Logger *logrus.Logger
	Rooms  *game.RoomStore
}

// NewRoomServer returns a server with an empty room registry.
func NewRoomServer(logger *logrus.Logger) *RoomServer {
	return &RoomServer{
		Logger: logger,
		Rooms:  game.NewRoomStore(),
	}
}

// seatedConns snapshots the connections of all seated players so writes can
// happen outside the room lock.
func (s *RoomServer) seatedConns(r *game.Room) []*models.Player {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	players := make([]*models.Player, len(r.Players))
	copy(players, r.Players)
	return players
}

// broadcastViews re-derives a view per seated player and delivers it to that
// player only. This is the single path game state takes to clients.
func (s *RoomServer) broadcastViews(r *game.Room) {
	for _, p := range s.seatedConns(r) {
		view := r.Project(p.ID)
		s.sendToPlayer(p, map[string]interface{}{
			"type":  "gameState",
			"state": view,
		})
	}
}

// broadcastEvent delivers an out-of-band notification to every seated
// player. Events carry ids and names, never hands.
func (s *RoomServer) broadcastEvent(r *game.Room, msg interface{}) {
	for _, p := range s.seatedConns(r) {
		s.sendToPlayer(p, msg)
	}
}

// sendToPlayer marshals and writes one message with a write timeout. Write
// failures are logged and left to the player's read loop to clean up.
func (s *RoomServer) sendToPlayer(p *models.Player, msg interface{}) {
	if p.Conn == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.Logger.Errorf("failed to marshal message for player %s: %v", p.ID, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := p.Conn.Write(ctx, websocket.MessageText, data); err != nil {
		s.Logger.Warnf("failed to write to player %s: %v", p.ID, err)
	}
}

// publishEvent pushes a room event onto the Redis queue for out-of-band
// consumers. Failures are logged, never surfaced to players.
func (s *RoomServer) publishEvent(roomID, playerID, eventType string, payload map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := cache.PublishRoomEvent(ctx, cache.RoomEventRecord{
			RoomID:    roomID,
			PlayerID:  playerID,
			EventType: eventType,
			Payload:   payload,
		})
		if err != nil {
			s.Logger.Warnf("failed to publish %s event for room %s: %v", eventType, roomID, err)
		}
	}()
}

// finishGame broadcasts the game-over notification and records aggregate
// statistics for every participant.
func (s *RoomServer) finishGame(r *game.Room, winner *models.Player) {
	s.broadcastEvent(r, map[string]interface{}{
		"type":       "gameOver",
		"winnerId":   winner.ID,
		"winnerName": winner.Name,
	})
	s.publishEvent(r.ID, winner.ID, "game_over", map[string]interface{}{
		"winnerName": winner.Name,
	})

	players := s.seatedConns(r)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.RecordGameResult(ctx, winner.ID, players); err != nil {
			s.Logger.Errorf("failed to record game result for room %s: %v", r.ID, err)
		}
	}()
}
