// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/unoplay/uno-server/internal/game"
	"github.com/unoplay/uno-server/internal/models"
)

// ClientMessage is one inbound websocket message from a seated player.
type ClientMessage struct {
	Type string `json:"type"`

	// Card is the card being played (playCard).
	Card *models.Card `json:"card,omitempty"`

	// Target identifies another player (penalizeUno, playerAction).
	Target string `json:"target,omitempty"`

	// Action is the moderation verb for playerAction: kick, ban or mute.
	Action string `json:"action,omitempty"`

	// Settings carries a partial settings update (updateRoomSettings).
	Settings *models.SettingsPatch `json:"settings,omitempty"`

	// Text is the chat message body (chatMessage).
	Text string `json:"text,omitempty"`
}

// RoomWSHandler upgrades the connection, seats the player in the requested
// room (creating it on first join), and runs the message loop until the
// player disconnects. Connection parameters come from the query string:
// room, name, playerId (optional), playerLimit. The first player seated in a
// room becomes its host; clients cannot claim the role.
func RoomWSHandler(logger *logrus.Logger, srv *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		roomID := q.Get("room")
		playerName := q.Get("name")
		if roomID == "" || playerName == "" {
			http.Error(w, "Missing room or name query parameter", http.StatusBadRequest)
			return
		}

		playerID := q.Get("playerId")
		if playerID == "" {
			playerID = uuid.NewString()
		}
		playerLimit := 4
		if raw := q.Get("playerLimit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				playerLimit = n
			}
		}
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for room %s: %v", roomID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "internal error")

		room, created := srv.Rooms.GetOrCreate(roomID, playerLimit)
		if created {
			logger.Infof("Created room %s (limit %d)", roomID, playerLimit)
		}

		// Join assigns the host role to the first seat.
		player := &models.Player{
			ID:       playerID,
			Name:     playerName,
			Hand:     []models.Card{},
			Status:   models.StatusOnline,
			JoinedAt: time.Now().UnixMilli(),
			Conn:     c,
		}

		if err := room.Join(player); err != nil {
			logger.Infof("Join rejected for player %s in room %s: %v", playerID, roomID, err)
			sendWsError(c, err.Error())
			c.Close(websocket.StatusPolicyViolation, "join rejected")
			if room.IsEmpty() {
				srv.Rooms.Delete(roomID)
			}
			return
		}
		logger.Infof("Player %s (%s) joined room %s", playerName, playerID, roomID)

		srv.broadcastViews(room)
		srv.broadcastEvent(room, map[string]interface{}{
			"type":   "playerJoined",
			"id":     player.ID,
			"name":   player.Name,
			"isHost": player.IsHost,
		})
		srv.publishEvent(roomID, playerID, "player_joined", nil)

		readRoomMessages(r.Context(), c, srv, room, player, logger)

		// Read loop exited: unseat and tear the room down if it emptied.
		room.Leave(playerID)
		if room.IsEmpty() {
			logger.Infof("Deleting empty room %s", roomID)
			srv.Rooms.Delete(roomID)
		} else {
			srv.broadcastEvent(room, map[string]interface{}{
				"type": "playerLeft",
				"id":   playerID,
			})
			srv.broadcastViews(room)
		}
		srv.publishEvent(roomID, playerID, "player_left", nil)
	}
}

// readRoomMessages reads and dispatches client messages until the connection
// drops or the context is canceled.
func readRoomMessages(ctx context.Context, c *websocket.Conn, srv *RoomServer, room *game.Room, player *models.Player, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				strings.Contains(err.Error(), "context canceled") {
				logger.Infof("WebSocket closed for player %s in room %s", player.ID, room.ID)
			} else {
				logger.Warnf("Read error for player %s in room %s: %v", player.ID, room.ID, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON from player %s in room %s: %v", player.ID, room.ID, err)
			sendWsError(c, "invalid JSON")
			continue
		}

		handleRoomMessage(srv, room, player, c, msg, logger)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// handleRoomMessage applies one client message to the room and fans the
// resulting state out to all seats.
func handleRoomMessage(srv *RoomServer, room *game.Room, player *models.Player, c *websocket.Conn, msg ClientMessage, logger *logrus.Logger) {
	switch msg.Type {
	case "startGame":
		if !room.IsHost(player.ID) {
			sendWsError(c, "only the host can start the game")
			return
		}
		if err := room.Start(); err != nil {
			sendWsError(c, err.Error())
			return
		}
		logger.Infof("Game started in room %s", room.ID)
		srv.publishEvent(room.ID, player.ID, "game_started", nil)
		srv.broadcastViews(room)

	case "playCard":
		if msg.Card == nil {
			sendWsError(c, "playCard requires a card")
			return
		}
		winner, err := room.PlayCard(player.ID, *msg.Card)
		if err != nil {
			sendWsError(c, err.Error())
			return
		}
		if winner != nil {
			logger.Infof("Player %s won in room %s", winner.ID, room.ID)
			srv.finishGame(room, winner)
		}
		srv.broadcastViews(room)

	case "drawCard":
		if err := room.Draw(player.ID); err != nil {
			sendWsError(c, err.Error())
			return
		}
		srv.broadcastViews(room)

	case "sayUno":
		if err := room.SayUno(player.ID); err != nil {
			sendWsError(c, err.Error())
			return
		}
		srv.broadcastEvent(room, map[string]interface{}{
			"type":     "unoSaid",
			"playerId": player.ID,
		})
		srv.publishEvent(room.ID, player.ID, "uno_said", nil)
		srv.broadcastViews(room)

	case "penalizeUno":
		penalized, err := room.PenalizeForUno(msg.Target)
		if err != nil {
			sendWsError(c, err.Error())
			return
		}
		if penalized {
			srv.broadcastEvent(room, map[string]interface{}{
				"type":     "unoPenalized",
				"targetId": msg.Target,
			})
			srv.publishEvent(room.ID, msg.Target, "uno_penalized", nil)
			srv.broadcastViews(room)
		}

	case "chatMessage":
		if room.IsMuted(player.ID) {
			return
		}
		srv.broadcastEvent(room, map[string]interface{}{
			"type": "chatMessage",
			"message": models.ChatMessage{
				ID:        uuid.NewString(),
				Sender:    player.Name,
				Text:      msg.Text,
				Timestamp: time.Now().UnixMilli(),
			},
		})

	case "playerAction":
		if !room.IsHost(player.ID) {
			sendWsError(c, "only the host can moderate players")
			return
		}
		handleModeration(srv, room, msg.Action, msg.Target, logger)

	case "updateRoomSettings":
		if !room.IsHost(player.ID) {
			sendWsError(c, "only the host can change settings")
			return
		}
		if msg.Settings == nil {
			sendWsError(c, "updateRoomSettings requires settings")
			return
		}
		room.UpdateSettings(*msg.Settings)
		srv.broadcastViews(room)

	default:
		sendWsError(c, "unknown message type: "+msg.Type)
	}
}

// handleModeration applies a host moderation verb to the target player.
func handleModeration(srv *RoomServer, room *game.Room, action, targetID string, logger *logrus.Logger) {
	target := findSeated(srv, room, targetID)

	switch action {
	case "kick":
		room.Leave(targetID)
		if target != nil {
			srv.sendToPlayer(target, map[string]string{"type": "kicked"})
		}
	case "ban":
		room.Ban(targetID)
		if target != nil {
			srv.sendToPlayer(target, map[string]string{"type": "banned"})
		}
	case "mute":
		room.Mute(targetID)
		if target != nil {
			srv.sendToPlayer(target, map[string]string{"type": "muted"})
		}
	default:
		logger.Warnf("Unknown moderation action %q in room %s", action, room.ID)
		return
	}
	srv.publishEvent(room.ID, targetID, "player_"+action, nil)
	srv.broadcastViews(room)
}

func findSeated(srv *RoomServer, room *game.Room, id string) *models.Player {
	for _, p := range srv.seatedConns(room) {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// sendWsError sends a structured error message to one client.
func sendWsError(c *websocket.Conn, errorMsg string) {
	data, err := json.Marshal(map[string]string{
		"type":    "error",
		"message": errorMsg,
	})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = c.Write(ctx, websocket.MessageText, data)
}
