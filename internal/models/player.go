// internal/models/player.go
package models

import (
	"github.com/coder/websocket"
)

// PlayerStatus tracks connection presence.
type PlayerStatus string

const (
	StatusOnline  PlayerStatus = "online"
	StatusOffline PlayerStatus = "offline"
)

// Player is one seated participant in a room. Hand is owned exclusively by
// the room engine and is never marshaled; viewers receive it only through
// the game.Project projection.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`

	Hand  []Card `json:"-"`
	Score int    `json:"score"`

	Status   PlayerStatus `json:"status"`
	JoinedAt int64        `json:"joinedAt"`

	// UNO-call tracking. SaidUno is the one-card-left declaration;
	// CanBePenalized marks the player vulnerable to a penalty call.
	SaidUno        bool `json:"saidUno"`
	CanBePenalized bool `json:"canBePenalized"`

	Conn *websocket.Conn `json:"-"`
}
