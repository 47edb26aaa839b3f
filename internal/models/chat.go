// internal/models/chat.go
package models

// ChatMessage is relayed between seated players. The engine is not involved;
// the relay only consults the room's mute flags.
type ChatMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
