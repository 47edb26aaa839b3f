// internal/models/settings.go
package models

// Room capacity bounds enforced on join and start.
const (
	MinPlayers = 2
	MaxPlayers = 10
)

// RoomSettings is the mutable room configuration. MaxPlayers changes never
// evict seated players; the cap only applies to subsequent joins and starts.
type RoomSettings struct {
	MaxPlayers      int  `json:"maxPlayers"`
	AllowSpectators bool `json:"allowSpectators"`
	IsPrivate       bool `json:"isPrivate"`
}

// DefaultSettings returns the room settings with the given player limit,
// clamped into [MinPlayers, MaxPlayers].
func DefaultSettings(playerLimit int) RoomSettings {
	return RoomSettings{
		MaxPlayers: ClampPlayerLimit(playerLimit),
	}
}

// ClampPlayerLimit bounds a requested player limit into the supported range.
func ClampPlayerLimit(n int) int {
	if n < MinPlayers {
		return MinPlayers
	}
	if n > MaxPlayers {
		return MaxPlayers
	}
	return n
}

// SettingsPatch is a partial settings update. Nil fields keep their current
// value, matching the merge semantics of updateRoomSettings.
type SettingsPatch struct {
	MaxPlayers      *int  `json:"maxPlayers,omitempty"`
	AllowSpectators *bool `json:"allowSpectators,omitempty"`
	IsPrivate       *bool `json:"isPrivate,omitempty"`
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s *RoomSettings) {
	if p.MaxPlayers != nil {
		s.MaxPlayers = ClampPlayerLimit(*p.MaxPlayers)
	}
	if p.AllowSpectators != nil {
		s.AllowSpectators = *p.AllowSpectators
	}
	if p.IsPrivate != nil {
		s.IsPrivate = *p.IsPrivate
	}
}
