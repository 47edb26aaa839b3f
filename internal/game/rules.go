// internal/game/rules.go
package game

// HouseRules names the deliberate deviations from canonical UNO that this
// engine preserves. Both default to on for compatibility with the reference
// client.
type HouseRules struct {
	// SameValueCombo keeps the turn with the acting player after a play
	// when their remaining hand holds another card of the value just
	// played, letting them chain matching values.
	SameValueCombo bool `json:"sameValueCombo"`

	// ReshuffleDiscard recycles the discard pile beneath the active card
	// back into the deck when a draw cannot otherwise be supplied. With it
	// off, such draws fail with ErrDeckExhausted.
	ReshuffleDiscard bool `json:"reshuffleDiscard"`
}

// DefaultHouseRules returns the rule set the reference client expects.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		SameValueCombo:   true,
		ReshuffleDiscard: true,
	}
}
