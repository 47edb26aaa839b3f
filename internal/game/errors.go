// internal/game/errors.go
package game

import "errors"

// Domain errors reported to the invoking caller. Every room operation is
// all-or-nothing: when one of these is returned, no room state has changed.
var (
	// Join.
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyJoined = errors.New("player already joined")
	ErrBanned        = errors.New("player is banned from this room")

	// Start.
	ErrInsufficientPlayers = errors.New("at least two players are required to start")
	ErrTooManyPlayers      = errors.New("seated players exceed the room's player limit")
	ErrAlreadyStarted      = errors.New("game already in progress")

	// Play.
	ErrNotYourTurn  = errors.New("not your turn")
	ErrIllegalCard  = errors.New("card cannot be played on the active card")
	ErrCardNotOwned = errors.New("card is not in your hand")
	ErrNotStarted   = errors.New("game has not started")

	// SayUno.
	ErrInvalidUnoCall = errors.New("uno may only be called with one or two cards left")

	// Draw, deal and penalty draws when the deck cannot supply the
	// requested count, even after any permitted reshuffle.
	ErrDeckExhausted = errors.New("deck exhausted")

	ErrUnknownPlayer = errors.New("player is not in this room")
)
