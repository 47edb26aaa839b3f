// internal/game/room.go
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/unoplay/uno-server/internal/models"
)

// Phase is the room's lifecycle state. A finished room keeps its players and
// can be started again for a rematch; Start is the only way back in.
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseInProgress Phase = "in-progress"
	PhaseFinished   Phase = "finished"
)

// HandSize is the number of cards dealt to each player at start.
const HandSize = 7

// Room holds the entire state of one game room in memory. All operations
// mutate(self-contained, synchronous) under Mu; domain errors leave the room
// untouched. Registration order is turn order.
type Room struct {
	ID string

	Settings models.RoomSettings
	Rules    HouseRules

	Players []*models.Player
	Deck    *Deck

	// Discard holds every played card in play order; the last element is
	// the active card new plays must match.
	Discard []models.Card

	CurrentPlayerIndex int
	Direction          int
	Phase              Phase

	banned map[string]struct{}
	muted  map[string]struct{}

	rng *rand.Rand
	Mu  sync.Mutex
}

// NewRoom builds an empty room with the given player limit. The random
// source drives shuffling and opening-card color picks; pass nil for a
// time-seeded source.
func NewRoom(id string, playerLimit int, rng *rand.Rand) *Room {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Room{
		ID:        id,
		Settings:  models.DefaultSettings(playerLimit),
		Rules:     DefaultHouseRules(),
		Direction: 1,
		Phase:     PhaseLobby,
		banned:    make(map[string]struct{}),
		muted:     make(map[string]struct{}),
		rng:       rng,
	}
}

// Join seats a player. The first seat receives the host role; a host flag on
// any later joiner is cleared, so a room never holds two hosts. Join fails
// without side effects when the room is full, the id is already seated, or
// the id is banned.
func (r *Room) Join(p *models.Player) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if _, ok := r.banned[p.ID]; ok {
		return ErrBanned
	}
	if r.playerByID(p.ID) != nil {
		return ErrAlreadyJoined
	}
	if len(r.Players) >= r.Settings.MaxPlayers {
		return ErrRoomFull
	}
	p.IsHost = len(r.Players) == 0
	r.Players = append(r.Players, p)
	return nil
}

// Leave removes a player. When the removed player held the current turn in a
// running game, the turn passes to the next remaining player along the
// current direction; the turn index is re-clamped against the shorter seat
// order either way.
func (r *Room) Leave(id string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.removePlayer(id)
}

// Ban adds the id to the ban set and removes the player if seated. Banning
// an absent id only affects the set.
func (r *Room) Ban(id string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.banned[id] = struct{}{}
	r.removePlayer(id)
}

// Mute flags the player for the chat relay. The engine itself attaches no
// meaning to the flag.
func (r *Room) Mute(id string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.muted[id] = struct{}{}
}

// IsMuted reports whether the id has been muted.
func (r *Room) IsMuted(id string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	_, ok := r.muted[id]
	return ok
}

// IsBanned reports whether the id has been banned.
func (r *Room) IsBanned(id string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	_, ok := r.banned[id]
	return ok
}

// HasPlayer reports whether the id is seated.
func (r *Room) HasPlayer(id string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.playerByID(id) != nil
}

// IsEmpty reports whether no players remain; the store destroys empty rooms.
func (r *Room) IsEmpty() bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return len(r.Players) == 0
}

// IsHost reports whether the seated player with this id holds the host role.
func (r *Room) IsHost(id string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	p := r.playerByID(id)
	return p != nil && p.IsHost
}

// Started reports whether a game is currently running.
func (r *Room) Started() bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.Phase == PhaseInProgress
}

// CurrentPlayerID returns the id of the player whose turn it is, or "" for
// an empty room.
func (r *Room) CurrentPlayerID() string {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.currentPlayerIDLocked()
}

// IsCurrentPlayer reports whether it is this player's turn.
func (r *Room) IsCurrentPlayer(id string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return id != "" && r.currentPlayerIDLocked() == id
}

// ActiveCard returns a copy of the card on top of the discard pile, or nil
// before the opening flip.
func (r *Room) ActiveCard() *models.Card {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if len(r.Discard) == 0 {
		return nil
	}
	card := r.Discard[len(r.Discard)-1]
	return &card
}

// UpdateSettings merges a partial settings update. Lowering MaxPlayers never
// evicts seated players; the cap binds joins and starts from here on.
func (r *Room) UpdateSettings(patch models.SettingsPatch) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	patch.Apply(&r.Settings)
}

// Start deals a fresh game: a new shuffled deck, seven cards per player, and
// one face-up opening card. A black opening card gets a uniformly random
// non-black selected color so the first play never requires a choice. Start
// is re-enterable from the finished phase for a rematch.
func (r *Room) Start() error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase == PhaseInProgress {
		return ErrAlreadyStarted
	}
	if len(r.Players) < models.MinPlayers {
		return ErrInsufficientPlayers
	}
	if len(r.Players) > r.Settings.MaxPlayers {
		return ErrTooManyPlayers
	}

	deck := NewDeck(r.rng)
	hands := make([][]models.Card, len(r.Players))
	for i := range r.Players {
		hand, err := deck.Deal(HandSize)
		if err != nil {
			return err
		}
		hands[i] = hand
	}
	opening, err := deck.DrawOne()
	if err != nil {
		return err
	}
	if opening.IsWild() {
		opening.SelectedColor = models.Colors[r.rng.Intn(len(models.Colors))]
	}

	// Validation and dealing are done; commit.
	r.Deck = deck
	r.Discard = []models.Card{opening}
	for i, p := range r.Players {
		p.Hand = hands[i]
		p.SaidUno = false
		p.CanBePenalized = false
	}
	r.CurrentPlayerIndex = 0
	r.Direction = 1
	r.Phase = PhaseInProgress
	return nil
}

// PlayCard validates and resolves one play for the given player. It returns
// the winning player when this play emptied their hand, in which case the
// room has moved to the finished phase and the turn no longer advances.
//
// A black card carries the caller-chosen SelectedColor; ownership is matched
// on the base color/value pair only. After resolution the turn stays with
// the player while their hand still holds another card of the played value
// (the same-value combo house rule).
func (r *Room) PlayCard(playerID string, card models.Card) (*models.Player, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase != PhaseInProgress {
		return nil, ErrNotStarted
	}
	if r.currentPlayerIDLocked() != playerID {
		return nil, ErrNotYourTurn
	}
	player := r.playerByID(playerID)

	var active *models.Card
	if len(r.Discard) > 0 {
		active = &r.Discard[len(r.Discard)-1]
	}
	if !CanPlay(card, active) {
		return nil, ErrIllegalCard
	}

	handIdx := -1
	for i, c := range player.Hand {
		if c.Same(card) {
			handIdx = i
			break
		}
	}
	if handIdx == -1 {
		return nil, ErrCardNotOwned
	}

	// Penalty cards for a draw effect are dealt up front, so nothing after
	// the first hand mutation can fail and leave a half-applied play.
	var penalty []models.Card
	if n := card.EffectDraw(); n > 0 {
		if err := r.ensureDeck(n); err != nil {
			return nil, err
		}
		cards, err := r.Deck.Deal(n)
		if err != nil {
			return nil, err
		}
		penalty = cards
	}

	if !card.IsWild() {
		card.SelectedColor = ""
	}

	player.Hand = append(player.Hand[:handIdx], player.Hand[handIdx+1:]...)
	r.Discard = append(r.Discard, card)

	r.resolveEffect(card, penalty)

	if len(player.Hand) == 0 {
		r.Phase = PhaseFinished
		return player, nil
	}

	if len(player.Hand) == 1 && !player.SaidUno {
		player.CanBePenalized = true
	}

	if !r.Rules.SameValueCombo || !r.holdsValue(player, card.Value) {
		r.advanceTurn()
	}
	return nil, nil
}

// Draw moves one card from the deck into the caller's hand and always passes
// the turn; drawing never grants a repeat turn.
func (r *Room) Draw(playerID string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase != PhaseInProgress {
		return ErrNotStarted
	}
	if r.currentPlayerIDLocked() != playerID {
		return ErrNotYourTurn
	}
	if err := r.ensureDeck(1); err != nil {
		return err
	}
	player := r.playerByID(playerID)
	card, err := r.Deck.DrawOne()
	if err != nil {
		return err
	}
	player.Hand = append(player.Hand, card)
	r.advanceTurn()
	return nil
}

// SayUno records the one-card-left declaration. It succeeds with one or two
// cards in hand and clears any pending penalty vulnerability.
func (r *Room) SayUno(playerID string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	player := r.playerByID(playerID)
	if player == nil {
		return ErrUnknownPlayer
	}
	if len(player.Hand) > 2 {
		return ErrInvalidUnoCall
	}
	player.SaidUno = true
	player.CanBePenalized = false
	return nil
}

// PenalizeForUno makes the target draw two cards for an unannounced last
// card. Any participant may call it; it reports false without side effects
// unless the target holds exactly one card and is vulnerable.
func (r *Room) PenalizeForUno(targetID string) (bool, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	target := r.playerByID(targetID)
	if target == nil || len(target.Hand) != 1 || !target.CanBePenalized {
		return false, nil
	}
	if err := r.ensureDeck(2); err != nil {
		return false, err
	}
	cards, err := r.Deck.Deal(2)
	if err != nil {
		return false, err
	}
	target.Hand = append(target.Hand, cards...)
	target.CanBePenalized = false
	target.SaidUno = false
	return true, nil
}

// CanPlay reports whether card may be played on the active card: always when
// there is no active card or the card is black, otherwise on a color match,
// a value match, or a match against a wild's selected color.
func CanPlay(card models.Card, active *models.Card) bool {
	if active == nil {
		return true
	}
	if card.Color == models.Black {
		return true
	}
	if card.Color == active.Color {
		return true
	}
	if card.Value == active.Value {
		return true
	}
	return active.SelectedColor != "" && card.Color == active.SelectedColor
}

// resolveEffect applies a played card's side effects. The penalty cards for a
// draw effect are pre-dealt by PlayCard. Callers hold Mu.
func (r *Room) resolveEffect(card models.Card, penalty []models.Card) {
	switch card.Value {
	case models.ValueReverse:
		// Two players: reversing is a no-op on turn identity, so treat it
		// as a skip instead.
		if len(r.Players) == 2 {
			r.advanceTurn()
		} else {
			r.Direction = -r.Direction
		}
	case models.ValueSkip:
		r.advanceTurn()
	case models.ValueDrawTwo, models.ValueDrawFour:
		r.advanceTurn()
		next := r.Players[r.CurrentPlayerIndex]
		next.Hand = append(next.Hand, penalty...)
	}
}

// ensureDeck tops the deck up to at least n cards, recycling the discard
// pile beneath the active card when the house rule allows it. Recycled wilds
// lose their selected color. The recycle only happens once the combined count
// is known to cover the request, so ErrDeckExhausted leaves both deck and
// discard untouched.
func (r *Room) ensureDeck(n int) error {
	if r.Deck == nil {
		return ErrDeckExhausted
	}
	if r.Deck.Len() >= n {
		return nil
	}
	recyclable := 0
	if r.Rules.ReshuffleDiscard && len(r.Discard) > 1 {
		recyclable = len(r.Discard) - 1
	}
	if r.Deck.Len()+recyclable < n {
		return ErrDeckExhausted
	}

	top := r.Discard[len(r.Discard)-1]
	recycled := make([]models.Card, len(r.Discard)-1)
	copy(recycled, r.Discard[:len(r.Discard)-1])
	for i := range recycled {
		recycled[i].SelectedColor = ""
	}
	r.Discard = []models.Card{top}
	r.Deck.Refill(recycled)
	return nil
}

// advanceTurn steps the turn index once along the current direction.
func (r *Room) advanceTurn() {
	n := len(r.Players)
	if n == 0 {
		return
	}
	r.CurrentPlayerIndex = (r.CurrentPlayerIndex + r.Direction + n) % n
}

// holdsValue reports whether the player still holds a card of this value.
func (r *Room) holdsValue(p *models.Player, v models.Value) bool {
	for _, c := range p.Hand {
		if c.Value == v {
			return true
		}
	}
	return false
}

func (r *Room) currentPlayerIDLocked() string {
	if len(r.Players) == 0 || r.CurrentPlayerIndex >= len(r.Players) {
		return ""
	}
	return r.Players[r.CurrentPlayerIndex].ID
}

func (r *Room) playerByID(id string) *models.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// removePlayer drops the seat and keeps the turn index valid. Callers hold Mu.
func (r *Room) removePlayer(id string) {
	idx := -1
	for i, p := range r.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	wasCurrent := idx == r.CurrentPlayerIndex
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	n := len(r.Players)
	if n == 0 {
		r.CurrentPlayerIndex = 0
		return
	}
	switch {
	case idx < r.CurrentPlayerIndex:
		r.CurrentPlayerIndex--
	case wasCurrent:
		if r.Direction > 0 {
			r.CurrentPlayerIndex = r.CurrentPlayerIndex % n
		} else {
			r.CurrentPlayerIndex = (r.CurrentPlayerIndex - 1 + n) % n
		}
	}
	if r.CurrentPlayerIndex >= n {
		r.CurrentPlayerIndex = r.CurrentPlayerIndex % n
	}
}
