// internal/game/deck.go
package game

import (
	"math/rand"

	"github.com/unoplay/uno-server/internal/models"
)

// DeckSize is the canonical UNO deck size: per color one 0, two each of 1-9,
// two each of skip/reverse/draw2, plus four wilds and four wild draw-fours.
const DeckSize = 108

// Deck is an ordered stack of cards. The top of the deck is index 0. Decks
// are not safe for concurrent use; the owning room serializes access.
type Deck struct {
	cards []models.Card
	rng   *rand.Rand
}

// NewDeck builds the canonical 108-card set and shuffles it with the given
// source. The source is injected so tests can replay exact deck orders.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: buildCards(),
		rng:   rng,
	}
	d.shuffle()
	return d
}

func buildCards() []models.Card {
	cards := make([]models.Card, 0, DeckSize)

	numerals := []models.Value{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	actions := []models.Value{models.ValueSkip, models.ValueReverse, models.ValueDrawTwo}

	for _, color := range models.Colors {
		for _, v := range numerals {
			cards = append(cards, models.Card{Color: color, Value: v})
			if v != "0" {
				cards = append(cards, models.Card{Color: color, Value: v})
			}
		}
		for _, v := range actions {
			cards = append(cards,
				models.Card{Color: color, Value: v},
				models.Card{Color: color, Value: v},
			)
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards,
			models.Card{Color: models.Black, Value: models.ValueWild},
			models.Card{Color: models.Black, Value: models.ValueDrawFour},
		)
	}
	return cards
}

// shuffle is an in-place Fisher-Yates pass from the last index down, swapping
// each card with a uniformly random earlier-or-equal position.
func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Deal removes and returns the top n cards. It fails with ErrDeckExhausted
// before removing anything when fewer than n remain.
func (d *Deck) Deal(n int) ([]models.Card, error) {
	if len(d.cards) < n {
		return nil, ErrDeckExhausted
	}
	dealt := make([]models.Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt, nil
}

// DrawOne removes and returns the top card.
func (d *Deck) DrawOne() (models.Card, error) {
	if len(d.cards) == 0 {
		return models.Card{}, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Refill shuffles the given cards back into the deck. Used by the
// reshuffle-discard policy when the deck runs dry.
func (d *Deck) Refill(cards []models.Card) {
	d.cards = append(d.cards, cards...)
	d.shuffle()
}
