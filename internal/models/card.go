// internal/models/card.go
package models

// Color is a card face color. Black is reserved for wild cards.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Black  Color = "black"
)

// Colors lists the four playable (non-black) colors.
var Colors = []Color{Red, Blue, Green, Yellow}

// Value is a card face value: the numerals "0".."9" or one of the symbolic
// action/wild values below. Two cards match on value by plain string equality,
// so a red skip legally follows a blue skip.
type Value string

const (
	ValueSkip     Value = "skip"
	ValueReverse  Value = "reverse"
	ValueDrawTwo  Value = "draw2"
	ValueWild     Value = "wild"
	ValueDrawFour Value = "draw4"
)

// Card is one UNO card. SelectedColor is set only on a black card once its
// effective color has been chosen, and is never set on a colored card.
type Card struct {
	Color         Color `json:"color"`
	Value         Value `json:"value"`
	SelectedColor Color `json:"selectedColor,omitempty"`
}

// IsWild reports whether the card is black (wild or wild draw-four).
func (c Card) IsWild() bool {
	return c.Color == Black
}

// Same reports whether two cards are the same physical card face, ignoring
// any selected color. Hand ownership is matched on this.
func (c Card) Same(other Card) bool {
	return c.Color == other.Color && c.Value == other.Value
}

// EffectDraw returns how many cards the next player must draw when this card
// is played, or 0 for cards without a draw effect.
func (c Card) EffectDraw() int {
	switch c.Value {
	case ValueDrawTwo:
		return 2
	case ValueDrawFour:
		return 4
	}
	return 0
}
