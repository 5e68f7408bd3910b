package deck

import (
	"fmt"
	"math/rand/v2"
)

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
}

// NewDeck creates a new standard 52-card deck in suit-then-rank order
func NewDeck() *Deck {
	deck := &Deck{
		cards: make([]Card, 0, 52),
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck.cards = append(deck.cards, NewCard(suit, rank))
		}
	}

	return deck
}

// Shuffle randomizes the order of cards in the deck using the supplied
// random source
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}

	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		if card, ok := d.Deal(); ok {
			cards[i] = card
		}
	}

	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// DealHand deals a five-card Hand from the deck
func (d *Deck) DealHand() (Hand, error) {
	if len(d.cards) < HandSize {
		return Hand{}, fmt.Errorf("%w: only %d cards left in deck", ErrInvalidHand, len(d.cards))
	}
	return NewHand(d.DealN(HandSize))
}
