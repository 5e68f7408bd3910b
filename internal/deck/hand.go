package deck

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// HandSize is the number of cards in a draw-poker hand
const HandSize = 5

// ErrInvalidHand is returned when a hand cannot be constructed from the
// cards given, either because the count is wrong or a card repeats.
var ErrInvalidHand = errors.New("invalid hand")

// Hand is a five-card hand. Cards keep the order they were supplied in
// so per-position results can be aligned with the original input; use
// Sorted for the rank-ascending view classification works on.
type Hand [HandSize]Card

// NewHand builds a Hand from exactly five distinct cards
func NewHand(cards []Card) (Hand, error) {
	var h Hand
	if len(cards) != HandSize {
		return h, fmt.Errorf("%w: got %d cards, want %d", ErrInvalidHand, len(cards), HandSize)
	}

	var seen CardSet
	for i, card := range cards {
		if seen.Contains(card) {
			return h, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, card)
		}
		seen.Add(card)
		h[i] = card
	}

	return h, nil
}

// ParseHand parses card notation (e.g. "2D 2C 5H 2H 2S") into a Hand
func ParseHand(s string) (Hand, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Hand{}, fmt.Errorf("%w: %v", ErrInvalidHand, err)
	}
	return NewHand(cards)
}

// MustParseHand parses a hand and panics on error (for tests)
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hand '%s': %v", s, err))
	}
	return h
}

// Sorted returns a copy of the hand ordered by ascending rank. The sort
// is stable so suits stay paired with their ranks and equal ranks keep
// their relative order.
func (h Hand) Sorted() Hand {
	sort.SliceStable(h[:], func(i, j int) bool {
		return h[i].Rank < h[j].Rank
	})
	return h
}

// Cards returns the hand's cards as a slice in input order
func (h Hand) Cards() []Card {
	cards := make([]Card, HandSize)
	copy(cards, h[:])
	return cards
}

// Set returns the hand's cards as a CardSet
func (h Hand) Set() CardSet {
	return NewCardSet(h[:])
}

// Replace returns a copy of the hand with the card at position i swapped
// for the given card
func (h Hand) Replace(i int, card Card) Hand {
	h[i] = card
	return h
}

// String returns the hand as space-separated card symbols (e.g. "2♦ 2♣ 5♥ 2♥ 2♠")
func (h Hand) String() string {
	parts := make([]string, HandSize)
	for i, card := range h {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// Notation returns the hand as space-separated card notation (e.g. "2d 2c 5h 2h 2s")
func (h Hand) Notation() string {
	parts := make([]string, HandSize)
	for i, card := range h {
		parts[i] = card.Notation()
	}
	return strings.Join(parts, " ")
}
