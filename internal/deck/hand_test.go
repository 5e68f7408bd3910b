package deck

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNewHand(t *testing.T) {
	tests := []struct {
		name    string
		cards   []Card
		wantErr bool
	}{
		{
			name:  "five distinct cards",
			cards: MustParseCards("2d 2c 5h 2h 2s"),
		},
		{
			name:    "duplicate card",
			cards:   MustParseCards("2d 2d 5h 2h 2s"),
			wantErr: true,
		},
		{
			name:    "too few cards",
			cards:   MustParseCards("2d 2c 5h 2h"),
			wantErr: true,
		},
		{
			name:    "too many cards",
			cards:   MustParseCards("2d 2c 5h 2h 2s 3s"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand, err := NewHand(tt.cards)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewHand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHand) {
					t.Errorf("NewHand() error = %v, want ErrInvalidHand", err)
				}
				return
			}
			if !cardsEqual(hand.Cards(), tt.cards) {
				t.Errorf("NewHand() reordered cards: %v, want %v", hand.Cards(), tt.cards)
			}
		})
	}
}

func TestHandSorted(t *testing.T) {
	hand := MustParseHand("Ah 2d Kc 2h 5s")
	sorted := hand.Sorted()

	want := MustParseHand("2d 2h 5s Kc Ah")
	if sorted != want {
		t.Errorf("Sorted() = %v, want %v", sorted, want)
	}

	// Sorting is a copy; the original keeps input order
	if hand != MustParseHand("Ah 2d Kc 2h 5s") {
		t.Errorf("Sorted() mutated the receiver: %v", hand)
	}
}

func TestHandSortedKeepsSuitPairing(t *testing.T) {
	// Equal ranks must keep their relative input order (stable sort)
	hand := MustParseHand("2d 2c 2h 2s 5h")
	sorted := hand.Sorted()

	want := MustParseHand("2d 2c 2h 2s 5h")
	if sorted != want {
		t.Errorf("Sorted() = %v, want %v", sorted, want)
	}
}

func TestHandReplace(t *testing.T) {
	hand := MustParseHand("2d 2c 5h 2h 2s")
	replaced := hand.Replace(2, Card{Suit: Diamonds, Rank: Ace})

	if replaced[2] != (Card{Suit: Diamonds, Rank: Ace}) {
		t.Errorf("Replace() position 2 = %v, want A♦", replaced[2])
	}
	if hand[2] != (Card{Suit: Hearts, Rank: Five}) {
		t.Errorf("Replace() mutated the receiver: %v", hand)
	}
}

func TestHandNotation(t *testing.T) {
	hand := MustParseHand("2D 2C 5H 2H 2S")
	if got := hand.Notation(); got != "2d 2c 5h 2h 2s" {
		t.Errorf("Notation() = %q", got)
	}
}

func TestDeckDealsDistinctCards(t *testing.T) {
	d := NewDeck()
	if d.CardsRemaining() != 52 {
		t.Fatalf("NewDeck() has %d cards, want 52", d.CardsRemaining())
	}

	rng := rand.New(rand.NewPCG(12345, 0))
	d.Shuffle(rng)

	seen := NewCardSet(d.DealN(52))
	if seen.Count() != 52 {
		t.Errorf("deck dealt %d distinct cards, want 52", seen.Count())
	}
}

func TestDeckDealHand(t *testing.T) {
	d := NewDeck()
	rng := rand.New(rand.NewPCG(99, 0))
	d.Shuffle(rng)

	hand, err := d.DealHand()
	if err != nil {
		t.Fatalf("DealHand() error = %v", err)
	}
	if hand.Set().Count() != HandSize {
		t.Errorf("DealHand() dealt duplicates: %v", hand)
	}
	if d.CardsRemaining() != 52-HandSize {
		t.Errorf("CardsRemaining() = %d, want %d", d.CardsRemaining(), 52-HandSize)
	}

	// Shuffling with the same seed deals the same hand
	d2 := NewDeck()
	d2.Shuffle(rand.New(rand.NewPCG(99, 0)))
	hand2, err := d2.DealHand()
	if err != nil {
		t.Fatalf("DealHand() error = %v", err)
	}
	if hand != hand2 {
		t.Errorf("same seed dealt different hands: %v vs %v", hand, hand2)
	}
}
