package estimator

import (
	"math/rand/v2"

	"github.com/lox/pokerdraw/internal/deck"
)

// DrawReplacement samples uniformly random cards until one falls outside
// the excluded set. The discarded card stays excluded, so a draw can
// never hand back the card it replaces. With a five card hand excluded,
// 47 of 52 draws are admissible and the loop terminates quickly.
func DrawReplacement(rng *rand.Rand, excluded deck.CardSet) deck.Card {
	for {
		card := deck.Card{
			Rank: deck.Rank(rng.IntN(13) + 2),
			Suit: deck.Suit(rng.IntN(4)),
		}
		if !excluded.Contains(card) {
			return card
		}
	}
}
