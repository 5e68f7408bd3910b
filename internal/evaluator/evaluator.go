package evaluator

import (
	"github.com/lox/pokerdraw/internal/deck"
)

// Classify maps a five-card hand to its rank key. It is total over valid
// hands: every hand lands in exactly one category, decided by the fixed
// precedence ladder from straight flush down to high card.
func Classify(hand deck.Hand) RankKey {
	sorted := hand.Sorted()
	groups := rankGroups(sorted)

	straightHigh, straight := straightRank(sorted)
	flushSum, flush := flushRank(sorted)

	if straight && flush {
		return RankKey{Category: StraightFlush, Primary: straightHigh}
	}
	if rank, ok := ofAKindRank(groups, 4); ok {
		return RankKey{Category: FourOfAKind, Primary: rank}
	}
	if rank, ok := fullHouseRank(groups); ok {
		return RankKey{Category: FullHouse, Primary: rank}
	}
	if flush {
		return RankKey{Category: Flush, Primary: flushSum}
	}
	if straight {
		return RankKey{Category: Straight, Primary: straightHigh}
	}
	if rank, ok := ofAKindRank(groups, 3); ok {
		return RankKey{Category: ThreeOfAKind, Primary: rank}
	}
	if high, low, ok := twoPairRanks(groups); ok {
		return RankKey{Category: TwoPair, Primary: high, Secondary: low}
	}
	if rank, ok := ofAKindRank(groups, 2); ok {
		return RankKey{Category: OnePair, Primary: rank}
	}
	return RankKey{Category: HighCard, Primary: int(sorted[deck.HandSize-1].Rank)}
}

// IsImprovement reports whether the candidate hand strictly outranks the
// baseline key. Exact ties are never improvements.
func IsImprovement(baseline RankKey, candidate deck.Hand) bool {
	return Classify(candidate).Beats(baseline)
}

// rankGroup is a run of equal ranks in a sorted hand
type rankGroup struct {
	rank  deck.Rank
	count int
}

// rankGroups returns the distinct ranks of a sorted hand in ascending
// order with their multiplicities
func rankGroups(sorted deck.Hand) []rankGroup {
	groups := make([]rankGroup, 0, deck.HandSize)
	for _, card := range sorted {
		if n := len(groups); n > 0 && groups[n-1].rank == card.Rank {
			groups[n-1].count++
			continue
		}
		groups = append(groups, rankGroup{rank: card.Rank, count: 1})
	}
	return groups
}

// flushRank reports whether all five cards share a suit. The tie-break
// is the sum of all five ranks: flushes compare by total pip count, not
// by high card, so two different flushes can tie and a higher sum wins
// even against a higher top card.
func flushRank(sorted deck.Hand) (int, bool) {
	sum := 0
	for _, card := range sorted {
		if card.Suit != sorted[0].Suit {
			return 0, false
		}
		sum += int(card.Rank)
	}
	return sum, true
}

// straightRank reports whether the sorted hand is five consecutive
// ranks. The wheel A-2-3-4-5 counts as a five-high straight.
func straightRank(sorted deck.Hand) (int, bool) {
	if isWheel(sorted) {
		return int(deck.Five), true
	}
	for i := 1; i < deck.HandSize; i++ {
		if sorted[i].Rank != sorted[i-1].Rank+1 {
			return 0, false
		}
	}
	return int(sorted[deck.HandSize-1].Rank), true
}

func isWheel(sorted deck.Hand) bool {
	return sorted[0].Rank == deck.Two &&
		sorted[1].Rank == deck.Three &&
		sorted[2].Rank == deck.Four &&
		sorted[3].Rank == deck.Five &&
		sorted[4].Rank == deck.Ace
}

// ofAKindRank reports whether some rank occurs at least n times,
// returning the highest qualifying rank
func ofAKindRank(groups []rankGroup, n int) (int, bool) {
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i].count >= n {
			return int(groups[i].rank), true
		}
	}
	return 0, false
}

// fullHouseRank reports whether the hand splits into a three of a kind
// and a pair at disjoint ranks, returning the three of a kind's rank
func fullHouseRank(groups []rankGroup) (int, bool) {
	if len(groups) != 2 {
		return 0, false
	}
	if groups[0].count == 3 && groups[1].count == 2 {
		return int(groups[0].rank), true
	}
	if groups[0].count == 2 && groups[1].count == 3 {
		return int(groups[1].rank), true
	}
	return 0, false
}

// twoPairRanks reports whether the hand holds two disjoint pairs,
// returning the higher and lower pair ranks
func twoPairRanks(groups []rankGroup) (int, int, bool) {
	var pairs []int
	for _, g := range groups {
		if g.count == 2 {
			pairs = append(pairs, int(g.rank))
		}
	}
	if len(pairs) != 2 {
		return 0, 0, false
	}
	// groups ascend, so the later pair is the higher one
	return pairs[1], pairs[0], true
}
