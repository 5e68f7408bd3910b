package evaluator

import "fmt"

// Category is a poker hand category. Higher values beat lower ones.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// RankKey is the total-order key for a classified hand: category first,
// then the category's primary tie-break, then the secondary tie-break.
// The secondary is set only for two pair, where it holds the lower
// pair's rank; it is zero everywhere else.
type RankKey struct {
	Category  Category
	Primary   int
	Secondary int
}

// Compare returns -1 if k ranks below other, 0 if they tie, 1 if k ranks above
func (k RankKey) Compare(other RankKey) int {
	if k.Category != other.Category {
		if k.Category < other.Category {
			return -1
		}
		return 1
	}
	if k.Primary != other.Primary {
		if k.Primary < other.Primary {
			return -1
		}
		return 1
	}
	if k.Secondary != other.Secondary {
		if k.Secondary < other.Secondary {
			return -1
		}
		return 1
	}
	return 0
}

// Beats reports whether k strictly outranks other
func (k RankKey) Beats(other RankKey) bool {
	return k.Compare(other) > 0
}

// String returns the category name with its tie-break values
func (k RankKey) String() string {
	if k.Secondary != 0 {
		return fmt.Sprintf("%s (%d/%d)", k.Category, k.Primary, k.Secondary)
	}
	return fmt.Sprintf("%s (%d)", k.Category, k.Primary)
}
