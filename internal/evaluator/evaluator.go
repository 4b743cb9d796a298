// Package evaluator ranks the best five-card poker hand out of seven cards.
//
// Evaluation checks categories from strongest to weakest and stops at the
// first match. Each result carries an integer score that totally orders any
// two hands: the category occupies the high digits and the five deciding
// ranks (primary cards first, then kickers) fill the rest, so a plain
// integer comparison agrees with poker hand ranking.
package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pokersim/headsup/internal/deck"
)

// Category is the hand category, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name
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
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandResult describes the best five-card hand found in a set of cards.
type HandResult struct {
	Category    Category
	Score       int         // total ordering; higher wins
	Cards       []deck.Card // the five contributing cards, strongest first
	Description string      // e.g. "Full House, Kings full of Fours"
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on an exact tie.
// Score alone decides: the category is packed into its high digits.
func Compare(a, b HandResult) int {
	switch {
	case a.Score > b.Score:
		return 1
	case a.Score < b.Score:
		return -1
	default:
		return 0
	}
}

// score packs the category and up to five deciding ranks into one integer.
// Ranks are base-15 digits so five of them can never overflow into the
// category digits.
func score(cat Category, ranks ...deck.Rank) int {
	s := int(cat)
	for i := 0; i < 5; i++ {
		s *= 15
		if i < len(ranks) {
			s += int(ranks[i])
		}
	}
	return s
}

// Evaluate finds the best five-card hand from five to seven cards. Showdown
// always passes seven; the decision engine evaluates partial boards too.
func Evaluate(cards []deck.Card) HandResult {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("evaluator: got %d cards, want 5-7", len(cards)))
	}

	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank > sorted[j].Rank })

	// Cards per suit, kept in descending rank order.
	var bySuit [4][]deck.Card
	for _, c := range sorted {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	// Count per rank and remember one representative card per rank.
	var counts [15]int
	for _, c := range sorted {
		counts[c.Rank]++
	}

	// Straight flush / royal flush
	for _, suited := range bySuit {
		if len(suited) < 5 {
			continue
		}
		if run, high := findStraight(suited); run != nil {
			if high == deck.Ace {
				return HandResult{
					Category:    RoyalFlush,
					Score:       score(RoyalFlush, high),
					Cards:       run,
					Description: "Royal Flush",
				}
			}
			return HandResult{
				Category:    StraightFlush,
				Score:       score(StraightFlush, high),
				Cards:       run,
				Description: fmt.Sprintf("Straight Flush, %s high", rankName(high)),
			}
		}
	}

	// Four of a kind
	if quad := highestWithCount(counts, 4); quad > 0 {
		hand := takeRank(sorted, quad, 4)
		kickers := takeKickers(sorted, 1, quad)
		hand = append(hand, kickers...)
		return HandResult{
			Category:    FourOfAKind,
			Score:       score(FourOfAKind, quad, kickers[0].Rank),
			Cards:       hand,
			Description: fmt.Sprintf("Four of a Kind, %s", pluralRank(quad)),
		}
	}

	// Full house: best trips plus best remaining pair (which may itself be
	// a second set of trips).
	if trips := highestWithCount(counts, 3); trips > 0 {
		if pair := highestPairExcluding(counts, trips); pair > 0 {
			hand := takeRank(sorted, trips, 3)
			hand = append(hand, takeRank(sorted, pair, 2)...)
			return HandResult{
				Category:    FullHouse,
				Score:       score(FullHouse, trips, pair),
				Cards:       hand,
				Description: fmt.Sprintf("Full House, %s full of %s", pluralRank(trips), pluralRank(pair)),
			}
		}
	}

	// Flush
	for _, suited := range bySuit {
		if len(suited) < 5 {
			continue
		}
		hand := suited[:5]
		return HandResult{
			Category:    Flush,
			Score:       score(Flush, hand[0].Rank, hand[1].Rank, hand[2].Rank, hand[3].Rank, hand[4].Rank),
			Cards:       hand,
			Description: fmt.Sprintf("Flush, %s high", rankName(hand[0].Rank)),
		}
	}

	// Straight
	if run, high := findStraight(sorted); run != nil {
		return HandResult{
			Category:    Straight,
			Score:       score(Straight, high),
			Cards:       run,
			Description: fmt.Sprintf("Straight, %s high", rankName(high)),
		}
	}

	// Three of a kind
	if trips := highestWithCount(counts, 3); trips > 0 {
		hand := takeRank(sorted, trips, 3)
		kickers := takeKickers(sorted, 2, trips)
		hand = append(hand, kickers...)
		return HandResult{
			Category:    ThreeOfAKind,
			Score:       score(ThreeOfAKind, trips, kickers[0].Rank, kickers[1].Rank),
			Cards:       hand,
			Description: fmt.Sprintf("Three of a Kind, %s", pluralRank(trips)),
		}
	}

	// Two pair / one pair
	if hi := highestWithCount(counts, 2); hi > 0 {
		if lo := highestPairExcluding(counts, hi); lo > 0 {
			hand := takeRank(sorted, hi, 2)
			hand = append(hand, takeRank(sorted, lo, 2)...)
			kickers := takeKickers(sorted, 1, hi, lo)
			hand = append(hand, kickers...)
			return HandResult{
				Category:    TwoPair,
				Score:       score(TwoPair, hi, lo, kickers[0].Rank),
				Cards:       hand,
				Description: fmt.Sprintf("Two Pair, %s and %s", pluralRank(hi), pluralRank(lo)),
			}
		}

		hand := takeRank(sorted, hi, 2)
		kickers := takeKickers(sorted, 3, hi)
		hand = append(hand, kickers...)
		return HandResult{
			Category:    OnePair,
			Score:       score(OnePair, hi, kickers[0].Rank, kickers[1].Rank, kickers[2].Rank),
			Cards:       hand,
			Description: fmt.Sprintf("Pair of %s", pluralRank(hi)),
		}
	}

	// High card
	hand := sorted[:5]
	return HandResult{
		Category:    HighCard,
		Score:       score(HighCard, hand[0].Rank, hand[1].Rank, hand[2].Rank, hand[3].Rank, hand[4].Rank),
		Cards:       hand,
		Description: fmt.Sprintf("High Card, %s", rankName(hand[0].Rank)),
	}
}

// findStraight scans descending-sorted cards for the highest five-card run,
// including the wheel (A-2-3-4-5). It returns the run strongest-first and
// the straight's high rank, or nil if no straight exists. In the wheel the
// ace plays low, so the high rank is Five.
func findStraight(sorted []deck.Card) ([]deck.Card, deck.Rank) {
	// One representative card per rank, descending.
	var byRank [15]*deck.Card
	for i := range sorted {
		c := sorted[i]
		if byRank[c.Rank] == nil {
			byRank[c.Rank] = &c
		}
	}

	for high := deck.Ace; high >= deck.Six; high-- {
		run := make([]deck.Card, 0, 5)
		for r := high; r > high-5; r-- {
			if byRank[r] == nil {
				break
			}
			run = append(run, *byRank[r])
		}
		if len(run) == 5 {
			return run, high
		}
	}

	// Wheel: 5-4-3-2-A
	if byRank[deck.Ace] != nil {
		run := make([]deck.Card, 0, 5)
		for r := deck.Five; r >= deck.Two; r-- {
			if byRank[r] == nil {
				return nil, 0
			}
			run = append(run, *byRank[r])
		}
		run = append(run, *byRank[deck.Ace])
		return run, deck.Five
	}

	return nil, 0
}

// highestWithCount returns the highest rank appearing exactly n times, or 0.
func highestWithCount(counts [15]int, n int) deck.Rank {
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] == n {
			return r
		}
	}
	return 0
}

// highestPairExcluding returns the highest rank with at least a pair,
// skipping the given rank. A second trips counts as the pair of a full house.
func highestPairExcluding(counts [15]int, except deck.Rank) deck.Rank {
	for r := deck.Ace; r >= deck.Two; r-- {
		if r != except && counts[r] >= 2 {
			return r
		}
	}
	return 0
}

// takeRank returns up to n cards of the given rank from descending-sorted cards.
func takeRank(sorted []deck.Card, rank deck.Rank, n int) []deck.Card {
	out := make([]deck.Card, 0, n)
	for _, c := range sorted {
		if c.Rank == rank {
			out = append(out, c)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// takeKickers returns the n highest cards whose ranks are not excluded.
func takeKickers(sorted []deck.Card, n int, exclude ...deck.Rank) []deck.Card {
	out := make([]deck.Card, 0, n)
	for _, c := range sorted {
		skip := false
		for _, ex := range exclude {
			if c.Rank == ex {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

func rankName(r deck.Rank) string {
	switch r {
	case deck.Ace:
		return "Ace"
	case deck.King:
		return "King"
	case deck.Queen:
		return "Queen"
	case deck.Jack:
		return "Jack"
	case deck.Ten:
		return "Ten"
	case deck.Nine:
		return "Nine"
	case deck.Eight:
		return "Eight"
	case deck.Seven:
		return "Seven"
	case deck.Six:
		return "Six"
	case deck.Five:
		return "Five"
	case deck.Four:
		return "Four"
	case deck.Three:
		return "Three"
	case deck.Two:
		return "Two"
	default:
		return "?"
	}
}

func pluralRank(r deck.Rank) string {
	name := rankName(r)
	if strings.HasSuffix(name, "x") {
		return name + "es" // Sixes
	}
	return name + "s"
}
