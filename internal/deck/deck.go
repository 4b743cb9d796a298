package deck

import (
	"fmt"

	rand "math/rand/v2"
)

// Deck is a single-use 52-card deck. A fresh deck is created for every hand
// and never reused once dealing starts.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// New creates a new shuffled deck using the provided random source.
// The RNG is required; callers own seeding (see internal/randutil).
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.Shuffle()
	return d
}

// Shuffle re-shuffles the undealt deck using Fisher-Yates and rewinds it.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards. Running out of cards is
// impossible in a two-player hand (9 cards max), so underflow is treated as
// a programmer error rather than a play-time condition.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		panic(fmt.Sprintf("deck underflow: %d cards requested, %d remain", n, d.Remaining()))
	}

	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// NewStacked builds an unshuffled deck that deals the given cards first,
// followed by the rest of the pack in canonical order. It exists so tests
// can force exact boards; it panics on duplicates.
func NewStacked(prefix ...Card) *Deck {
	d := &Deck{}
	seen := make(map[Card]bool, len(prefix))

	i := 0
	for _, c := range prefix {
		if seen[c] {
			panic(fmt.Sprintf("stacked deck: duplicate card %v", c))
		}
		seen[c] = true
		d.cards[i] = c
		i++
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			if !seen[c] {
				d.cards[i] = c
				i++
			}
		}
	}

	return d
}
