package deck

import (
	"testing"

	"github.com/pokersim/headsup/internal/randutil"
)

// referenceDeck returns the canonical unshuffled 52-card set.
func referenceDeck() map[Card]bool {
	ref := make(map[Card]bool, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			ref[NewCard(rank, suit)] = true
		}
	}
	return ref
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 20; seed++ {
		d := New(randutil.New(seed))
		seen := make(map[Card]bool, 52)
		for _, c := range d.Deal(52) {
			if seen[c] {
				t.Fatalf("seed %d: duplicate card %v", seed, c)
			}
			seen[c] = true
		}

		ref := referenceDeck()
		for c := range ref {
			if !seen[c] {
				t.Fatalf("seed %d: missing card %v", seed, c)
			}
		}
	}
}

func TestDealRemovesCards(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(1))
	if d.Remaining() != 52 {
		t.Fatalf("fresh deck has %d cards, want 52", d.Remaining())
	}

	dealt := make(map[Card]bool)
	for _, n := range []int{2, 2, 3, 1, 1} { // hole cards + board of one hand
		for _, c := range d.Deal(n) {
			if dealt[c] {
				t.Fatalf("card %v dealt twice within one hand", c)
			}
			dealt[c] = true
		}
	}

	if d.Remaining() != 52-9 {
		t.Errorf("Remaining() = %d, want %d", d.Remaining(), 52-9)
	}
}

func TestDealUnderflowPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("dealing past the end of the deck should panic")
		}
	}()

	d := New(randutil.New(2))
	d.Deal(53)
}

func TestDeterministicShuffle(t *testing.T) {
	t.Parallel()

	a := New(randutil.New(99)).Deal(52)
	b := New(randutil.New(99)).Deal(52)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different orders at index %d", i)
		}
	}
}
