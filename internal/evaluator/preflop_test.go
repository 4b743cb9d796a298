package evaluator

import (
	"testing"

	"github.com/pokersim/headsup/internal/deck"
)

func TestPreflopStrengthBounds(t *testing.T) {
	t.Parallel()

	for r1 := deck.Two; r1 <= deck.Ace; r1++ {
		for r2 := deck.Two; r2 <= deck.Ace; r2++ {
			for _, suited := range []bool{true, false} {
				s2 := deck.Hearts
				if suited {
					s2 = deck.Spades
				}
				if r1 == r2 && suited {
					continue // impossible combo
				}
				v := PreflopStrength(deck.NewCard(r1, deck.Spades), deck.NewCard(r2, s2))
				if v < 0 || v > 1 {
					t.Fatalf("strength %v out of [0,1] for %v %v", v, r1, r2)
				}
			}
		}
	}
}

func TestPreflopStrengthOrdering(t *testing.T) {
	t.Parallel()

	aces := PreflopStrength(deck.MustParseCard("As"), deck.MustParseCard("Ah"))
	akSuited := PreflopStrength(deck.MustParseCard("As"), deck.MustParseCard("Ks"))
	akOffsuit := PreflopStrength(deck.MustParseCard("As"), deck.MustParseCard("Kh"))
	trashOffsuit := PreflopStrength(deck.MustParseCard("7s"), deck.MustParseCard("2h"))

	if aces <= akSuited {
		t.Error("pocket aces should outrank ace-king suited")
	}
	if akSuited <= akOffsuit {
		t.Error("suited hands should outrank their offsuit twin")
	}
	if akOffsuit <= trashOffsuit {
		t.Error("ace-king should outrank seven-deuce")
	}
}

func TestPreflopStrengthArgumentOrder(t *testing.T) {
	t.Parallel()

	a := deck.MustParseCard("Qh")
	b := deck.MustParseCard("9s")
	if PreflopStrength(a, b) != PreflopStrength(b, a) {
		t.Error("strength must be symmetric in its arguments")
	}
}
