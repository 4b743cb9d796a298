package evaluator

import "github.com/pokersim/headsup/internal/deck"

// PreflopStrength estimates starting-hand quality in [0,1] from the two hole
// cards alone. It is a cheap heuristic for the streets before any community
// cards exist: pocket pairs and big cards dominate, with small bonuses for
// suitedness and connectedness.
func PreflopStrength(a, b deck.Card) float64 {
	hi, lo := a.Rank, b.Rank
	if lo > hi {
		hi, lo = lo, hi
	}

	// Base on combined rank weight; AKs tops out near 1.0, 32o bottoms out
	// near 0.18.
	strength := (float64(hi) + float64(lo)) / 28.0

	if hi == lo {
		strength += 0.25
	}

	if a.Suit == b.Suit {
		strength += 0.05
	}

	// Connected and one- or two-gap hands can flop straights.
	if gap := int(hi) - int(lo); gap >= 1 && gap <= 2 {
		strength += 0.05
	}

	return clamp01(strength)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
