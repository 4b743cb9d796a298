// Package brain converts personality traits into betting decisions for the
// NPC side. It is pure policy: given a sanitized engine view and three
// personality scalars it returns one decision, synchronously. Any dramatic
// pause before the action lands on the table belongs to the driver.
package brain

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/pokersim/headsup/internal/deck"
	"github.com/pokersim/headsup/internal/engine"
	"github.com/pokersim/headsup/internal/evaluator"
)

// Personality holds the three trait scalars, each in [0,1]. It is immutable
// for the life of a match.
type Personality struct {
	// Aggression scales bet frequency and sizing.
	Aggression float64
	// Bluffing is the probability weight of playing a weak hand as strong.
	Bluffing float64
	// RiskAversion raises the fold threshold when facing a bet.
	RiskAversion float64
}

// Clamp returns the personality with every trait clamped into [0,1].
func (p Personality) Clamp() Personality {
	return Personality{
		Aggression:   clamp01(p.Aggression),
		Bluffing:     clamp01(p.Bluffing),
		RiskAversion: clamp01(p.RiskAversion),
	}
}

func (p Personality) String() string {
	return fmt.Sprintf("aggression=%.2f bluffing=%.2f risk_aversion=%.2f",
		p.Aggression, p.Bluffing, p.RiskAversion)
}

// Brain is a stateless-per-call decision engine. The only state it carries
// across calls is the injected random source, so a seeded Brain replays
// identically.
type Brain struct {
	personality Personality
	rng         *rand.Rand
}

// New creates a Brain with the given personality and random source.
func New(personality Personality, rng *rand.Rand) *Brain {
	return &Brain{personality: personality.Clamp(), rng: rng}
}

// Personality returns the traits this brain plays with.
func (b *Brain) Personality() Personality { return b.personality }

// Decide picks a betting action for the NPC from the decision context. The
// context must carry the NPC's legal actions (engine populates them whenever
// the NPC is the side to act).
func (b *Brain) Decide(ctx engine.DecisionContext) engine.Decision {
	p := b.personality
	strength := b.handStrength(ctx)

	// A bluff inflates how strong the hand is played, not what it is.
	bluffing := b.rng.Float64() < p.Bluffing*0.35
	effective := strength
	if bluffing {
		effective = clamp01(effective + 0.35 + p.Bluffing*0.25)
	}

	va := ctx.Valid
	if va.CanCheck {
		return b.decideUnbet(ctx, effective, bluffing)
	}
	return b.decideFacingBet(ctx, effective, bluffing)
}

// decideUnbet handles the no-outstanding-bet case: check or bet, with bet
// probability and size scaled by aggression and effective strength.
func (b *Brain) decideUnbet(ctx engine.DecisionContext, effective float64, bluffing bool) engine.Decision {
	p := b.personality
	va := ctx.Valid

	betProb := effective * (0.25 + p.Aggression*0.65)
	if !va.CanRaise || b.rng.Float64() >= betProb {
		return engine.Decision{Action: engine.Check, Reasoning: "checking"}
	}

	amount := b.sizeBet(ctx, effective)
	reason := fmt.Sprintf("betting on strength %.2f", effective)
	if bluffing {
		reason = "bluff bet"
	}
	return engine.Decision{Action: engine.Raise, Amount: amount, Reasoning: reason}
}

// decideFacingBet folds below a risk-derived threshold, calls medium
// strength and raises high strength.
func (b *Brain) decideFacingBet(ctx engine.DecisionContext, effective float64, bluffing bool) engine.Decision {
	p := b.personality
	va := ctx.Valid

	// Risk-averse personalities need a stronger hand to continue.
	foldThreshold := 0.15 + p.RiskAversion*0.35
	if effective < foldThreshold && !bluffing {
		return engine.Decision{Action: engine.Fold,
			Reasoning: fmt.Sprintf("strength %.2f below threshold %.2f", effective, foldThreshold)}
	}

	raiseThreshold := 0.65 - p.Aggression*0.2
	if va.CanRaise && (effective > raiseThreshold || bluffing) {
		amount := b.sizeBet(ctx, effective)
		reason := fmt.Sprintf("raising on strength %.2f", effective)
		if bluffing {
			reason = "bluff raise"
		}
		return engine.Decision{Action: engine.Raise, Amount: amount, Reasoning: reason}
	}

	return engine.Decision{Action: engine.Call, Amount: va.CallAmount,
		Reasoning: fmt.Sprintf("calling %d on strength %.2f", va.CallAmount, effective)}
}

// sizeBet picks a raise-to amount scaled by aggression, pot size and
// strength, clamped into the legal range.
func (b *Brain) sizeBet(ctx engine.DecisionContext, effective float64) int {
	p := b.personality
	va := ctx.Valid

	fraction := 0.4 + p.Aggression*0.6 + (effective-0.5)*0.4
	amount := ctx.CurrentBet + int(float64(ctx.Pot)*fraction)
	if amount < va.RaiseMin {
		amount = va.RaiseMin
	}
	if amount > va.RaiseMax {
		amount = va.RaiseMax
	}
	return amount
}

// handStrength normalises hand quality to [0,1]: the pre-flop heuristic
// before the flop, the evaluator's category afterwards.
func (b *Brain) handStrength(ctx engine.DecisionContext) float64 {
	if len(ctx.HoleCards) < 2 {
		return 0
	}
	if len(ctx.Board) < 3 {
		return evaluator.PreflopStrength(ctx.HoleCards[0], ctx.HoleCards[1])
	}

	all := make([]deck.Card, 0, 7)
	all = append(all, ctx.HoleCards...)
	all = append(all, ctx.Board...)
	res := evaluator.Evaluate(all)

	// Category carries the weight; the primary card adds a small
	// within-category nudge so top pair outranks bottom pair.
	base := float64(res.Category) / 10
	fine := float64(res.Cards[0].Rank) / 140
	return clamp01(base + fine)
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
