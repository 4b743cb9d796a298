package brain

import (
	"testing"

	"github.com/pokersim/headsup/internal/deck"
	"github.com/pokersim/headsup/internal/engine"
	"github.com/pokersim/headsup/internal/randutil"
)

func holeCards(t *testing.T, a, b string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(a, b)
	if err != nil {
		t.Fatalf("bad cards: %v", err)
	}
	return cards
}

// facingBet is a pre-flop context where the NPC faces a raise.
func facingBet(t *testing.T, c1, c2 string) engine.DecisionContext {
	t.Helper()
	return engine.DecisionContext{
		Street:     engine.Preflop,
		Pot:        120,
		CurrentBet: 80,
		BigBlind:   20,
		HoleCards:  holeCards(t, c1, c2),
		Stack:      900,
		RoundBet:   20,
		Valid: engine.ValidActions{
			Side:       engine.NPCSide,
			CallAmount: 60,
			CanRaise:   true,
			RaiseMin:   100,
			RaiseMax:   920,
		},
	}
}

// unbet is a post-flop context with no outstanding bet.
func unbet(t *testing.T, c1, c2 string, board ...string) engine.DecisionContext {
	t.Helper()
	parsed, err := deck.ParseCards(board...)
	if err != nil {
		t.Fatalf("bad board: %v", err)
	}
	return engine.DecisionContext{
		Street:    engine.Flop,
		Pot:       80,
		BigBlind:  20,
		HoleCards: holeCards(t, c1, c2),
		Board:     parsed,
		Stack:     960,
		Valid: engine.ValidActions{
			Side:     engine.NPCSide,
			CanCheck: true,
			CanRaise: true,
			RaiseMin: 20,
			RaiseMax: 960,
		},
	}
}

func TestPremiumHandNeverFolds(t *testing.T) {
	t.Parallel()

	b := New(Personality{Aggression: 0.5, Bluffing: 0.2, RiskAversion: 0.9}, randutil.New(1))
	for i := 0; i < 100; i++ {
		d := b.Decide(facingBet(t, "As", "Ah"))
		if d.Action == engine.Fold {
			t.Fatal("pocket aces must never fold pre-flop")
		}
	}
}

func TestTrashFoldsForRiskAverseNonBluffer(t *testing.T) {
	t.Parallel()

	b := New(Personality{Aggression: 0.2, Bluffing: 0, RiskAversion: 1}, randutil.New(2))
	for i := 0; i < 100; i++ {
		d := b.Decide(facingBet(t, "7s", "2h"))
		if d.Action != engine.Fold {
			t.Fatalf("seven-deuce should fold facing a raise, got %v (%s)", d.Action, d.Reasoning)
		}
	}
}

func TestNeverFoldsWhenCheckIsFree(t *testing.T) {
	t.Parallel()

	b := New(Personality{Aggression: 0.8, Bluffing: 0.5, RiskAversion: 0.9}, randutil.New(3))
	for i := 0; i < 200; i++ {
		d := b.Decide(unbet(t, "7s", "2h", "Ks", "9d", "4c"))
		if d.Action != engine.Check && d.Action != engine.Raise {
			t.Fatalf("with no bet outstanding only check or bet are sensible, got %v", d.Action)
		}
	}
}

func TestRaiseAmountsStayLegal(t *testing.T) {
	t.Parallel()

	b := New(Personality{Aggression: 1, Bluffing: 1, RiskAversion: 0}, randutil.New(4))
	for i := 0; i < 200; i++ {
		ctx := facingBet(t, "Ks", "Kh")
		d := b.Decide(ctx)
		if d.Action != engine.Raise {
			continue
		}
		if d.Amount < ctx.Valid.RaiseMin || d.Amount > ctx.Valid.RaiseMax {
			t.Fatalf("raise to %d outside legal range [%d, %d]",
				d.Amount, ctx.Valid.RaiseMin, ctx.Valid.RaiseMax)
		}
	}
}

func TestAggressionRaisesMore(t *testing.T) {
	t.Parallel()

	count := func(aggression float64, seed int64) int {
		b := New(Personality{Aggression: aggression, Bluffing: 0, RiskAversion: 0.3}, randutil.New(seed))
		raises := 0
		for i := 0; i < 500; i++ {
			if b.Decide(unbet(t, "Ks", "Kh", "Kd", "9d", "4c")).Action == engine.Raise {
				raises++
			}
		}
		return raises
	}

	passive := count(0.05, 10)
	aggressive := count(0.95, 10)
	if aggressive <= passive {
		t.Errorf("aggressive brain raised %d times, passive %d; want more", aggressive, passive)
	}
}

func TestDeterministicReplay(t *testing.T) {
	t.Parallel()

	personality := Personality{Aggression: 0.6, Bluffing: 0.4, RiskAversion: 0.4}
	a := New(personality, randutil.New(42))
	b := New(personality, randutil.New(42))

	for i := 0; i < 100; i++ {
		ctx := facingBet(t, "Qs", "Jh")
		da, db := a.Decide(ctx), b.Decide(ctx)
		if da.Action != db.Action || da.Amount != db.Amount {
			t.Fatalf("decision %d diverged: %v/%d vs %v/%d", i, da.Action, da.Amount, db.Action, db.Amount)
		}
	}
}

func TestPersonalityClamp(t *testing.T) {
	t.Parallel()

	p := Personality{Aggression: 1.7, Bluffing: -0.3, RiskAversion: 0.5}.Clamp()
	if p.Aggression != 1 || p.Bluffing != 0 || p.RiskAversion != 0.5 {
		t.Errorf("clamp produced %+v", p)
	}
}
