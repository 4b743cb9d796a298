package engine

import "testing"

// TestAllInRunout raises all-in pre-flop, calls, and expects the remaining
// streets to deal automatically with no further turn prompts.
func TestAllInRunout(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	e := stackedEngine(t, 100, 100, PlayerSide,
		"As", "Ah", "Kd", "Kc", "2c", "7d", "9s", "3h", "4d")
	e.AddObserver(rec)

	if err := e.StartNewHand(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := e.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}

	// Dealer (player) shoves, NPC calls.
	if err := e.SubmitAction(PlayerSide, Raise, 100); err != nil {
		t.Fatalf("shove: %v", err)
	}
	if err := e.SubmitAction(NPCSide, Call, 0); err != nil {
		t.Fatalf("call: %v", err)
	}

	turnsBefore := rec.count(EventTypePlayerTurn) + rec.count(EventTypeNPCTurn)

	// Streets run out; each deal still pauses for rendering.
	for e.Phase() != PostHand || e.Paused() {
		if !e.Paused() {
			t.Fatalf("expected pause during runout, phase %v", e.Phase())
		}
		if err := e.Resume(); err != nil {
			t.Fatalf("resume during runout: %v", err)
		}
	}

	if got := rec.count(EventTypePlayerTurn) + rec.count(EventTypeNPCTurn); got != turnsBefore {
		t.Errorf("turn events during runout: got %d extra", got-turnsBefore)
	}
	if rec.count(EventTypeCommunityCards) != 3 {
		t.Errorf("community deals = %d, want 3", rec.count(EventTypeCommunityCards))
	}
	if rec.count(EventTypeShowdown) != 1 {
		t.Error("runout must end in a showdown")
	}

	// Aces hold on this board.
	if got := e.Stack(PlayerSide); got != 200 {
		t.Errorf("player stack = %d, want 200", got)
	}
	if got := e.Stack(NPCSide); got != 0 {
		t.Errorf("npc stack = %d, want 0", got)
	}
}

// TestShortAllInCallRefund covers the uncalled-bet refund: a covered side
// shoves, the short side calls for less, and the excess returns to the
// bettor before the runout.
func TestShortAllInCallRefund(t *testing.T) {
	t.Parallel()

	// NPC covers the player; board gives the NPC the winning pair.
	e := stackedEngine(t, 50, 500, PlayerSide,
		"9s", "8h", "Ad", "Ac", "2c", "7d", "Js", "3h", "4d")

	if err := e.StartNewHand(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := e.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}

	// Player completes the small blind, NPC raises beyond the player's
	// stack, player calls all-in short.
	if err := e.SubmitAction(PlayerSide, Call, 0); err != nil {
		t.Fatalf("player call: %v", err)
	}
	if err := e.SubmitAction(NPCSide, Raise, 100); err != nil {
		t.Fatalf("npc raise: %v", err)
	}
	if err := e.SubmitAction(PlayerSide, Call, 0); err != nil {
		t.Fatalf("player all-in call: %v", err)
	}

	for e.Phase() != PostHand || e.Paused() {
		if err := e.Resume(); err != nil {
			t.Fatalf("resume: %v", err)
		}
	}

	// Each side has 50 in the middle; the NPC's uncalled 50 came back and
	// its aces win the 100.
	if got := e.Stack(NPCSide); got != 550 {
		t.Errorf("npc stack = %d, want 550", got)
	}
	if got := e.Stack(PlayerSide); got != 0 {
		t.Errorf("player stack = %d, want 0", got)
	}
	if e.Pot() != 0 {
		t.Errorf("pot = %d, want 0", e.Pot())
	}
}
