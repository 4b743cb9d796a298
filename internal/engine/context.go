package engine

import "github.com/pokersim/headsup/internal/deck"

// DecisionContext is the sanitized projection of engine state handed to the
// NPC decision engine. It carries the NPC's own hole cards but never the
// human side's.
type DecisionContext struct {
	Street     Street
	Pot        int
	CurrentBet int
	BigBlind   int

	HoleCards []deck.Card // NPC's own two cards
	Board     []deck.Card

	Stack         int // NPC chips behind
	RoundBet      int // NPC contribution this round
	OpponentStack int

	// Valid describes the NPC's legal actions. Populated only when the
	// engine is actually waiting on the NPC.
	Valid ValidActions
}

// DecisionContext returns the NPC-safe view of the current state.
func (e *Engine) DecisionContext() DecisionContext {
	ctx := DecisionContext{
		Street:        e.street,
		Pot:           e.pot,
		CurrentBet:    e.currentBet,
		BigBlind:      e.bigBlind,
		HoleCards:     e.npcCards(),
		Board:         e.Board(),
		Stack:         e.seats[NPCSide].stack,
		RoundBet:      e.seats[NPCSide].roundBet,
		OpponentStack: e.seats[PlayerSide].stack,
	}
	if e.toAct == NPCSide && (e.phase == AwaitingInput || e.phase == Betting) {
		ctx.Valid = e.validActions()
	}
	return ctx
}
