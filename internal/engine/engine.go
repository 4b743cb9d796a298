// Package engine implements the authoritative heads-up no-limit hold'em
// state machine.
//
// The engine owns all mutable match state and runs a synchronous advancement
// loop that executes phases back-to-back until it reaches one of three
// stopping points: a pause point (a fact was just emitted that the driver
// must render; call Resume to continue), AwaitingInput (call SubmitAction),
// or GameOver. It performs no I/O, blocks on nothing and holds no reference
// to any presentation object; callers are expected to serialise all calls in.
package engine

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pokersim/headsup/internal/deck"
	"github.com/pokersim/headsup/internal/evaluator"
	"github.com/pokersim/headsup/internal/randutil"
)

// Phase is the engine's top-level state.
type Phase int

const (
	PreHand Phase = iota
	Dealing
	Betting
	AwaitingInput
	Evaluating
	PostHand
	GameOver
)

func (p Phase) String() string {
	return [...]string{"pre_hand", "dealing", "betting", "awaiting_input",
		"evaluating", "post_hand", "game_over"}[p]
}

// Street is the hand sub-phase.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// seat is one side's per-hand state.
type seat struct {
	stack     int
	roundBet  int // contribution this betting round; already counted in pot
	holeCards []deck.Card
	acted     bool
}

type handOutcome struct {
	winnerIsPlayer bool
	tied           bool
	pot            int
}

// Engine drives a heads-up match hand by hand.
type Engine struct {
	logger    *log.Logger
	rng       *rand.Rand
	observers []Observer

	smallBlind int
	bigBlind   int

	phase      Phase
	street     Street
	pot        int
	currentBet int
	seats      [2]seat
	community  []deck.Card
	dealer     Side
	toAct      Side
	paused     bool
	inHand     bool
	runout     bool
	deck       *deck.Deck
	newDeck    func() *deck.Deck
	startTotal int
	lastResult handOutcome
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRNG injects the random source used to shuffle. Tests pass a seeded
// source for deterministic replay.
func WithRNG(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithDealer sets which side holds the dealer button for the first hand.
func WithDealer(s Side) Option {
	return func(e *Engine) { e.dealer = s }
}

// WithObserver registers an event observer at construction time.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithDeckFactory overrides how each hand's deck is built. Tests use it with
// deck.NewStacked to force exact boards.
func WithDeckFactory(fn func() *deck.Deck) Option {
	return func(e *Engine) { e.newDeck = fn }
}

// New creates an engine with the given starting stacks and blind sizes.
// The player holds the button by default; use WithDealer to flip that.
func New(playerStack, npcStack, smallBlind, bigBlind int, opts ...Option) *Engine {
	e := &Engine{
		logger:     log.New(io.Discard),
		rng:        randutil.New(time.Now().UnixNano()),
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		dealer:     PlayerSide,
		phase:      PreHand,
	}
	e.seats[PlayerSide].stack = playerStack
	e.seats[NPCSide].stack = npcStack

	for _, opt := range opts {
		opt(e)
	}
	if e.newDeck == nil {
		e.newDeck = func() *deck.Deck { return deck.New(e.rng) }
	}
	return e
}

// AddObserver registers an event observer. Observers are invoked
// synchronously, in registration order, from inside the advancement loop.
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// StartNewHand resets all per-hand state, shuffles a fresh deck, posts
// blinds and runs the advancement loop until the first stopping point.
func (e *Engine) StartNewHand() error {
	if e.phase == GameOver {
		return ErrGameOver
	}
	if e.inHand || (e.phase != PreHand && e.phase != PostHand) {
		return fmt.Errorf("%w: phase %s", ErrHandInProgress, e.phase)
	}

	for i := range e.seats {
		e.seats[i].roundBet = 0
		e.seats[i].holeCards = nil
		e.seats[i].acted = false
	}
	e.community = nil
	e.currentBet = 0
	e.runout = false
	e.paused = false
	e.street = Preflop
	e.deck = e.newDeck()
	e.inHand = true
	e.phase = PreHand

	e.run()
	return nil
}

// Resume continues the advancement loop from a pause point. Calling it while
// not paused changes nothing and reports ErrNotPaused.
func (e *Engine) Resume() error {
	if e.phase == GameOver {
		return ErrGameOver
	}
	if !e.paused {
		return ErrNotPaused
	}
	e.paused = false
	e.run()
	return nil
}

// SubmitAction applies a betting action for the given side. It is valid only
// in AwaitingInput and only for the side whose turn it is; every other
// combination is rejected without mutating state.
func (e *Engine) SubmitAction(side Side, action Action, amount int) error {
	if e.phase == GameOver {
		return ErrGameOver
	}
	if e.phase != AwaitingInput {
		return fmt.Errorf("%w: phase %s", ErrNotAwaitingInput, e.phase)
	}
	if side != e.toAct {
		return fmt.Errorf("%w: waiting on %s", ErrOutOfTurn, e.toAct)
	}

	va := e.validActions()
	s := &e.seats[side]

	switch action {
	case Fold:
		e.logger.Debug("action", "side", side, "action", "fold", "street", e.street)
		e.concludeByFold(side)
		return nil

	case Check:
		if !va.CanCheck {
			return fmt.Errorf("%w: cannot check facing a bet of %d", ErrInvalidAction, e.currentBet)
		}

	case Call:
		if va.CanCheck {
			return fmt.Errorf("%w: nothing to call", ErrInvalidAction)
		}
		s.stack -= va.CallAmount
		s.roundBet += va.CallAmount
		e.pot += va.CallAmount
		e.emit(PotUpdatedEvent{now(), e.pot})

	case Raise:
		if !va.CanRaise {
			return fmt.Errorf("%w: raise not available", ErrInvalidAction)
		}
		if amount < va.RaiseMin || amount > va.RaiseMax {
			return fmt.Errorf("%w: raise to %d outside [%d, %d]",
				ErrInvalidAction, amount, va.RaiseMin, va.RaiseMax)
		}
		add := amount - s.roundBet
		s.stack -= add
		s.roundBet = amount
		e.pot += add
		e.currentBet = amount
		// The opposing side must respond to the raise.
		e.seats[side.Other()].acted = false
		e.emit(PotUpdatedEvent{now(), e.pot})

	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}

	s.acted = true
	e.logger.Debug("action", "side", side, "action", action, "amount", amount,
		"street", e.street, "pot", e.pot)

	if !e.roundComplete() {
		e.toAct = side.Other()
	}
	e.phase = Betting
	e.run()
	return nil
}

// ValidActions reports the legal actions for the side to act. It is only
// meaningful while the engine awaits input.
func (e *Engine) ValidActions() (ValidActions, error) {
	if e.phase != AwaitingInput {
		return ValidActions{}, fmt.Errorf("%w: phase %s", ErrNotAwaitingInput, e.phase)
	}
	return e.validActions(), nil
}

// run is the advancement loop. It executes phases back-to-back until the
// engine pauses, needs input, rests between hands or the match ends.
func (e *Engine) run() {
	for {
		switch e.phase {
		case PreHand:
			e.stepPreHand()
		case Dealing:
			e.stepDealing()
		case Betting:
			e.stepBetting()
		case Evaluating:
			e.stepEvaluating()
		case PostHand:
			if e.inHand {
				e.stepPostHand()
			}
			return
		default:
			return
		}
		if e.paused || e.phase == AwaitingInput || e.phase == GameOver {
			return
		}
	}
}

func (e *Engine) stepPreHand() {
	e.startTotal = e.seats[PlayerSide].stack + e.seats[NPCSide].stack
	e.emit(HandStartedEvent{now(), e.seats[PlayerSide].stack, e.seats[NPCSide].stack, e.dealer})

	// Heads-up: the dealer posts the small blind.
	e.postBlind(e.dealer, e.smallBlind)
	e.postBlind(e.dealer.Other(), e.bigBlind)
	e.currentBet = e.bigBlind
	e.emit(PotUpdatedEvent{now(), e.pot})
	e.logger.Debug("blinds posted", "dealer", e.dealer, "pot", e.pot)

	// Elimination is checked after posting: a side that cannot fully cover
	// its blind busts here rather than playing a token hand.
	if e.seats[PlayerSide].stack == 0 || e.seats[NPCSide].stack == 0 {
		e.concludeMatch()
		return
	}

	e.phase = Dealing
}

func (e *Engine) postBlind(side Side, amount int) {
	s := &e.seats[side]
	n := min(amount, s.stack)
	s.stack -= n
	s.roundBet += n
	e.pot += n
}

func (e *Engine) stepDealing() {
	switch e.street {
	case Preflop:
		e.seats[PlayerSide].holeCards = e.deck.Deal(2)
		e.seats[NPCSide].holeCards = e.deck.Deal(2)
		e.emit(HoleCardsDealtEvent{now(), e.playerCards()})
	case Flop:
		e.community = append(e.community, e.deck.Deal(3)...)
		e.emit(CommunityCardsDealtEvent{now(), Flop, e.Board()})
	case Turn:
		e.community = append(e.community, e.deck.Deal(1)...)
		e.emit(CommunityCardsDealtEvent{now(), Turn, e.Board()})
	case River:
		e.community = append(e.community, e.deck.Deal(1)...)
		e.emit(CommunityCardsDealtEvent{now(), River, e.Board()})
	}

	// Every deal is a pause point: the driver renders, then resumes.
	e.paused = true

	if e.runout {
		// No further betting once a side is all-in; streets run out
		// back-to-back, pausing after each deal.
		if e.street == River {
			e.street = Showdown
			e.phase = Evaluating
		} else {
			e.street++
		}
		return
	}

	e.toAct = e.openingSide()
	e.phase = Betting
}

func (e *Engine) stepBetting() {
	if e.roundComplete() {
		e.advanceStreet()
		return
	}

	if e.toAct == PlayerSide {
		e.emit(PlayerTurnEvent{now(), e.validActions()})
	} else {
		e.emit(NPCTurnEvent{now(), e.DecisionContext()})
	}
	e.phase = AwaitingInput
}

// openingSide returns who acts first in the current round: the dealer
// (small blind) pre-flop, the non-dealer on every later street.
func (e *Engine) openingSide() Side {
	if e.street == Preflop {
		return e.dealer
	}
	return e.dealer.Other()
}

// roundComplete reports whether the betting round is over: both sides have
// acted and matched, or an all-in side has acted and no further chips can
// move.
func (e *Engine) roundComplete() bool {
	p, n := &e.seats[PlayerSide], &e.seats[NPCSide]
	if !p.acted || !n.acted {
		return false
	}
	if p.roundBet == n.roundBet {
		return true
	}
	// Unequal contributions with both sides done only happens on a short
	// all-in call; the uncalled excess is refunded in advanceStreet.
	return p.stack == 0 || n.stack == 0
}

func (e *Engine) advanceStreet() {
	p, n := &e.seats[PlayerSide], &e.seats[NPCSide]

	// Return the uncalled portion of a bet that a short all-in could not
	// fully match. Heads-up never needs side pots, but it does need this.
	if p.roundBet != n.roundBet {
		over, excess := p, p.roundBet-n.roundBet
		if n.roundBet > p.roundBet {
			over, excess = n, n.roundBet-p.roundBet
		}
		over.stack += excess
		e.pot -= excess
		e.logger.Debug("uncalled bet returned", "amount", excess, "pot", e.pot)
		e.emit(PotUpdatedEvent{now(), e.pot})
	}

	p.roundBet, n.roundBet = 0, 0
	p.acted, n.acted = false, false
	e.currentBet = 0

	if e.street == River {
		e.street = Showdown
		e.phase = Evaluating
		return
	}

	e.street++
	if p.stack == 0 || n.stack == 0 {
		e.runout = true
	}
	e.phase = Dealing
}

func (e *Engine) stepEvaluating() {
	playerHand := evaluator.Evaluate(append(e.playerCards(), e.community...))
	npcHand := evaluator.Evaluate(append(e.npcCards(), e.community...))
	cmp := evaluator.Compare(playerHand, npcHand)
	pot := e.pot

	result := ShowdownResult{
		PlayerHandDescription: playerHand.Description,
		NPCHandDescription:    npcHand.Description,
		Pot:                   pot,
	}

	switch {
	case cmp > 0:
		result.PlayerWon = true
		e.seats[PlayerSide].stack += pot
	case cmp < 0:
		e.seats[NPCSide].stack += pot
	default:
		result.Tied = true
		dealerShare, otherShare := splitPot(pot)
		e.seats[e.dealer].stack += dealerShare
		e.seats[e.dealer.Other()].stack += otherShare
	}
	e.pot = 0
	e.emit(PotUpdatedEvent{now(), 0})

	e.logger.Debug("showdown",
		"player", playerHand.Description,
		"npc", npcHand.Description,
		"playerWon", result.PlayerWon, "tied", result.Tied, "pot", pot)

	e.emit(ShowdownEvent{now(), playerHand, npcHand, result})
	e.lastResult = handOutcome{winnerIsPlayer: result.PlayerWon, tied: result.Tied, pot: pot}
	e.paused = true
	e.phase = PostHand
}

// splitPot divides a tied pot between the two sides. The odd chip, if any,
// goes to the non-dealer (big blind) side.
func splitPot(pot int) (dealerShare, otherShare int) {
	dealerShare = pot / 2
	otherShare = pot - dealerShare
	return dealerShare, otherShare
}

// concludeByFold ends the hand immediately: the pot goes to the non-folding
// side without consulting the evaluator, and the engine moves straight to
// PostHand with no pause.
func (e *Engine) concludeByFold(folder Side) {
	winner := folder.Other()
	pot := e.pot
	e.seats[winner].stack += pot
	e.pot = 0
	for i := range e.seats {
		e.seats[i].roundBet = 0
	}
	e.emit(PotUpdatedEvent{now(), 0})

	e.lastResult = handOutcome{winnerIsPlayer: winner == PlayerSide, pot: pot}
	e.phase = PostHand
	e.run()
}

// stepPostHand fires hand_ended and flips the dealer button. It runs exactly
// once per fully completed hand.
func (e *Engine) stepPostHand() {
	if total := e.seats[PlayerSide].stack + e.seats[NPCSide].stack + e.pot; total != e.startTotal {
		e.logger.Error("chip conservation violated", "want", e.startTotal, "got", total)
	}

	e.emit(HandEndedEvent{now(), e.lastResult.winnerIsPlayer, e.lastResult.tied, e.lastResult.pot})
	e.dealer = e.dealer.Other()
	e.inHand = false
}

// concludeMatch settles the final pot and enters the terminal state. The
// dealer flag is not flipped: the hand never completed.
func (e *Engine) concludeMatch() {
	winner := PlayerSide
	if e.seats[NPCSide].stack > e.seats[PlayerSide].stack {
		winner = NPCSide
	}
	e.seats[winner].stack += e.pot
	e.pot = 0
	e.emit(PotUpdatedEvent{now(), 0})

	e.logger.Info("match over", "winner", winner)
	e.emit(GameOverEvent{now(), winner == PlayerSide,
		e.seats[PlayerSide].stack, e.seats[NPCSide].stack})
	e.inHand = false
	e.phase = GameOver
}

func (e *Engine) validActions() ValidActions {
	s := &e.seats[e.toAct]
	va := ValidActions{Side: e.toAct}

	toCall := e.currentBet - s.roundBet
	if toCall <= 0 {
		va.CanCheck = true
	} else {
		va.CallAmount = min(toCall, s.stack)
	}

	va.RaiseMin = e.currentBet + e.bigBlind
	va.RaiseMax = s.roundBet + s.stack
	// Raising is pointless and therefore illegal once the opponent is
	// all-in: no further chips can be extracted.
	va.CanRaise = va.RaiseMax >= va.RaiseMin && e.seats[e.toAct.Other()].stack > 0
	return va
}

func (e *Engine) playerCards() []deck.Card {
	out := make([]deck.Card, len(e.seats[PlayerSide].holeCards))
	copy(out, e.seats[PlayerSide].holeCards)
	return out
}

func (e *Engine) npcCards() []deck.Card {
	out := make([]deck.Card, len(e.seats[NPCSide].holeCards))
	copy(out, e.seats[NPCSide].holeCards)
	return out
}

// Read-only accessors for drivers and tests.

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// StreetNow returns the current hand sub-phase.
func (e *Engine) StreetNow() Street { return e.street }

// Pot returns the current pot total.
func (e *Engine) Pot() int { return e.pot }

// CurrentBet returns the bet to match in the current round.
func (e *Engine) CurrentBet() int { return e.currentBet }

// Stack returns the given side's stack.
func (e *Engine) Stack(s Side) int { return e.seats[s].stack }

// Dealer returns which side currently holds the button.
func (e *Engine) Dealer() Side { return e.dealer }

// Paused reports whether the engine is suspended at a pause point.
func (e *Engine) Paused() bool { return e.paused }

// Board returns a copy of the community cards dealt so far.
func (e *Engine) Board() []deck.Card {
	out := make([]deck.Card, len(e.community))
	copy(out, e.community)
	return out
}

// PlayerCards returns a copy of the human side's hole cards for rendering.
func (e *Engine) PlayerCards() []deck.Card { return e.playerCards() }

// BigBlind returns the big blind size.
func (e *Engine) BigBlind() int { return e.bigBlind }

// SmallBlind returns the small blind size.
func (e *Engine) SmallBlind() int { return e.smallBlind }
