package engine

import (
	"time"

	"github.com/pokersim/headsup/internal/deck"
	"github.com/pokersim/headsup/internal/evaluator"
)

// EventType identifies a game event with type safety
type EventType string

const (
	EventTypeHandStarted     EventType = "hand_started"
	EventTypePotUpdated      EventType = "pot_updated"
	EventTypePlayerTurn      EventType = "player_turn"
	EventTypeNPCTurn         EventType = "npc_turn"
	EventTypeHoleCards       EventType = "player_cards_dealt"
	EventTypeCommunityCards  EventType = "community_cards_dealt"
	EventTypeShowdown        EventType = "showdown"
	EventTypeHandEnded       EventType = "hand_ended"
	EventTypeGameOver        EventType = "game_over"
)

// Event is any fact the engine announces to its driver. The engine never
// reacts to its own events; they exist purely for presentation collaborators.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type eventBase struct {
	at time.Time
}

func (e eventBase) Timestamp() time.Time { return e.at }

// HandStartedEvent fires once per hand with the stacks as they stood before
// blinds. Chip-conservation checks anchor on these numbers.
type HandStartedEvent struct {
	eventBase
	PlayerStack int
	NPCStack    int
	DealerSide  Side
}

func (HandStartedEvent) EventType() EventType { return EventTypeHandStarted }

// PotUpdatedEvent fires whenever chips move into or out of the pot.
type PotUpdatedEvent struct {
	eventBase
	Pot int
}

func (PotUpdatedEvent) EventType() EventType { return EventTypePotUpdated }

// PlayerTurnEvent fires when the human side must act.
type PlayerTurnEvent struct {
	eventBase
	Valid ValidActions
}

func (PlayerTurnEvent) EventType() EventType { return EventTypePlayerTurn }

// NPCTurnEvent fires when the NPC side must act. The context is the only
// engine state the decision engine is allowed to see.
type NPCTurnEvent struct {
	eventBase
	Context DecisionContext
}

func (NPCTurnEvent) EventType() EventType { return EventTypeNPCTurn }

// HoleCardsDealtEvent carries the human side's private cards. The NPC's hole
// cards are never broadcast; they travel only inside DecisionContext.
type HoleCardsDealtEvent struct {
	eventBase
	Cards []deck.Card
}

func (HoleCardsDealtEvent) EventType() EventType { return EventTypeHoleCards }

// CommunityCardsDealtEvent fires per street with the full board so far.
type CommunityCardsDealtEvent struct {
	eventBase
	Street Street
	Board  []deck.Card
}

func (CommunityCardsDealtEvent) EventType() EventType { return EventTypeCommunityCards }

// ShowdownResult summarises who won what at showdown.
type ShowdownResult struct {
	PlayerHandDescription string
	NPCHandDescription    string
	PlayerWon             bool
	Tied                  bool
	Pot                   int
}

// ShowdownEvent fires after the river betting round with both hands revealed.
type ShowdownEvent struct {
	eventBase
	PlayerHand evaluator.HandResult
	NPCHand    evaluator.HandResult
	Result     ShowdownResult
}

func (ShowdownEvent) EventType() EventType { return EventTypeShowdown }

// HandEndedEvent fires when a hand concludes by fold or showdown.
type HandEndedEvent struct {
	eventBase
	WinnerIsPlayer bool
	Tied           bool
	Pot            int
}

func (HandEndedEvent) EventType() EventType { return EventTypeHandEnded }

// GameOverEvent is the terminal event after elimination.
type GameOverEvent struct {
	eventBase
	WinnerIsPlayer bool
	PlayerStack    int
	NPCStack       int
}

func (GameOverEvent) EventType() EventType { return EventTypeGameOver }

// Observer receives engine events. Observers are owned and wired by the
// driver; the engine holds no reference to any presentation object beyond
// this narrow interface.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

func (e *Engine) emit(ev Event) {
	for _, o := range e.observers {
		o.OnEvent(ev)
	}
}

func now() eventBase { return eventBase{at: time.Now()} }
