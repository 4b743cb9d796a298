package tui

import (
	"fmt"
	"strings"

	"github.com/pokersim/headsup/internal/deck"
	"github.com/pokersim/headsup/internal/engine"
)

// FormatCard renders a card with suit-appropriate colouring.
func FormatCard(c deck.Card) string {
	if c.Suit.IsRed() {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

// FormatCards renders a hand or board as a bracketed group.
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = FormatCard(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FormatEvent renders an engine event as a log line. Events with no
// user-facing representation return the empty string.
func FormatEvent(ev engine.Event) string {
	switch e := ev.(type) {
	case engine.HandStartedEvent:
		return handInfoStyle.Render(fmt.Sprintf("--- New hand --- you $%d, opponent $%d, %s deals",
			e.PlayerStack, e.NPCStack, dealerName(e.DealerSide)))

	case engine.HoleCardsDealtEvent:
		return "Dealt to you: " + FormatCards(e.Cards)

	case engine.CommunityCardsDealtEvent:
		return formatStreet(e)

	case engine.ShowdownEvent:
		return formatShowdown(e)

	case engine.HandEndedEvent:
		switch {
		case e.Tied:
			return successStyle.Render(fmt.Sprintf("Split pot: $%d each way", e.Pot))
		case e.WinnerIsPlayer:
			return successStyle.Render(fmt.Sprintf("You win the $%d pot", e.Pot))
		default:
			return fmt.Sprintf("Opponent wins the $%d pot", e.Pot)
		}

	case engine.GameOverEvent:
		if e.WinnerIsPlayer {
			return successStyle.Render(fmt.Sprintf("Game over: you win with $%d", e.PlayerStack))
		}
		return errorStyle.Render(fmt.Sprintf("Game over: opponent wins with $%d", e.NPCStack))
	}

	return ""
}

func formatStreet(e engine.CommunityCardsDealtEvent) string {
	switch e.Street {
	case engine.Flop:
		return fmt.Sprintf("*** FLOP *** %s", FormatCards(e.Board))
	case engine.Turn:
		return fmt.Sprintf("*** TURN *** %s %s", FormatCards(e.Board[:3]), FormatCards(e.Board[3:]))
	case engine.River:
		return fmt.Sprintf("*** RIVER *** %s %s", FormatCards(e.Board[:4]), FormatCards(e.Board[4:]))
	}
	return fmt.Sprintf("*** %s *** %s", strings.ToUpper(e.Street.String()), FormatCards(e.Board))
}

func formatShowdown(e engine.ShowdownEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** SHOWDOWN ***\n")
	fmt.Fprintf(&b, "You show %s (%s)\n", FormatCards(e.PlayerHand.Cards), e.PlayerHand.Description)
	fmt.Fprintf(&b, "Opponent shows %s (%s)", FormatCards(e.NPCHand.Cards), e.NPCHand.Description)
	return b.String()
}

// FormatNPCAction renders the opponent's chosen action.
func FormatNPCAction(d engine.Decision) string {
	switch d.Action {
	case engine.Fold:
		return "Opponent folds"
	case engine.Check:
		return "Opponent checks"
	case engine.Call:
		return fmt.Sprintf("Opponent calls $%d", d.Amount)
	case engine.Raise:
		return actionsStyle.Render(fmt.Sprintf("Opponent raises to $%d", d.Amount))
	}
	return "Opponent acts"
}

func dealerName(s engine.Side) string {
	if s == engine.PlayerSide {
		return "you"
	}
	return "opponent"
}
