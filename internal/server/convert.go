package server

import (
	"github.com/pokersim/headsup/internal/deck"
	"github.com/pokersim/headsup/internal/engine"
	"github.com/pokersim/headsup/internal/protocol"
)

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func validActionInfo(va engine.ValidActions) protocol.ValidActionInfo {
	return protocol.ValidActionInfo{
		CanCheck:   va.CanCheck,
		CallAmount: va.CallAmount,
		CanRaise:   va.CanRaise,
		RaiseMin:   va.RaiseMin,
		RaiseMax:   va.RaiseMax,
	}
}

func sideName(isPlayer bool) string {
	if isPlayer {
		return "player"
	}
	return "npc"
}

// messageFromEvent translates an engine event into its wire form. Events with
// no client-facing representation return nil.
func messageFromEvent(ev engine.Event, eng *engine.Engine) (*protocol.Message, error) {
	switch e := ev.(type) {
	case engine.HandStartedEvent:
		return protocol.NewMessage(protocol.TypeHandStarted, protocol.HandStartedData{
			PlayerStack: e.PlayerStack,
			NPCStack:    e.NPCStack,
			Dealer:      sideName(e.DealerSide == engine.PlayerSide),
		})

	case engine.PotUpdatedEvent:
		return protocol.NewMessage(protocol.TypePotUpdated, protocol.PotUpdatedData{Pot: e.Pot})

	case engine.HoleCardsDealtEvent:
		return protocol.NewMessage(protocol.TypeHoleCards, protocol.HoleCardsData{
			Cards: cardStrings(e.Cards),
		})

	case engine.CommunityCardsDealtEvent:
		return protocol.NewMessage(protocol.TypeCommunityCards, protocol.CommunityCardsData{
			Street: e.Street.String(),
			Board:  cardStrings(e.Board),
		})

	case engine.PlayerTurnEvent:
		return protocol.NewMessage(protocol.TypeActionRequired, protocol.ActionRequiredData{
			Valid:      validActionInfo(e.Valid),
			Pot:        eng.Pot(),
			CurrentBet: eng.CurrentBet(),
			Stack:      eng.Stack(engine.PlayerSide),
			HoleCards:  cardStrings(eng.PlayerCards()),
			Board:      cardStrings(eng.Board()),
		})

	case engine.ShowdownEvent:
		return protocol.NewMessage(protocol.TypeShowdown, protocol.ShowdownData{
			PlayerHand: e.PlayerHand.Description,
			NPCHand:    e.NPCHand.Description,
			PlayerWon:  e.Result.PlayerWon,
			Tied:       e.Result.Tied,
			Pot:        e.Result.Pot,
			Board:      cardStrings(eng.Board()),
		})

	case engine.HandEndedEvent:
		winner := sideName(e.WinnerIsPlayer)
		if e.Tied {
			winner = ""
		}
		return protocol.NewMessage(protocol.TypeHandEnded, protocol.HandEndedData{
			Winner: winner,
			Tied:   e.Tied,
			Pot:    e.Pot,
		})

	case engine.GameOverEvent:
		return protocol.NewMessage(protocol.TypeGameOver, protocol.GameOverData{
			Winner:      sideName(e.WinnerIsPlayer),
			PlayerStack: e.PlayerStack,
			NPCStack:    e.NPCStack,
		})
	}

	// NPCTurnEvent carries the NPC's private context; the session announces
	// the chosen action instead.
	return nil, nil
}
