package tui

import (
	"strings"
	"testing"

	"github.com/pokersim/headsup/internal/deck"
	"github.com/pokersim/headsup/internal/engine"
)

func TestFormatCards(t *testing.T) {
	t.Parallel()

	cards, err := deck.ParseCards("As", "Td")
	if err != nil {
		t.Fatal(err)
	}
	got := FormatCards(cards)
	for _, want := range []string{"A♠", "T♦"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q missing %q", got, want)
		}
	}
}

func TestFormatStreetEvents(t *testing.T) {
	t.Parallel()

	board, err := deck.ParseCards("Ks", "9d", "4c", "2h", "Jc")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		street engine.Street
		board  []deck.Card
		want   string
	}{
		{engine.Flop, board[:3], "*** FLOP ***"},
		{engine.Turn, board[:4], "*** TURN ***"},
		{engine.River, board, "*** RIVER ***"},
	}
	for _, tc := range cases {
		got := FormatEvent(engine.CommunityCardsDealtEvent{Street: tc.street, Board: tc.board})
		if !strings.Contains(got, tc.want) {
			t.Errorf("street %s: %q missing %q", tc.street, got, tc.want)
		}
	}
}

func TestFormatHandEnded(t *testing.T) {
	t.Parallel()

	win := FormatEvent(engine.HandEndedEvent{WinnerIsPlayer: true, Pot: 120})
	if !strings.Contains(win, "You win the $120 pot") {
		t.Errorf("win line = %q", win)
	}
	tie := FormatEvent(engine.HandEndedEvent{Tied: true, Pot: 40})
	if !strings.Contains(tie, "Split pot") {
		t.Errorf("tie line = %q", tie)
	}
}

func TestFormatNPCAction(t *testing.T) {
	t.Parallel()

	got := FormatNPCAction(engine.Decision{Action: engine.Raise, Amount: 60})
	if !strings.Contains(got, "raises to $60") {
		t.Errorf("raise line = %q", got)
	}
	if FormatNPCAction(engine.Decision{Action: engine.Fold}) != "Opponent folds" {
		t.Error("fold line wrong")
	}
}
