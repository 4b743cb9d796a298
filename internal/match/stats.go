package match

import (
	"fmt"
	"strings"

	"github.com/pokersim/headsup/internal/engine"
)

// Stats aggregates hand outcomes from engine events. Register it as an
// observer before the match starts.
type Stats struct {
	Hands         int
	PlayerWins    int
	NPCWins       int
	Ties          int
	Showdowns     int
	FoldedHands   int
	TotalPot      int
	LargestPot    int
	StreetReached map[engine.Street]int

	sawShowdown bool
}

func NewStats() *Stats {
	return &Stats{StreetReached: make(map[engine.Street]int)}
}

// OnEvent implements engine.Observer.
func (s *Stats) OnEvent(ev engine.Event) {
	switch e := ev.(type) {
	case engine.HandStartedEvent:
		s.sawShowdown = false

	case engine.ShowdownEvent:
		s.sawShowdown = true

	case engine.HandEndedEvent:
		s.Hands++
		s.TotalPot += e.Pot
		if e.Pot > s.LargestPot {
			s.LargestPot = e.Pot
		}
		switch {
		case e.Tied:
			s.Ties++
		case e.WinnerIsPlayer:
			s.PlayerWins++
		default:
			s.NPCWins++
		}
		if s.sawShowdown {
			s.Showdowns++
		} else {
			s.FoldedHands++
		}

	case engine.CommunityCardsDealtEvent:
		s.StreetReached[e.Street]++
	}
}

// AvgPot returns the mean final pot across completed hands.
func (s *Stats) AvgPot() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.TotalPot) / float64(s.Hands)
}

// Summary renders a plain-text report suitable for CLI output.
func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hands played:    %d\n", s.Hands)
	fmt.Fprintf(&b, "Seat A wins:     %d\n", s.PlayerWins)
	fmt.Fprintf(&b, "Seat B wins:     %d\n", s.NPCWins)
	fmt.Fprintf(&b, "Split pots:      %d\n", s.Ties)
	fmt.Fprintf(&b, "Showdowns:       %d\n", s.Showdowns)
	fmt.Fprintf(&b, "Ended by fold:   %d\n", s.FoldedHands)
	fmt.Fprintf(&b, "Average pot:     %.1f\n", s.AvgPot())
	fmt.Fprintf(&b, "Largest pot:     %d\n", s.LargestPot)
	return b.String()
}
