package engine

import "fmt"

// Action is a closed set of betting actions. Raise is always "raise to": the
// amount is the total this side will have contributed for the round, not the
// increment.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction converts an action token from the wire or a prompt into an
// Action. Unknown tokens are rejected rather than defaulted.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Decision is a chosen action with its raise-to amount. Reasoning is free
// text for logs and hand reviews; the engine never interprets it.
type Decision struct {
	Action    Action
	Amount    int
	Reasoning string
}

// ValidActions describes what the side to act may legally do.
type ValidActions struct {
	Side Side

	// CanCheck is true when the current bet equals this side's contribution
	// for the round.
	CanCheck bool

	// CallAmount is the exact number of chips a call moves into the pot,
	// already capped at the side's stack. Zero when CanCheck.
	CallAmount int

	// CanRaise is true when the side can reach the minimum raise-to amount.
	// RaiseMin and RaiseMax bound the legal raise-to range
	// [current bet + big blind, contribution this round + stack].
	CanRaise bool
	RaiseMin int
	RaiseMax int
}

// Side identifies one of the two seats.
type Side int

const (
	PlayerSide Side = iota
	NPCSide
)

func (s Side) String() string {
	if s == PlayerSide {
		return "player"
	}
	return "npc"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == PlayerSide {
		return NPCSide
	}
	return PlayerSide
}
