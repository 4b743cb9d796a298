package engine

import "errors"

// Protocol-violation errors. All of them leave engine state untouched; the
// driver decides whether to ignore, retry or escalate. None of them are
// panic-worthy in normal play.
var (
	// ErrNotPaused is reported when Resume is called while the engine is not
	// suspended at a pause point. Deliberately an error rather than a silent
	// no-op so double-resume bugs surface during development.
	ErrNotPaused = errors.New("resume called while not paused")

	// ErrNotAwaitingInput is reported when SubmitAction is called in any
	// phase other than AwaitingInput.
	ErrNotAwaitingInput = errors.New("no action expected in current phase")

	// ErrOutOfTurn is reported when SubmitAction names the side that is not
	// due to act.
	ErrOutOfTurn = errors.New("action submitted for the wrong side")

	// ErrUnknownAction is reported for action tokens outside the closed set.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidAction is reported when a known action is illegal right now,
	// e.g. checking while facing a bet or raising outside the legal range.
	ErrInvalidAction = errors.New("invalid action")

	// ErrHandInProgress is reported when StartNewHand is called mid-hand.
	ErrHandInProgress = errors.New("hand already in progress")

	// ErrGameOver is reported for any command after elimination.
	ErrGameOver = errors.New("match is over")
)
