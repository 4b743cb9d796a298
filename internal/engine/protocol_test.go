package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokersim/headsup/internal/randutil"
)

func TestResumeWhileNotPaused(t *testing.T) {
	t.Parallel()

	e := New(1000, 1000, 10, 20, WithRNG(randutil.New(10)))

	// Before any hand exists there is nothing to resume.
	require.ErrorIs(t, e.Resume(), ErrNotPaused)

	require.NoError(t, e.StartNewHand())
	require.NoError(t, e.Resume())

	// Engine is now awaiting input; a second resume is a reported no-op.
	err := e.Resume()
	require.ErrorIs(t, err, ErrNotPaused)
	assert.Equal(t, AwaitingInput, e.Phase(), "double resume must not change state")
}

func TestSubmitActionOutsideAwaitingInput(t *testing.T) {
	t.Parallel()

	e := New(1000, 1000, 10, 20, WithRNG(randutil.New(11)))
	require.NoError(t, e.StartNewHand())

	// Paused after the hole cards; no action is expected yet.
	err := e.SubmitAction(PlayerSide, Fold, 0)
	require.ErrorIs(t, err, ErrNotAwaitingInput)
	assert.Equal(t, 30, e.Pot(), "rejected action must not mutate state")
}

func TestSubmitActionWrongSide(t *testing.T) {
	t.Parallel()

	// Dealer is the player, so pre-flop it is the player's turn.
	e := New(1000, 1000, 10, 20, WithDealer(PlayerSide), WithRNG(randutil.New(12)))
	require.NoError(t, e.StartNewHand())
	require.NoError(t, e.Resume())

	err := e.SubmitAction(NPCSide, Fold, 0)
	require.ErrorIs(t, err, ErrOutOfTurn)
	assert.Equal(t, AwaitingInput, e.Phase())
	assert.Equal(t, 990, e.Stack(PlayerSide), "small blind stack untouched")
	assert.Equal(t, 980, e.Stack(NPCSide), "big blind stack untouched")
}

func TestIllegalCheckFacingBet(t *testing.T) {
	t.Parallel()

	e := New(1000, 1000, 10, 20, WithDealer(PlayerSide), WithRNG(randutil.New(13)))
	require.NoError(t, e.StartNewHand())
	require.NoError(t, e.Resume())

	// Small blind faces the big blind; checking is not available.
	err := e.SubmitAction(PlayerSide, Check, 0)
	require.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, AwaitingInput, e.Phase())
	assert.Equal(t, 30, e.Pot())
}

func TestRaiseOutsideRange(t *testing.T) {
	t.Parallel()

	e := New(1000, 1000, 10, 20, WithDealer(PlayerSide), WithRNG(randutil.New(14)))
	require.NoError(t, e.StartNewHand())
	require.NoError(t, e.Resume())

	va, err := e.ValidActions()
	require.NoError(t, err)
	assert.Equal(t, 40, va.RaiseMin, "min raise-to is current bet plus big blind")
	assert.Equal(t, 1000, va.RaiseMax, "max raise-to is round contribution plus stack")

	require.ErrorIs(t, e.SubmitAction(PlayerSide, Raise, va.RaiseMin-1), ErrInvalidAction)
	require.ErrorIs(t, e.SubmitAction(PlayerSide, Raise, va.RaiseMax+1), ErrInvalidAction)
	assert.Equal(t, 30, e.Pot(), "rejected raises must not move chips")
}

func TestUnknownActionRejected(t *testing.T) {
	t.Parallel()

	e := New(1000, 1000, 10, 20, WithDealer(PlayerSide), WithRNG(randutil.New(15)))
	require.NoError(t, e.StartNewHand())
	require.NoError(t, e.Resume())

	err := e.SubmitAction(PlayerSide, Action(42), 0)
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, AwaitingInput, e.Phase())
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	for s, want := range map[string]Action{
		"fold": Fold, "check": Check, "call": Call, "raise": Raise,
	} {
		got, err := ParseAction(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseAction("allin")
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestStartNewHandMidHand(t *testing.T) {
	t.Parallel()

	e := New(1000, 1000, 10, 20, WithRNG(randutil.New(16)))
	require.NoError(t, e.StartNewHand())
	require.ErrorIs(t, e.StartNewHand(), ErrHandInProgress)
}

func TestEliminationByBlind(t *testing.T) {
	t.Parallel()

	// The dealer's whole stack is exactly the small blind; posting it busts
	// them before any cards are dealt.
	rec := &recorder{}
	e := New(10, 1000, 10, 20, WithDealer(PlayerSide), WithRNG(randutil.New(17)), WithObserver(rec))
	require.NoError(t, e.StartNewHand())

	assert.Equal(t, GameOver, e.Phase())
	assert.Equal(t, 0, e.Stack(PlayerSide))
	assert.Equal(t, 1010, e.Stack(NPCSide), "survivor collects the blinds")
	assert.Equal(t, 1, rec.count(EventTypeGameOver))
	assert.Equal(t, PlayerSide, e.Dealer(), "dealer must not flip on a partial hand")

	// Everything is rejected after elimination.
	require.ErrorIs(t, e.StartNewHand(), ErrGameOver)
	require.ErrorIs(t, e.Resume(), ErrGameOver)
	require.ErrorIs(t, e.SubmitAction(NPCSide, Check, 0), ErrGameOver)
}
