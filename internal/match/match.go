// Package match drives an engine from start to game over. The engine itself
// never blocks; the driver is the piece that waits, on agents for decisions
// and on the clock between pause points, so a rendered match unfolds at a
// watchable pace.
package match

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/pokersim/headsup/internal/brain"
	"github.com/pokersim/headsup/internal/engine"
)

// Agent supplies betting decisions for one seat.
type Agent interface {
	Act(ctx context.Context, valid engine.ValidActions) (engine.Decision, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, valid engine.ValidActions) (engine.Decision, error)

func (f AgentFunc) Act(ctx context.Context, valid engine.ValidActions) (engine.Decision, error) {
	return f(ctx, valid)
}

// BrainAgent plays a seat using the NPC decision engine. It can occupy
// either side, which is what lets the simulator pit two personalities
// against each other.
type BrainAgent struct {
	brain *brain.Brain
	eng   *engine.Engine
	side  engine.Side
}

func NewBrainAgent(b *brain.Brain, eng *engine.Engine, side engine.Side) *BrainAgent {
	return &BrainAgent{brain: b, eng: eng, side: side}
}

func (a *BrainAgent) Act(_ context.Context, valid engine.ValidActions) (engine.Decision, error) {
	if a.side == engine.NPCSide {
		return a.brain.Decide(a.eng.DecisionContext()), nil
	}
	// The human seat has no sanitized projection, so build one from the
	// public accessors.
	view := engine.DecisionContext{
		Street:        a.eng.StreetNow(),
		Pot:           a.eng.Pot(),
		CurrentBet:    a.eng.CurrentBet(),
		BigBlind:      a.eng.BigBlind(),
		HoleCards:     a.eng.PlayerCards(),
		Board:         a.eng.Board(),
		Stack:         a.eng.Stack(engine.PlayerSide),
		OpponentStack: a.eng.Stack(engine.NPCSide),
		Valid:         valid,
	}
	return a.brain.Decide(view), nil
}

// Driver owns the outer loop of a match: start hands, resume the engine
// through its pause points, and route AwaitingInput to the seat's agent.
type Driver struct {
	eng    *engine.Engine
	agents [2]Agent
	logger *log.Logger
	clock  quartz.Clock
	pace   time.Duration

	handLimit   int
	handsPlayed int
}

// Option configures a Driver.
type Option func(*Driver)

func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithClock substitutes the clock used for pacing delays.
func WithClock(c quartz.Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithPace sets the delay before each Resume. Zero disables pacing, which
// is what the simulator wants.
func WithPace(p time.Duration) Option {
	return func(d *Driver) { d.pace = p }
}

// WithHandLimit stops the match after n completed hands even if neither
// side is broke. Zero means play until game over.
func WithHandLimit(n int) Option {
	return func(d *Driver) { d.handLimit = n }
}

func NewDriver(eng *engine.Engine, player, npc Agent, opts ...Option) *Driver {
	d := &Driver{
		eng:    eng,
		agents: [2]Agent{engine.PlayerSide: player, engine.NPCSide: npc},
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandsPlayed reports how many hands the driver has started.
func (d *Driver) HandsPlayed() int { return d.handsPlayed }

// Run plays the match to completion. It returns nil when the match reaches
// game over or the hand limit, and the context error if cancelled.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch {
		case d.eng.Phase() == engine.GameOver:
			d.logger.Info("match over", "hands", d.handsPlayed)
			return nil

		case d.eng.Paused():
			if err := d.wait(ctx); err != nil {
				return err
			}
			if err := d.eng.Resume(); err != nil {
				return fmt.Errorf("resume: %w", err)
			}

		case d.eng.Phase() == engine.AwaitingInput:
			if err := d.step(ctx); err != nil {
				return err
			}

		default:
			if d.handLimit > 0 && d.handsPlayed >= d.handLimit {
				d.logger.Info("hand limit reached", "hands", d.handsPlayed)
				return nil
			}
			if err := d.eng.StartNewHand(); err != nil {
				return fmt.Errorf("start hand: %w", err)
			}
			d.handsPlayed++
		}
	}
}

// step asks the acting seat's agent for a decision and applies it. An agent
// that returns an illegal decision forfeits the hand.
func (d *Driver) step(ctx context.Context) error {
	valid, err := d.eng.ValidActions()
	if err != nil {
		return err
	}

	decision, err := d.agents[valid.Side].Act(ctx, valid)
	if err != nil {
		return fmt.Errorf("agent %s: %w", valid.Side, err)
	}

	if err := d.eng.SubmitAction(valid.Side, decision.Action, decision.Amount); err != nil {
		d.logger.Warn("rejected decision, folding",
			"side", valid.Side, "action", decision.Action,
			"amount", decision.Amount, "error", err)
		return d.eng.SubmitAction(valid.Side, engine.Fold, 0)
	}
	return nil
}

func (d *Driver) wait(ctx context.Context) error {
	if d.pace <= 0 {
		return nil
	}
	timer := d.clock.NewTimer(d.pace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
