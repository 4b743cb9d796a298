package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pokersim/headsup/internal/brain"
	"github.com/pokersim/headsup/internal/config"
	"github.com/pokersim/headsup/internal/engine"
	"github.com/pokersim/headsup/internal/match"
	"github.com/pokersim/headsup/internal/randutil"
)

type SimulateCmd struct {
	Hands int    `short:"n" help:"Number of hands to simulate" default:"1000"`
	SeatA string `help:"Personality for seat A" default:"maniac"`
	SeatB string `help:"Personality for seat B" default:"rock"`
	Seed  int64  `help:"RNG seed (0 picks one from the clock)"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	personaA, err := cfg.Personality(c.SeatA)
	if err != nil {
		return err
	}
	personaB, err := cfg.Personality(c.SeatB)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := newLogger(os.Stderr, cli.LogLevel)

	fmt.Println(title())
	fmt.Printf("Simulating %d hands: %s (A) vs %s (B), seed %d\n\n",
		c.Hands, c.SeatA, c.SeatB, seed)

	stats := match.NewStats()
	ctx := context.Background()

	// One engine plays until somebody busts; fresh engines keep going until
	// the requested hand count is in.
	for round := 0; stats.Hands < c.Hands; round++ {
		matchSeed := seed + int64(round)*3
		eng := engine.New(
			cfg.Match.PlayerStack, cfg.Match.NPCStack,
			cfg.Match.SmallBlind, cfg.Match.BigBlind,
			engine.WithLogger(logger),
			engine.WithRNG(randutil.New(matchSeed)),
		)
		eng.AddObserver(stats)

		seatA := match.NewBrainAgent(
			brain.New(personaA.ToPersonality(), randutil.New(matchSeed+1)),
			eng, engine.PlayerSide)
		seatB := match.NewBrainAgent(
			brain.New(personaB.ToPersonality(), randutil.New(matchSeed+2)),
			eng, engine.NPCSide)

		driver := match.NewDriver(eng, seatA, seatB,
			match.WithLogger(logger),
			match.WithHandLimit(c.Hands-stats.Hands))
		if err := driver.Run(ctx); err != nil {
			return fmt.Errorf("simulation round %d: %w", round, err)
		}
	}

	fmt.Println(stats.Summary())
	switch {
	case stats.PlayerWins > stats.NPCWins:
		fmt.Printf("%s (A) comes out ahead.\n", c.SeatA)
	case stats.NPCWins > stats.PlayerWins:
		fmt.Printf("%s (B) comes out ahead.\n", c.SeatB)
	default:
		fmt.Println("Dead even.")
	}
	return nil
}
