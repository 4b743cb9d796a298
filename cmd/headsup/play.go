package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokersim/headsup/internal/brain"
	"github.com/pokersim/headsup/internal/config"
	"github.com/pokersim/headsup/internal/engine"
	"github.com/pokersim/headsup/internal/randutil"
	"github.com/pokersim/headsup/internal/tui"
)

type PlayCmd struct {
	Personality string `short:"p" help:"NPC personality profile (overrides config)"`
	Seed        int64  `help:"RNG seed for a reproducible match (overrides config)"`
}

func (p *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if p.Personality != "" {
		cfg.Match.NPCPersona = p.Personality
	}
	if p.Seed != 0 {
		cfg.Match.Seed = p.Seed
	}

	persona, err := cfg.Personality(cfg.Match.NPCPersona)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so debug logging goes to a file.
	logFile, err := os.OpenFile("headsup.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	level := cfg.Match.LogLevel
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}
	logger := newLogger(logFile, level)

	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting match",
		"personality", cfg.Match.NPCPersona,
		"blinds", fmt.Sprintf("%d/%d", cfg.Match.SmallBlind, cfg.Match.BigBlind),
		"seed", seed)

	eng := engine.New(
		cfg.Match.PlayerStack, cfg.Match.NPCStack,
		cfg.Match.SmallBlind, cfg.Match.BigBlind,
		engine.WithLogger(logger),
		engine.WithRNG(randutil.New(seed)),
	)
	npc := brain.New(persona.ToPersonality(), randutil.New(seed+1))

	model := tui.New(eng, npc, time.Duration(cfg.Match.PaceMillis)*time.Millisecond, logger)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	switch {
	case eng.Phase() != engine.GameOver:
		fmt.Println("Match abandoned.")
	case eng.Stack(engine.PlayerSide) > 0:
		fmt.Printf("You win! Final stack: $%d\n", eng.Stack(engine.PlayerSide))
	default:
		fmt.Printf("The %s NPC cleaned you out. Final stack: $%d\n",
			cfg.Match.NPCPersona, eng.Stack(engine.NPCSide))
	}
	return nil
}
