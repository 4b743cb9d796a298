package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pokersim/headsup/internal/config"
	"github.com/pokersim/headsup/internal/server"
)

type ServeCmd struct {
	Addr string `short:"a" help:"Listen address" default:":8080"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	level := cfg.Match.LogLevel
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}
	logger := newLogger(os.Stderr, level)

	fmt.Println(title())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(c.Addr, cfg, logger).ListenAndServe(ctx)
}
