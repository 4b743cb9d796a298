package main

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" help:"Path to HCL config file" default:"headsup.hcl"`
	LogLevel string           `help:"Log level (debug, info, warn, error)" default:""`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play a heads-up match against the NPC"`
	Simulate SimulateCmd `cmd:"" help:"Pit two NPC personalities against each other"`
	Serve    ServeCmd    `cmd:"" help:"Host matches over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("headsup"),
		kong.Description("Heads-up no-limit Texas hold'em against personality-driven NPCs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}

// title adapts its colours to the terminal background.
func title() string {
	fg, bg := "#FAFAFA", "#1E6E50"
	if !termenv.HasDarkBackground() {
		fg, bg = "#1A1A1A", "#96CEB4"
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Bold(true)
	return style.Render(" ♠ ♥ heads-up hold'em ♦ ♣ ")
}
