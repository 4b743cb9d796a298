// Package config loads match and personality configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pokersim/headsup/internal/brain"
)

// Config is the root of a headsup configuration file.
type Config struct {
	Match         MatchSettings       `hcl:"match,block"`
	Personalities []PersonalityConfig `hcl:"personality,block"`
}

// MatchSettings controls stakes, stacks and presentation pacing.
type MatchSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	PlayerStack   int    `hcl:"player_stack,optional"`
	NPCStack      int    `hcl:"npc_stack,optional"`
	Seed          int64  `hcl:"seed,optional"`
	PaceMillis    int    `hcl:"pace_ms,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	NPCPersona    string `hcl:"npc_personality,optional"`
}

// PersonalityConfig is a named NPC temperament profile.
type PersonalityConfig struct {
	Name         string  `hcl:"name,label"`
	Aggression   float64 `hcl:"aggression"`
	Bluffing     float64 `hcl:"bluffing"`
	RiskAversion float64 `hcl:"risk_aversion"`
}

// ToPersonality converts the profile into decision-engine traits, clamped
// into range.
func (p PersonalityConfig) ToPersonality() brain.Personality {
	return brain.Personality{
		Aggression:   p.Aggression,
		Bluffing:     p.Bluffing,
		RiskAversion: p.RiskAversion,
	}.Clamp()
}

// Default returns the configuration used when no file is present: 10/20
// blinds, 1000-chip stacks and three stock temperaments.
func Default() *Config {
	return &Config{
		Match: MatchSettings{
			SmallBlind:  10,
			BigBlind:    20,
			PlayerStack: 1000,
			NPCStack:    1000,
			PaceMillis:  600,
			LogLevel:    "info",
			NPCPersona:  "balanced",
		},
		Personalities: []PersonalityConfig{
			{Name: "rock", Aggression: 0.15, Bluffing: 0.05, RiskAversion: 0.85},
			{Name: "balanced", Aggression: 0.5, Bluffing: 0.25, RiskAversion: 0.5},
			{Name: "maniac", Aggression: 0.9, Bluffing: 0.6, RiskAversion: 0.1},
		},
	}
}

// Load reads an HCL configuration file. A missing file is not an error; the
// defaults are returned instead.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. The filename only labels diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode config: %s", diags.Error())
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Match.SmallBlind == 0 {
		cfg.Match.SmallBlind = def.Match.SmallBlind
	}
	if cfg.Match.BigBlind == 0 {
		cfg.Match.BigBlind = def.Match.BigBlind
	}
	if cfg.Match.PlayerStack == 0 {
		cfg.Match.PlayerStack = def.Match.PlayerStack
	}
	if cfg.Match.NPCStack == 0 {
		cfg.Match.NPCStack = def.Match.NPCStack
	}
	if cfg.Match.PaceMillis == 0 {
		cfg.Match.PaceMillis = def.Match.PaceMillis
	}
	if cfg.Match.LogLevel == "" {
		cfg.Match.LogLevel = def.Match.LogLevel
	}
	if cfg.Match.NPCPersona == "" {
		cfg.Match.NPCPersona = def.Match.NPCPersona
	}
	if len(cfg.Personalities) == 0 {
		cfg.Personalities = def.Personalities
	}
}

// Validate rejects configurations the engine cannot play.
func (c *Config) Validate() error {
	m := c.Match
	if m.SmallBlind <= 0 || m.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive, got %d/%d", m.SmallBlind, m.BigBlind)
	}
	if m.SmallBlind >= m.BigBlind {
		return fmt.Errorf("small blind %d must be below big blind %d", m.SmallBlind, m.BigBlind)
	}
	if m.PlayerStack <= 0 || m.NPCStack <= 0 {
		return fmt.Errorf("stacks must be positive, got %d/%d", m.PlayerStack, m.NPCStack)
	}

	seen := make(map[string]bool, len(c.Personalities))
	for _, p := range c.Personalities {
		if seen[p.Name] {
			return fmt.Errorf("duplicate personality %q", p.Name)
		}
		seen[p.Name] = true
		for trait, v := range map[string]float64{
			"aggression":    p.Aggression,
			"bluffing":      p.Bluffing,
			"risk_aversion": p.RiskAversion,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("personality %q: %s %.2f outside [0, 1]", p.Name, trait, v)
			}
		}
	}

	if _, err := c.Personality(m.NPCPersona); err != nil {
		return err
	}
	return nil
}

// Personality finds a profile by name.
func (c *Config) Personality(name string) (PersonalityConfig, error) {
	for _, p := range c.Personalities {
		if p.Name == name {
			return p, nil
		}
	}
	return PersonalityConfig{}, fmt.Errorf("unknown personality %q", name)
}
