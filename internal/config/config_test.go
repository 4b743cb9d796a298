package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
match {
  small_blind     = 25
  big_blind       = 50
  player_stack    = 2500
  npc_stack       = 2500
  seed            = 99
  pace_ms         = 200
  npc_personality = "loose"
}

personality "loose" {
  aggression    = 0.8
  bluffing      = 0.5
  risk_aversion = 0.2
}

personality "tight" {
  aggression    = 0.2
  bluffing      = 0.1
  risk_aversion = 0.8
}
`

func TestParseFullConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(sampleConfig), "test.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Match.SmallBlind != 25 || cfg.Match.BigBlind != 50 {
		t.Errorf("blinds = %d/%d, want 25/50", cfg.Match.SmallBlind, cfg.Match.BigBlind)
	}
	if cfg.Match.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Match.Seed)
	}
	if len(cfg.Personalities) != 2 {
		t.Fatalf("got %d personalities, want 2", len(cfg.Personalities))
	}

	loose, err := cfg.Personality("loose")
	if err != nil {
		t.Fatalf("personality: %v", err)
	}
	p := loose.ToPersonality()
	if p.Aggression != 0.8 || p.Bluffing != 0.5 || p.RiskAversion != 0.2 {
		t.Errorf("personality traits = %+v", p)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`match {}`), "minimal.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	def := Default()
	if cfg.Match.SmallBlind != def.Match.SmallBlind || cfg.Match.BigBlind != def.Match.BigBlind {
		t.Errorf("blinds = %d/%d, want defaults %d/%d",
			cfg.Match.SmallBlind, cfg.Match.BigBlind,
			def.Match.SmallBlind, def.Match.BigBlind)
	}
	if cfg.Match.NPCPersona != "balanced" {
		t.Errorf("default personality = %q", cfg.Match.NPCPersona)
	}
	if _, err := cfg.Personality("balanced"); err != nil {
		t.Errorf("stock personalities missing: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Match.BigBlind != Default().Match.BigBlind {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "headsup.hcl")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Match.PlayerStack != 2500 {
		t.Errorf("player stack = %d, want 2500", cfg.Match.PlayerStack)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "inverted blinds",
			src: `match {
  small_blind = 50
  big_blind   = 25
}`,
			want: "small blind",
		},
		{
			name: "trait out of range",
			src: `match {}
personality "wild" {
  aggression    = 1.5
  bluffing      = 0
  risk_aversion = 0
}`,
			want: "outside [0, 1]",
		},
		{
			name: "duplicate personality",
			src: `match {}
personality "twin" {
  aggression    = 0.5
  bluffing      = 0.5
  risk_aversion = 0.5
}
personality "twin" {
  aggression    = 0.5
  bluffing      = 0.5
  risk_aversion = 0.5
}`,
			want: "duplicate",
		},
		{
			name: "unknown npc personality",
			src: `match {
  npc_personality = "ghost"
}`,
			want: "unknown personality",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.src), tc.name+".hcl")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestParseRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`match {`), "broken.hcl"); err == nil {
		t.Fatal("expected parse error")
	}
}
