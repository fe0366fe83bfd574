package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"mini-voxel/internal/world"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when Load is
// given an empty path.
const EnvConfigPath = "MINI_VOXEL_CONFIG"

// Config is the root of the YAML configuration.
type Config struct {
	World   WorldGenSettings `yaml:"world"`
	Player  PlayerSettings   `yaml:"player"`
	Render  RenderSettings   `yaml:"render"`
	Metrics MetricsSettings  `yaml:"metrics"`
	Log     LogSettings      `yaml:"log"`
}

// PlayerSettings holds movement and interaction constants.
type PlayerSettings struct {
	Spawn            [3]float32 `yaml:"spawn"`
	Gravity          float32    `yaml:"gravity"`
	JumpForce        float32    `yaml:"jump_force"`
	MoveSpeed        float32    `yaml:"move_speed"`
	Reach            float32    `yaml:"reach"`
	FallLimit        float32    `yaml:"fall_limit"`
	PlaceClearance   float32    `yaml:"place_clearance"`
	MouseSensitivity float64    `yaml:"mouse_sensitivity"`
}

// MetricsSettings configures the Prometheus endpoint. An empty Addr
// disables it.
type MetricsSettings struct {
	Addr string `yaml:"addr"`
}

type LogSettings struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		World: WorldGenSettings{
			HalfWidth:  30,
			BottomY:    -2,
			Height:     HeightSine,
			SandChance: 0.10,
			TreeChance: 0.02,
		},
		Player: PlayerSettings{
			Spawn:            [3]float32{0, 10, 0},
			Gravity:          -30,
			JumpForce:        10,
			MoveSpeed:        5,
			Reach:            8,
			FallLimit:        -5,
			PlaceClearance:   2,
			MouseSensitivity: 0.1,
		},
		Render: RenderSettings{
			Width:    900,
			Height:   600,
			FPSLimit: 120,
			FOV:      70,
		},
		Log: LogSettings{Level: "info"},
	}
}

// Load reads a YAML file on top of Default. If path is empty, the
// MINI_VOXEL_CONFIG environment variable is tried; with neither set the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the values can drive a session.
func (c *Config) Validate() error {
	var errs []error
	w := c.World
	if w.HalfWidth <= 0 {
		errs = append(errs, fmt.Errorf("world.half_width must be positive, got %d", w.HalfWidth))
	}
	// Tree canopies overhang the generated square by one block.
	if w.HalfWidth > world.MaxCoord-1 {
		errs = append(errs, fmt.Errorf("world.half_width must be at most %d, got %d", world.MaxCoord-1, w.HalfWidth))
	}
	if w.BottomY < world.MinCoord || w.BottomY > world.MaxCoord {
		errs = append(errs, fmt.Errorf("world.bottom_y must be within [%d, %d], got %d", world.MinCoord, world.MaxCoord, w.BottomY))
	}
	if w.Height == HeightFlat {
		if top := world.MaxCoord - world.TrunkHeight - 1; w.FlatHeight > top {
			errs = append(errs, fmt.Errorf("world.flat_height must be at most %d, got %d", top, w.FlatHeight))
		}
	}
	if w.SandChance < 0 || w.SandChance > 1 {
		errs = append(errs, fmt.Errorf("world.sand_chance must be within [0, 1], got %v", w.SandChance))
	}
	if w.TreeChance < 0 || w.TreeChance > 1 {
		errs = append(errs, fmt.Errorf("world.tree_chance must be within [0, 1], got %v", w.TreeChance))
	}
	switch w.Height {
	case HeightSine, HeightPerlin, HeightFlat:
	default:
		errs = append(errs, fmt.Errorf("world.height: unknown height function %q", w.Height))
	}

	p := c.Player
	if p.Gravity >= 0 {
		errs = append(errs, fmt.Errorf("player.gravity must be negative, got %v", p.Gravity))
	}
	if p.JumpForce < 0 {
		errs = append(errs, fmt.Errorf("player.jump_force must not be negative, got %v", p.JumpForce))
	}
	if p.PlaceClearance < 0 {
		errs = append(errs, fmt.Errorf("player.place_clearance must not be negative, got %v", p.PlaceClearance))
	}
	if p.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("player.move_speed must not be negative, got %v", p.MoveSpeed))
	}
	if p.Reach <= 0 {
		errs = append(errs, fmt.Errorf("player.reach must be positive, got %v", p.Reach))
	}
	if p.FallLimit >= p.Spawn[1] {
		errs = append(errs, fmt.Errorf("player.fall_limit %v must be below the spawn height %v", p.FallLimit, p.Spawn[1]))
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses the configured level name.
func (l LogSettings) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a text logger at the configured level. An invalid
// level falls back to info; Validate reports it.
func (l LogSettings) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := l.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
