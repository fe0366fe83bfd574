package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mini-voxel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.World.HalfWidth)
	assert.Equal(t, -2, cfg.World.BottomY)
	assert.Equal(t, HeightSine, cfg.World.Height)
	assert.Equal(t, [3]float32{0, 10, 0}, cfg.Player.Spawn)
	assert.Equal(t, float32(-30), cfg.Player.Gravity)
	assert.Equal(t, float32(8), cfg.Player.Reach)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  half_width: 8
  seed: 42
  height: perlin
player:
  move_speed: 7.5
metrics:
  addr: ":9101"
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.World.HalfWidth)
	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Equal(t, HeightPerlin, cfg.World.Height)
	assert.Equal(t, float32(7.5), cfg.Player.MoveSpeed)
	assert.Equal(t, ":9101", cfg.Metrics.Addr)

	// Untouched keys keep their defaults.
	assert.Equal(t, -2, cfg.World.BottomY)
	assert.Equal(t, float32(10), cfg.Player.JumpForce)
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeConfig(t, "world:\n  half_width: 3\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.World.HalfWidth)
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "world: [not, a, map"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "world:\n  height: mountains\n"))
	assert.ErrorContains(t, err, `unknown height function "mountains"`)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.World.HalfWidth = 0
	cfg.World.TreeChance = 1.5
	cfg.Player.Gravity = 5
	cfg.Player.FallLimit = 20
	cfg.Player.JumpForce = -1
	cfg.Player.PlaceClearance = -2
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"half_width", "tree_chance", "gravity", "fall_limit", "jump_force", "place_clearance", "log.level"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestSlogLevel(t *testing.T) {
	lvl, err := LogSettings{Level: "debug"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = LogSettings{}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = LogSettings{Level: "chatty"}.SlogLevel()
	assert.Error(t, err)
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := LogSettings{Level: "warn"}.NewLogger(&buf)

	log.Info("hidden")
	log.Warn("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=1")
}

func TestValidateRejectsUnstorableWorld(t *testing.T) {
	cfg := Default()
	cfg.World.HalfWidth = 1 << 21
	assert.ErrorContains(t, cfg.Validate(), "world.half_width must be at most")

	cfg = Default()
	cfg.World.HalfWidth = world.MaxCoord - 1
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.World.BottomY = world.MinCoord - 1
	assert.ErrorContains(t, cfg.Validate(), "world.bottom_y")

	cfg = Default()
	cfg.World.Height = HeightFlat
	cfg.World.FlatHeight = world.MaxCoord
	assert.ErrorContains(t, cfg.Validate(), "world.flat_height")

	_, err := Load(writeConfig(t, "world:\n  half_width: 2097152\n"))
	assert.ErrorContains(t, err, "half_width")
}
