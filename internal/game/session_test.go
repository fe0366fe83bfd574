package game

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/input"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.World.HalfWidth = 2
	cfg.World.TreeChance = 0
	cfg.World.Seed = 1
	return cfg
}

func newTestSession(t *testing.T, cfg *config.Config, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(cfg, append([]Option{WithLogger(quiet)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

type counter struct{ added, removed int }

func (c *counter) BlockAdded(world.Block)   { c.added++ }
func (c *counter) BlockRemoved(world.Block) { c.removed++ }

func TestGenerateNotifiesListenersAndMetrics(t *testing.T) {
	c := &counter{}
	s := newTestSession(t, smallConfig(), WithListener(c))

	n := s.Generate()

	want := 0
	for x := -2; x < 2; x++ {
		for z := -2; z < 2; z++ {
			want += world.SineHeight(x, z) + 3
		}
	}
	assert.Equal(t, want, n)
	assert.Equal(t, want, s.World.Len())
	assert.Equal(t, want, c.added)
	assert.Equal(t, float64(want), testutil.ToFloat64(s.Metrics.blocksAdded))
	assert.Equal(t, float64(want), testutil.ToFloat64(s.Metrics.blocks))
}

func TestSessionsWithSameSeedMatch(t *testing.T) {
	cfg := config.Default()
	cfg.World.Seed = 77
	a := newTestSession(t, cfg)
	b := newTestSession(t, cfg)
	a.Generate()
	b.Generate()
	assert.Equal(t, a.World.Fingerprint(), b.World.Fingerprint())

	c := newTestSession(t, cfg, WithRand(rand.New(rand.NewSource(78))))
	c.Generate()
	assert.NotEqual(t, a.World.Fingerprint(), c.World.Fingerprint())
}

func TestSurfaceHeightFollowsConfig(t *testing.T) {
	s := newTestSession(t, smallConfig())
	assert.Equal(t, 2, s.SurfaceHeightAt(15, 0))

	cfg := smallConfig()
	cfg.World.Height = config.HeightFlat
	cfg.World.FlatHeight = 4
	flat := newTestSession(t, cfg)
	assert.Equal(t, 4, flat.SurfaceHeightAt(-9, 31))
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.World.Height = "cliffs"
	_, err := NewSession(cfg, WithLogger(quiet))
	assert.Error(t, err)

	// A world wider than the store can address is refused up front
	// instead of panicking in Generate.
	cfg = config.Default()
	cfg.World.HalfWidth = 1 << 21
	_, err = NewSession(cfg, WithLogger(quiet))
	assert.ErrorContains(t, err, "half_width")
}

func TestStepBreaksTargetedBlock(t *testing.T) {
	c := &counter{}
	s := newTestSession(t, smallConfig(), WithListener(c))
	s.Generate()
	s.Player.Position = mgl32.Vec3{0, 3, 0}

	err := s.Step(1.0/60, input.Snapshot{Look: input.LookDelta{Pitch: -89}, Break: true})
	require.NoError(t, err)

	assert.False(t, s.World.Has(world.Pos{0, 0, 0}))
	assert.Equal(t, 1, c.removed)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.blocksRemoved))
	assert.Equal(t, uint64(1), s.Ticks)
	assert.Equal(t, 1, testutil.CollectAndCount(s.Metrics.tickDuration))
}

func TestStepReturnsPlaceConfigurationError(t *testing.T) {
	s := newTestSession(t, smallConfig())
	s.Player.Selected = world.BlockType(99)

	err := s.Step(1.0/60, input.Snapshot{Place: true})
	assert.ErrorIs(t, err, player.ErrUnknownBlockType)
	assert.Equal(t, uint64(1), s.Ticks)
	assert.Equal(t, uint64(1), s.PlaceErrors)

	require.NoError(t, s.Step(1.0/60, input.Snapshot{}))
	assert.Equal(t, uint64(1), s.PlaceErrors)
}

func TestStepCountsRespawns(t *testing.T) {
	s := newTestSession(t, smallConfig())
	s.Player.Position = mgl32.Vec3{0, -4.9, 0}
	s.Player.Velocity = mgl32.Vec3{0, -20, 0}

	require.NoError(t, s.Step(1.0/60, input.Snapshot{}))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.respawns))
	assert.Equal(t, s.Player.Settings.Spawn, s.Player.Position)
}

func TestProfilingSectionsReachMetrics(t *testing.T) {
	s := newTestSession(t, smallConfig())
	s.Generate()
	assert.Positive(t, testutil.CollectAndCount(s.Metrics.sections, "mini_voxel_section_duration_seconds"))

	s.Close()
	before := testutil.CollectAndCount(s.Metrics.sections)
	profiling.Track("after.close")()
	assert.Equal(t, before, testutil.CollectAndCount(s.Metrics.sections))
}

func TestMetricsHandler(t *testing.T) {
	s := newTestSession(t, smallConfig())
	s.Generate()

	rec := httptest.NewRecorder()
	s.Metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "mini_voxel_blocks_added_total")
	assert.Contains(t, rec.Body.String(), `mini_voxel_section_duration_seconds_count{section="world.Generate"} 1`)
}

func TestFPSLimiter(t *testing.T) {
	off := NewFPSLimiter(0)
	start := time.Now()
	off.Wait()
	off.Wait()
	assert.Less(t, time.Since(start), 5*time.Millisecond)

	capped := NewFPSLimiter(200)
	start = time.Now()
	for i := 0; i < 3; i++ {
		capped.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestFPSLimiterHonorsContext(t *testing.T) {
	slow := NewTickLimiter(time.Minute)
	assert.Equal(t, time.Minute, slow.Period())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, slow.WaitContext(ctx), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.ErrorIs(t, NewFPSLimiter(0).WaitContext(ctx), context.Canceled)
	assert.NoError(t, NewFPSLimiter(0).WaitContext(context.Background()))
	assert.Zero(t, NewFPSLimiter(-5).Period())
}

func TestClosingOneSessionKeepsOthersProfiled(t *testing.T) {
	a := newTestSession(t, smallConfig())
	b := newTestSession(t, smallConfig())

	a.Close()
	profiling.Track("shared.section")()
	assert.Equal(t, 1, testutil.CollectAndCount(b.Metrics.sections))
	assert.Zero(t, testutil.CollectAndCount(a.Metrics.sections))

	b.Close()
	profiling.Track("shared.section")()
	assert.Zero(t, testutil.CollectAndCount(a.Metrics.sections), "a closed session stays detached")
	assert.Equal(t, uint64(1), sectionCount(t, b, "shared.section"))
}

func sectionCount(t *testing.T, s *Session, name string) uint64 {
	t.Helper()
	families, err := s.Metrics.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "mini_voxel_section_duration_seconds" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "section" && l.GetValue() == name {
					return m.GetSummary().GetSampleCount()
				}
			}
		}
	}
	return 0
}
