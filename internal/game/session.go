package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/input"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Session is the simulation context owned by the host loop. Everything the
// simulation mutates hangs off it; there is no package-level game state.
type Session struct {
	ID      uuid.UUID
	Config  *config.Config
	Catalog *registry.Catalog
	World   *world.World
	Player  *player.Player
	Metrics *Metrics

	Ticks       uint64
	// PlaceErrors counts ticks whose Step returned an error.
	PlaceErrors uint64

	generator *world.Generator
	events    world.Listener
	log       *slog.Logger
	detach    func()
}

type options struct {
	listeners []world.Listener
	log       *slog.Logger
	rng       *rand.Rand
	catalog   *registry.Catalog
}

// Option customises NewSession.
type Option func(*options)

// WithListener adds a receiver of block add/remove notifications, e.g. a
// renderer.
func WithListener(l world.Listener) Option {
	return func(o *options) { o.listeners = append(o.listeners, l) }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRand overrides the decoration random source built from the
// configured seed.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithCatalog replaces the default block catalog.
func WithCatalog(c *registry.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// NewSession builds a session from cfg. The world is empty until Generate
// is called.
func NewSession(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	if o.catalog == nil {
		o.catalog = registry.Default()
	}

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(seed))
	}

	id := uuid.New()
	metrics := NewMetrics()
	events := world.MultiListener(append([]world.Listener{metrics}, o.listeners...))

	gen := world.NewGenerator(heightFunc(cfg.World, seed), o.rng)
	gen.HalfWidth = cfg.World.HalfWidth
	gen.BottomY = cfg.World.BottomY
	gen.SandChance = cfg.World.SandChance
	gen.TreeChance = cfg.World.TreeChance

	w := world.New()
	p := player.New(w, o.catalog, events, playerSettings(cfg.Player))

	s := &Session{
		ID:        id,
		Config:    cfg,
		Catalog:   o.catalog,
		World:     w,
		Player:    p,
		Metrics:   metrics,
		generator: gen,
		events:    events,
		log:       o.log.With("session", id.String()),
	}
	s.detach = profiling.AddObserver(metrics.ObserveSection)
	s.log.Info("session created", "seed", seed, "height", cfg.World.Height, "half_width", cfg.World.HalfWidth)
	return s, nil
}

// Generate fills the world with terrain. It returns the number of blocks
// written.
func (s *Session) Generate() int {
	start := time.Now()
	n := s.generator.Generate(s.World, s.events)
	s.Metrics.blocks.Set(float64(s.World.Len()))
	s.log.Info("terrain generated",
		"blocks", humanize.Comma(int64(s.World.Len())),
		"writes", n,
		"fingerprint", fmt.Sprintf("%016x", s.World.Fingerprint()),
		"took", time.Since(start))
	return n
}

// SurfaceHeightAt is the generator's surface height of column (x, z).
func (s *Session) SurfaceHeightAt(x, z int) int {
	return s.generator.HeightAt(x, z)
}

// Step runs one simulation tick. Misses, blocked placements and respawns
// are normal outcomes; the only error is a placement of a block type the
// catalog does not know.
func (s *Session) Step(dt float64, in input.Snapshot) error {
	start := time.Now()
	defer profiling.Track("game.Step")()

	if s.Player.Update(dt, in) {
		s.Metrics.respawned()
		s.log.Debug("player fell out of the world", "spawn", s.Player.Settings.Spawn, "respawns", s.Player.Respawns)
	}

	var err error
	if in.Break {
		if b, ok := s.Player.Break(); ok {
			s.log.Debug("block broken", "pos", b.Pos, "type", b.Type)
		}
	}
	if in.Place {
		b, ok, perr := s.Player.Place()
		switch {
		case perr != nil:
			err = perr
			s.PlaceErrors++
			s.log.Warn("place rejected", "err", perr)
		case ok:
			s.log.Debug("block placed", "pos", b.Pos, "type", b.Type)
		}
	}

	s.Ticks++
	s.Metrics.observeTick(time.Since(start), s.World.Len())
	return err
}

// Close stops feeding profiler samples into this session's metrics. Other
// sessions are unaffected.
func (s *Session) Close() {
	s.detach()
	s.log.Info("session closed", "ticks", humanize.Comma(int64(s.Ticks)))
}

func heightFunc(c config.WorldGenSettings, seed int64) world.HeightFunc {
	switch c.Height {
	case config.HeightPerlin:
		return world.PerlinHeight(seed)
	case config.HeightFlat:
		return world.FlatHeight(c.FlatHeight)
	default:
		return world.SineHeight
	}
}

func playerSettings(c config.PlayerSettings) player.Settings {
	return player.Settings{
		Spawn:          mgl32.Vec3(c.Spawn),
		Gravity:        c.Gravity,
		JumpForce:      c.JumpForce,
		MoveSpeed:      c.MoveSpeed,
		Reach:          c.Reach,
		FallLimit:      c.FallLimit,
		PlaceClearance: c.PlaceClearance,
	}
}
