// Command voxel-sim runs a session without a window, driving the player
// with a scripted input sequence. It is useful for profiling the tick and
// for checking that a config generates the world it should.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/game"
	"mini-voxel/internal/input"
	"mini-voxel/internal/profiling"

	"github.com/dustin/go-humanize"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file (defaults to $"+config.EnvConfigPath+")")
		ticks      = flag.Int("ticks", 600, "number of simulation ticks to run")
		dt         = flag.Float64("dt", 1.0/60.0, "seconds per tick")
		realtime   = flag.Bool("realtime", false, "pace ticks to wall-clock time")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *ticks, *dt, *realtime); err != nil {
		fmt.Fprintln(os.Stderr, "voxel-sim:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, ticks int, dt float64, realtime bool) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", dt)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := cfg.Log.NewLogger(os.Stderr)

	session, err := game.NewSession(cfg, game.WithLogger(log))
	if err != nil {
		return err
	}
	defer session.Close()

	if cfg.Metrics.Addr != "" {
		stopMetrics := session.Metrics.Serve(cfg.Metrics.Addr, log)
		defer stopMetrics()
	}

	session.Generate()

	im := input.NewManager(session.Catalog.Types()...)
	script := newScript(im)

	limiter := game.NewFPSLimiter(0)
	if realtime {
		limiter = game.NewTickLimiter(time.Duration(dt * float64(time.Second)))
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if err := limiter.WaitContext(ctx); err != nil {
			log.Info("interrupted", "tick", i)
			break
		}

		profiling.ResetFrame()
		script.apply(i)
		// Place errors are counted by the session and summarized below.
		_ = session.Step(dt, im.Snapshot())
	}

	summarize(log, session, time.Since(start))
	return nil
}

func summarize(log *slog.Logger, s *game.Session, took time.Duration) {
	p := s.Player
	log.Info("simulation finished",
		"ticks", humanize.Comma(int64(s.Ticks)),
		"took", took,
		"blocks", humanize.Comma(int64(s.World.Len())),
		"fingerprint", fmt.Sprintf("%016x", s.World.Fingerprint()),
		"position", fmt.Sprintf("(%.2f, %.2f, %.2f)", p.Position[0], p.Position[1], p.Position[2]),
		"on_ground", p.OnGround,
		"respawns", p.Respawns,
		"place_errors", s.PlaceErrors,
		"last_frame", profiling.TopN(5),
	)
}
