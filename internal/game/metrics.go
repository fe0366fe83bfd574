package game

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"mini-voxel/internal/world"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "mini_voxel"

// Metrics exposes simulation counters. It is a world.Listener so it sees
// the same add/remove stream as the renderer.
//
// Metrics:
// * blocks_added_total, blocks_removed_total: counters
// * blocks: gauge of the stored block count
// * tick_duration_seconds: histogram
// * respawns_total: fall-through recoveries
// * section_duration_seconds{section}: profiling sections
type Metrics struct {
	registry *prometheus.Registry

	blocksAdded   prometheus.Counter
	blocksRemoved prometheus.Counter
	blocks        prometheus.Gauge
	tickDuration  prometheus.Histogram
	respawns      prometheus.Counter
	sections      *prometheus.SummaryVec
}

// NewMetrics creates the collectors on a fresh registry, so several
// sessions (or tests) never collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		blocksAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blocks_added_total",
			Help:      "Blocks added to the world.",
		}),
		blocksRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blocks_removed_total",
			Help:      "Blocks removed from the world.",
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "blocks",
			Help:      "Blocks currently stored.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time of one simulation step.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		respawns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "respawns_total",
			Help:      "Times the player fell out of the world and was reset to spawn.",
		}),
		sections: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace:  metricsNamespace,
			Name:       "section_duration_seconds",
			Help:       "Duration of profiled sections.",
			Objectives: map[float64]float64{0.5: 0.05, 0.99: 0.001},
		}, []string{"section"}),
	}
	m.registry.MustRegister(m.blocksAdded, m.blocksRemoved, m.blocks, m.tickDuration, m.respawns, m.sections)
	return m
}

func (m *Metrics) BlockAdded(world.Block) {
	m.blocksAdded.Inc()
}

func (m *Metrics) BlockRemoved(world.Block) {
	m.blocksRemoved.Inc()
}

// ObserveSection matches profiling.Observer.
func (m *Metrics) ObserveSection(name string, d time.Duration) {
	m.sections.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) observeTick(d time.Duration, blocks int) {
	m.tickDuration.Observe(d.Seconds())
	m.blocks.Set(float64(blocks))
}

func (m *Metrics) respawned() {
	m.respawns.Inc()
}

// Registry returns the registry holding the session collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes Handler on addr under /metrics in the background. The
// returned function shuts the server down.
func (m *Metrics) Serve(addr string, log *slog.Logger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("metrics shutdown", "err", err)
		}
	}
}
