package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-tick CPU profiler. Sections accumulate into frame totals
// until ResetFrame; registered observers also see every sample.

// Observer receives every recorded sample.
type Observer func(name string, d time.Duration)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	observers   = make(map[uint64]Observer)
	nextID      uint64
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		var obs []Observer
		for _, o := range observers {
			obs = append(obs, o)
		}
		mu.Unlock()
		for _, o := range obs {
			o(name, d)
		}
	}
}

// AddObserver registers o for every sample until the returned remove
// function is called. Removing is idempotent and only affects o, so
// observers may be removed in any order.
func AddObserver(o Observer) (remove func()) {
	mu.Lock()
	defer mu.Unlock()
	nextID++
	id := nextID
	observers[id] = o
	return func() {
		mu.Lock()
		delete(observers, id)
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats top N durations from the current frame totals.
// Example: "player.Update:0.4ms, physics.Raycast:0.2ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+formatMs(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + "ms"
}
