package profiling

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	record("player.Update", 400*time.Microsecond)
	record("physics.Raycast", 1500*time.Microsecond)
	record("world.Generate", 2*time.Millisecond)
	record("game.Step", 400*time.Microsecond)

	assert.Equal(t, "world.Generate:2ms, physics.Raycast:1.5ms", TopN(2))
	// Ties break by name.
	assert.Equal(t, "world.Generate:2ms, physics.Raycast:1.5ms, game.Step:0.4ms, player.Update:0.4ms", TopN(10))
}

func TestTrackAccumulatesUntilReset(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	Track("a")()
	Track("a")()
	snap := Snapshot()
	assert.Contains(t, snap, "a")
	assert.Len(t, snap, 1)

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(3))
}

func TestObserverSeesEverySample(t *testing.T) {
	var (
		lock  sync.Mutex
		names []string
	)
	remove := AddObserver(func(name string, d time.Duration) {
		lock.Lock()
		names = append(names, name)
		lock.Unlock()
	})
	t.Cleanup(remove)

	Track("x")()
	Track("y")()

	lock.Lock()
	defer lock.Unlock()
	assert.Equal(t, []string{"x", "y"}, names)
}

func TestRemoveObserverOutOfOrder(t *testing.T) {
	var first, second int
	removeFirst := AddObserver(func(string, time.Duration) { first++ })
	removeSecond := AddObserver(func(string, time.Duration) { second++ })
	t.Cleanup(removeSecond)

	Track("both")()
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	// Removing the older observer leaves the newer one attached.
	removeFirst()
	Track("second.only")()
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	removeSecond()
	removeFirst()
	Track("none")()
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}
