package physics_test

import (
	"testing"

	"mini-voxel/internal/physics"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCollidesInsideOccupiedCell(t *testing.T) {
	w := world.New()
	w.Set(world.Pos{0, 0, 0}, world.BlockTypeStone)

	assert.True(t, physics.Collides(mgl32.Vec3{0.5, 0.5, 0.5}, w))
}

func TestCollidesProbeReach(t *testing.T) {
	w := world.New()
	w.Set(world.Pos{0, 0, 0}, world.BlockTypeStone)

	// One cell above: the dy=-1 row still reaches the block.
	assert.True(t, physics.Collides(mgl32.Vec3{0.5, 1.5, 0.5}, w))
	// Two cells above: out of reach.
	assert.False(t, physics.Collides(mgl32.Vec3{0.5, 2.5, 0.5}, w))

	// Lateral tolerance is 0.4: x = 1.3 probes floor(0.9) = 0.
	assert.True(t, physics.Collides(mgl32.Vec3{1.3, 0.5, 0.5}, w))
	// x = 1.5 probes floor(1.1) = 1 at its closest.
	assert.False(t, physics.Collides(mgl32.Vec3{1.5, 0.5, 0.5}, w))
}

func TestCollidesFalseAboveTerrain(t *testing.T) {
	w := world.New()
	g := world.NewGenerator(world.SineHeight, nil)
	g.HalfWidth = 4
	g.TreeChance = 0
	g.Generate(w, nil)

	top := world.MinCoord
	for _, b := range w.AllBlocks() {
		top = max(top, b.Pos.Y())
	}

	for x := -4; x < 4; x++ {
		for z := -4; z < 4; z++ {
			pos := mgl32.Vec3{float32(x) + 0.5, float32(top + 5), float32(z) + 0.5}
			assert.False(t, physics.Collides(pos, w), "%v", pos)
		}
	}
}

func BenchmarkCollides(b *testing.B) {
	w := world.New()
	for x := -8; x < 8; x++ {
		for z := -8; z < 8; z++ {
			w.Set(world.Pos{x, 0, z}, world.BlockTypeStone)
		}
	}
	pos := mgl32.Vec3{0.3, 1.2, -0.7}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Collides(pos, w)
	}
}
