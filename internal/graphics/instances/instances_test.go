package instances

import (
	"testing"

	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordAt(s *Set, pos world.Pos) []float32 {
	i := s.index[pos]
	return s.Data()[i*Stride : (i+1)*Stride]
}

func TestAddReplaceRemove(t *testing.T) {
	c := registry.Default()
	s := NewSet(c)
	a := world.Block{Pos: world.Pos{1, 2, 3}, Type: world.BlockTypeStone}
	b := world.Block{Pos: world.Pos{-4, 0, 7}, Type: world.BlockTypeWater}

	s.BlockAdded(a)
	s.BlockAdded(b)
	require.Equal(t, 2, s.Len())
	assert.Len(t, s.Data(), 2*Stride)
	assert.True(t, s.TakeDirty())
	assert.False(t, s.TakeDirty())

	water, _ := c.Lookup(world.BlockTypeWater)
	r, g, bl := water.RGB()
	assert.Equal(t, []float32{-4, 0, 7, r, g, bl, water.Alpha()}, recordAt(s, b.Pos))

	// Replacing keeps a single record.
	s.BlockAdded(world.Block{Pos: a.Pos, Type: world.BlockTypeSand})
	assert.Equal(t, 2, s.Len())
	sand, _ := c.Lookup(world.BlockTypeSand)
	sr, _, _ := sand.RGB()
	assert.Equal(t, sr, recordAt(s, a.Pos)[3])

	// Removing the first record swaps the last one into its place.
	s.BlockRemoved(a)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Has(a.Pos))
	assert.True(t, s.Has(b.Pos))
	assert.Equal(t, float32(-4), s.Data()[0])
	assert.True(t, s.TakeDirty())

	s.BlockRemoved(a)
	assert.False(t, s.TakeDirty(), "removing an unknown position changes nothing")

	s.BlockRemoved(b)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Data())
}

func TestUnknownTypeIsMagenta(t *testing.T) {
	s := NewSet(registry.NewCatalog())
	p := world.Pos{0, 0, 0}
	s.BlockAdded(world.Block{Pos: p, Type: world.BlockTypeGrass})
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 1, 1}, recordAt(s, p))
}

func TestMarkDirty(t *testing.T) {
	s := NewSet(registry.Default())
	assert.False(t, s.TakeDirty())
	s.MarkDirty()
	assert.True(t, s.TakeDirty())
}
