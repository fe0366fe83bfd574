package registry

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, []world.BlockType{
		world.BlockTypeGrass,
		world.BlockTypeDirt,
		world.BlockTypeStone,
		world.BlockTypeWood,
		world.BlockTypeSand,
		world.BlockTypeWater,
	}, c.Types())
	assert.False(t, c.Has(world.BlockTypeAir))

	for _, bt := range c.Types() {
		def, ok := c.Lookup(bt)
		require.True(t, ok)
		assert.Equal(t, bt.String(), def.Name)
		got, ok := c.ByName(def.Name)
		assert.True(t, ok)
		assert.Equal(t, bt, got)
	}
}

func TestColors(t *testing.T) {
	c := Default()

	grass, _ := c.Lookup(world.BlockTypeGrass)
	r, g, b := grass.RGB()
	assert.InDelta(t, float32(colornames.Forestgreen.R)/255, r, 1e-6)
	assert.InDelta(t, float32(colornames.Forestgreen.G)/255, g, 1e-6)
	assert.InDelta(t, float32(colornames.Forestgreen.B)/255, b, 1e-6)
	assert.Equal(t, float32(1), grass.Alpha())

	water, _ := c.Lookup(world.BlockTypeWater)
	assert.True(t, water.IsTransparent)
	assert.InDelta(t, 0x99/255.0, water.Alpha(), 1e-6)
}

func TestRegisterRejectsAirAndDuplicates(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(BlockDefinition{ID: world.BlockTypeStone, Name: "stone"}))

	assert.Error(t, c.Register(BlockDefinition{ID: world.BlockTypeAir, Name: "air"}))
	assert.Error(t, c.Register(BlockDefinition{ID: world.BlockTypeStone, Name: "rock"}))
	assert.Error(t, c.Register(BlockDefinition{ID: world.BlockTypeDirt, Name: "stone"}))
	assert.Equal(t, []world.BlockType{world.BlockTypeStone}, c.Types())
}

func TestTypesReturnsCopy(t *testing.T) {
	c := Default()
	types := c.Types()
	types[0] = world.BlockTypeAir
	assert.Equal(t, world.BlockTypeGrass, c.Types()[0])
}
