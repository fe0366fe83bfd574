package world

import (
	"math/rand"

	"mini-voxel/internal/profiling"
)

const (
	DefaultHalfWidth  = 30
	DefaultBottomY    = -2
	DefaultSandChance = 0.10
	DefaultTreeChance = 0.02

	TrunkHeight = 4
)

// Generator handles terrain generation logic.
type Generator struct {
	// HalfWidth is N: columns x, z in [-N, N) are filled.
	HalfWidth int
	// BottomY is the lowest filled layer of every column.
	BottomY int
	// SandChance is the probability that a column is topped with sand
	// instead of grass.
	SandChance float64
	// TreeChance is the probability that a column with height >= 0 grows a
	// tree. Zero disables trees.
	TreeChance float64

	height HeightFunc
	rng    *rand.Rand
}

// NewGenerator creates a generator with default settings. The random
// source only drives decoration; the surface comes from height alone.
func NewGenerator(height HeightFunc, rng *rand.Rand) *Generator {
	if height == nil {
		height = SineHeight
	}
	return &Generator{
		HalfWidth:  DefaultHalfWidth,
		BottomY:    DefaultBottomY,
		SandChance: DefaultSandChance,
		TreeChance: DefaultTreeChance,
		height:     height,
		rng:        rng,
	}
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(x, z int) int {
	return g.height(x, z)
}

// Generate fills w and reports every written block to l. It returns the
// number of blocks written.
func (g *Generator) Generate(w *World, l Listener) int {
	defer profiling.Track("world.Generate")()
	if l == nil {
		l = NopListener{}
	}
	n := 0
	set := func(p Pos, t BlockType) {
		w.Set(p, t)
		l.BlockAdded(Block{Pos: p, Type: t})
		n++
	}
	for x := -g.HalfWidth; x < g.HalfWidth; x++ {
		for z := -g.HalfWidth; z < g.HalfWidth; z++ {
			height := g.HeightAt(x, z)
			sand := g.roll(g.SandChance)
			tree := g.roll(g.TreeChance)

			for y := g.BottomY; y <= height; y++ {
				var t BlockType
				switch {
				case y == height && sand:
					t = BlockTypeSand
				case y == height:
					t = BlockTypeGrass
				case y == height-1:
					t = BlockTypeDirt
				default:
					t = BlockTypeStone
				}
				set(Pos{x, y, z}, t)
			}

			if tree && height >= 0 {
				g.plantTree(x, height, z, set)
			}
		}
	}
	return n
}

// plantTree grows a wooden trunk on top of the column and a flat canopy
// ring one layer above it.
func (g *Generator) plantTree(x, height, z int, set func(Pos, BlockType)) {
	for y := height + 1; y <= height+TrunkHeight; y++ {
		set(Pos{x, y, z}, BlockTypeWood)
	}
	top := height + TrunkHeight + 1
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			set(Pos{x + dx, top, z + dz}, BlockTypeGrass)
		}
	}
}

// roll draws once from the random source even when chance is zero, so
// toggling one decoration does not shift the layout of the other.
func (g *Generator) roll(chance float64) bool {
	if g.rng == nil {
		return false
	}
	return g.rng.Float64() < chance
}
