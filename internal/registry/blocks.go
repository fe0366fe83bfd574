package registry

import (
	"fmt"
	"image/color"

	"mini-voxel/internal/world"

	"golang.org/x/image/colornames"
)

// BlockDefinition defines the display properties of a block type
type BlockDefinition struct {
	ID            world.BlockType
	Name          string
	Color         color.RGBA
	IsTransparent bool
}

// RGB returns the display color as normalized floats for shaders.
func (d *BlockDefinition) RGB() (r, g, b float32) {
	return float32(d.Color.R) / 255, float32(d.Color.G) / 255, float32(d.Color.B) / 255
}

// Alpha is 1 for opaque blocks.
func (d *BlockDefinition) Alpha() float32 {
	if !d.IsTransparent {
		return 1
	}
	return float32(d.Color.A) / 255
}

// Catalog is the read-only set of block types known to a session. It is
// populated once at startup and then shared by the generator, the player
// and the renderer.
type Catalog struct {
	blocks map[world.BlockType]*BlockDefinition
	names  map[string]world.BlockType
	order  []world.BlockType
}

func NewCatalog() *Catalog {
	return &Catalog{
		blocks: make(map[world.BlockType]*BlockDefinition),
		names:  make(map[string]world.BlockType),
	}
}

// Default returns the catalog of every placeable block type.
func Default() *Catalog {
	c := NewCatalog()
	for _, def := range []BlockDefinition{
		{ID: world.BlockTypeGrass, Name: "grass", Color: colornames.Forestgreen},
		{ID: world.BlockTypeDirt, Name: "dirt", Color: colornames.Saddlebrown},
		{ID: world.BlockTypeStone, Name: "stone", Color: colornames.Slategray},
		{ID: world.BlockTypeWood, Name: "wood", Color: colornames.Sienna},
		{ID: world.BlockTypeSand, Name: "sand", Color: colornames.Khaki},
		{ID: world.BlockTypeWater, Name: "water", Color: withAlpha(colornames.Royalblue, 0x99), IsTransparent: true},
	} {
		if err := c.Register(def); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds a definition. Air and duplicate IDs or names are rejected.
func (c *Catalog) Register(def BlockDefinition) error {
	if def.ID == world.BlockTypeAir {
		return fmt.Errorf("registry: air cannot be registered")
	}
	if _, ok := c.blocks[def.ID]; ok {
		return fmt.Errorf("registry: block %v already registered", def.ID)
	}
	if _, ok := c.names[def.Name]; ok {
		return fmt.Errorf("registry: block name %q already registered", def.Name)
	}
	d := def
	c.blocks[def.ID] = &d
	c.names[def.Name] = def.ID
	c.order = append(c.order, def.ID)
	return nil
}

// Lookup returns the definition of t.
func (c *Catalog) Lookup(t world.BlockType) (*BlockDefinition, bool) {
	d, ok := c.blocks[t]
	return d, ok
}

// Has reports whether t is a known block type.
func (c *Catalog) Has(t world.BlockType) bool {
	_, ok := c.blocks[t]
	return ok
}

// ByName resolves a registered name.
func (c *Catalog) ByName(name string) (world.BlockType, bool) {
	t, ok := c.names[name]
	return t, ok
}

// Types lists the registered types in registration order.
func (c *Catalog) Types() []world.BlockType {
	out := make([]world.BlockType, len(c.order))
	copy(out, c.order)
	return out
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
