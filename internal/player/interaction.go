package player

import (
	"errors"
	"fmt"

	"mini-voxel/internal/physics"
	"mini-voxel/internal/world"
)

// MaxReach is the default targeting distance.
const MaxReach = physics.MaxReachDistance

// ErrUnknownBlockType is returned by Place when the selected type is not
// in the catalog. It signals a configuration error, not a miss.
var ErrUnknownBlockType = errors.New("unknown block type")

// Target casts the view ray into the world.
func (p *Player) Target() physics.RaycastResult {
	return physics.Raycast(p.GetEyePosition(), p.GetFrontVector(), p.Settings.Reach, p.World)
}

func (p *Player) UpdateHoveredBlock() {
	result := p.Target()

	p.HasHoveredBlock = result.Hit
	if result.Hit {
		p.HoveredBlock = result.HitPosition
		p.HoveredNormal = result.Normal
	}
}

// Break removes the targeted block. It reports false when nothing is in
// reach.
func (p *Player) Break() (world.Block, bool) {
	result := p.Target()
	if !result.Hit {
		return world.Block{}, false
	}
	b, ok := p.World.Remove(result.HitPosition)
	if !ok {
		return world.Block{}, false
	}
	p.Events.BlockRemoved(b)
	p.UpdateHoveredBlock()
	return b, true
}

// Place puts the selected block against the targeted face. A miss, a spot
// too close to the player or an occupied spot is a no-op reported as
// false; an unknown selected type is an error.
func (p *Player) Place() (world.Block, bool, error) {
	if !p.Catalog.Has(p.Selected) {
		return world.Block{}, false, fmt.Errorf("place %v: %w", p.Selected, ErrUnknownBlockType)
	}
	result := p.Target()
	if !result.Hit {
		return world.Block{}, false, nil
	}
	b, ok := p.placeAt(result.AdjacentPosition(), p.Selected)
	if ok {
		p.UpdateHoveredBlock()
	}
	return b, ok, nil
}

func (p *Player) placeAt(pos world.Pos, t world.BlockType) (world.Block, bool) {
	// Don't bury the player
	if pos.Vec3().Sub(p.Position).Len() < p.Settings.PlaceClearance {
		return world.Block{}, false
	}
	if p.World.Has(pos) {
		return world.Block{}, false
	}
	b := world.Block{Pos: pos, Type: t}
	p.World.Set(pos, t)
	p.Events.BlockAdded(b)
	return b, true
}
