package player

import (
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PlayerHeight is the distance from the eye down to the ground probe.
	PlayerHeight = 1.8

	Gravity        = -30.0
	JumpForce      = 10.0
	MoveSpeed      = 5.0
	FallLimit      = -5.0
	PlaceClearance = 2.0
)

// SpawnPosition is the eye position a new player starts at.
var SpawnPosition = mgl32.Vec3{0, 10, 0}

// Settings holds the tunable movement and interaction constants.
type Settings struct {
	Spawn mgl32.Vec3
	// Gravity is a (negative) vertical acceleration in blocks/s^2.
	Gravity   float32
	JumpForce float32
	MoveSpeed float32
	Reach     float32
	// FallLimit is the height below which the player is returned to Spawn.
	FallLimit float32
	// PlaceClearance is the minimum distance between the player and a
	// newly placed block.
	PlaceClearance float32
}

// DefaultSettings returns the standard constants.
func DefaultSettings() Settings {
	return Settings{
		Spawn:          SpawnPosition,
		Gravity:        Gravity,
		JumpForce:      JumpForce,
		MoveSpeed:      MoveSpeed,
		Reach:          MaxReach,
		FallLimit:      FallLimit,
		PlaceClearance: PlaceClearance,
	}
}

type Player struct {
	// Position is the eye position; the body hangs PlayerHeight below it.
	Position mgl32.Vec3
	// Velocity is in blocks per second. Only Y is integrated; horizontal
	// motion comes straight from input each tick.
	Velocity mgl32.Vec3
	OnGround bool
	Jumping  bool

	CamYaw   float64
	CamPitch float64

	// Selected is the block type Place puts down.
	Selected world.BlockType

	// Interaction
	HoveredBlock    world.Pos
	HoveredNormal   world.Pos
	HasHoveredBlock bool

	// Respawns counts fall-through recoveries.
	Respawns int

	World    *world.World
	Catalog  *registry.Catalog
	Events   world.Listener
	Settings Settings
}

// New creates a player at the spawn point. events receives the block
// mutations made by Break and Place; nil discards them.
func New(w *world.World, catalog *registry.Catalog, events world.Listener, s Settings) *Player {
	if events == nil {
		events = world.NopListener{}
	}
	p := &Player{
		Position: s.Spawn,
		World:    w,
		Catalog:  catalog,
		Events:   events,
		Settings: s,
	}
	if types := catalog.Types(); len(types) > 0 {
		p.Selected = types[0]
	}
	return p
}

func (p *Player) GetEyePosition() mgl32.Vec3 {
	return p.Position
}

// Respawn returns the player to the spawn point at rest.
func (p *Player) Respawn() {
	p.Position = p.Settings.Spawn
	p.Velocity = mgl32.Vec3{}
	p.OnGround = false
	p.Jumping = false
	p.Respawns++
}
