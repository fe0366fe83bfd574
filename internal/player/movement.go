package player

import (
	"mini-voxel/internal/input"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Update advances the player by dt seconds using the given input. It
// reports whether the player fell out of the world and was respawned.
func (p *Player) Update(dt float64, in input.Snapshot) bool {
	defer profiling.Track("player.Update")()

	p.ApplyLook(in.Look.Yaw, in.Look.Pitch)
	if in.Select != world.BlockTypeAir {
		p.Selected = in.Select
	}

	step := float32(dt)
	s := p.Settings

	// Gravity
	p.Velocity[1] += s.Gravity * step

	// Ground check below the feet
	p.OnGround = false
	feet := p.Position.Sub(mgl32.Vec3{0, PlayerHeight, 0})
	if physics.Collides(feet, p.World) && p.Velocity[1] < 0 {
		p.Velocity[1] = 0
		p.Jumping = false
		p.OnGround = true
	}

	// Jump
	if in.Jump && p.OnGround && !p.Jumping {
		p.Velocity[1] = s.JumpForce
		p.Jumping = true
	}

	// Get input direction
	forward, right := p.horizontalBasis()
	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Backward {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	if move.Len() > 0 {
		move = move.Normalize().Mul(s.MoveSpeed)
	}

	// Resolve X, then Z from the updated X, so blocked motion on one axis
	// still slides along the other.
	testPosX := p.Position
	testPosX[0] += move[0] * step
	if !physics.Collides(testPosX, p.World) {
		p.Position = testPosX
	}

	testPosZ := p.Position
	testPosZ[2] += move[2] * step
	if !physics.Collides(testPosZ, p.World) {
		p.Position = testPosZ
	}

	testPosY := p.Position
	testPosY[1] += p.Velocity[1] * step
	if !physics.Collides(testPosY, p.World) {
		p.Position = testPosY
	} else {
		p.Velocity[1] = 0
	}

	respawned := false
	if p.Position[1] < s.FallLimit {
		p.Respawn()
		respawned = true
	}

	p.UpdateHoveredBlock()
	return respawned
}
