package player

import (
	"math"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps the view off the poles so the horizontal basis never
// degenerates.
const MaxPitch = 89.0

// ApplyLook rotates the view by the given yaw and pitch in degrees.
func (p *Player) ApplyLook(yaw, pitch float64) {
	p.CamYaw = math.Mod(p.CamYaw+yaw, 360)
	p.CamPitch += pitch

	// Constrain pitch
	if p.CamPitch > MaxPitch {
		p.CamPitch = MaxPitch
	}
	if p.CamPitch < -MaxPitch {
		p.CamPitch = -MaxPitch
	}
}

// GetFrontVector returns the normalized view direction. Yaw 0 looks down
// +X, yaw 90 down +Z.
func (p *Player) GetFrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	pt := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// horizontalBasis returns the view direction flattened onto the XZ plane
// and the right vector forward x up. Both are zero if the view is
// vertical.
func (p *Player) horizontalBasis() (forward, right mgl32.Vec3) {
	f := p.GetFrontVector()
	f[1] = 0
	if f.Len() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	forward = f.Normalize()
	right = forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	return forward, right
}

func (p *Player) GetViewMatrix() mgl32.Mat4 {
	eyePos := p.GetEyePosition()
	target := eyePos.Add(p.GetFrontVector())
	return mgl32.LookAtV(eyePos, target, mgl32.Vec3{0, 1, 0})
}

// Heading is the horizontal face the player is looking towards: yaw 0 is
// east (+X), yaw 90 north (+Z).
func (p *Player) Heading() world.BlockFace {
	yaw := math.Mod(p.CamYaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	switch {
	case yaw >= 315 || yaw < 45:
		return world.FaceEast
	case yaw < 135:
		return world.FaceNorth
	case yaw < 225:
		return world.FaceWest
	default:
		return world.FaceSouth
	}
}
