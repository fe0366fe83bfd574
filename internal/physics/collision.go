package physics

import (
	"math"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// LateralTolerance is how far (in blocks) the probe reaches sideways from
// the player's axis.
const LateralTolerance = 0.4

// Collides probes the 3x3x3 neighbourhood around pos: one cell below,
// level with and above pos vertically, and pos +/- LateralTolerance on X
// and Z. It is a point-vs-grid approximation of the player volume, not an
// exact box intersection.
func Collides(pos mgl32.Vec3, w *world.World) bool {
	for dy := -1; dy <= 1; dy++ {
		y := floor(pos.Y() + float32(dy))
		for dx := -1; dx <= 1; dx++ {
			x := floor(pos.X() + float32(dx)*LateralTolerance)
			for dz := -1; dz <= 1; dz++ {
				z := floor(pos.Z() + float32(dz)*LateralTolerance)
				if w.Has(world.Pos{x, y, z}) {
					return true
				}
			}
		}
	}
	return false
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}
