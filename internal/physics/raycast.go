package physics

import (
	"math"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxReachDistance bounds targeting; hits at or beyond it are ignored.
const MaxReachDistance = 8.0

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition world.Pos
	// Normal is the outward normal of the face the ray entered through.
	Normal   world.Pos
	Distance float32
	Hit      bool
}

// AdjacentPosition is the empty cell in front of the hit face.
func (r RaycastResult) AdjacentPosition() world.Pos {
	return r.HitPosition.Add(r.Normal)
}

// Raycast finds the nearest block whose unit cube (centered on its grid
// coordinate) the ray enters at a distance in [0, maxDist). direction must
// be normalized. Blocks containing the origin are not hit. When two blocks
// are at exactly the same distance the winner depends on store iteration
// order.
func Raycast(start, direction mgl32.Vec3, maxDist float32, w *world.World) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	result := RaycastResult{Hit: false}
	best := maxDist

	for _, b := range w.AllBlocks() {
		t, axis, ok := intersectCell(start, direction, b.Pos)
		if !ok || t >= best {
			continue
		}
		best = t
		result.HitPosition = b.Pos
		result.Normal = faceNormal(axis, direction)
		result.Distance = t
		result.Hit = true
	}

	return result
}

// intersectCell runs the slab test against the closed cube
// [c-0.5, c+0.5]^3. It returns the entry distance and the axis of the
// entry face.
func intersectCell(o, d mgl32.Vec3, c world.Pos) (float32, int, bool) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	axis := -1

	for i := 0; i < 3; i++ {
		lo := float32(c[i]) - 0.5
		hi := float32(c[i]) + 0.5
		if d[i] == 0 {
			if o[i] < lo || o[i] > hi {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo - o[i]) / d[i]
		t2 := (hi - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
			axis = i
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, 0, false
		}
	}

	if axis < 0 || tNear < 0 {
		return 0, 0, false
	}
	return tNear, axis, true
}

func faceNormal(axis int, d mgl32.Vec3) world.Pos {
	var n world.Pos
	if d[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return n
}
