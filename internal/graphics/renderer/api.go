package renderer

import (
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/player"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext is the per-frame state handed to every renderable.
type RenderContext struct {
	Camera *graphics.Camera
	Player *player.Player
	// World is the store the player acts on; renderables only read it.
	World *world.World
	DT    float64
	View  mgl32.Mat4
	Proj  mgl32.Mat4
}

// Renderable is one feature drawn each frame. Init and Dispose run with
// the GL context current; Init failures abort renderer construction.
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
}
