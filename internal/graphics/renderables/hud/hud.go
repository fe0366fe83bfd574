package hud

import (
	"fmt"
	"strings"
	"time"

	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/fontatlas"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const fontPixels = 24

var headingNames = map[world.BlockFace]string{
	world.FaceNorth: "north (+Z)",
	world.FaceSouth: "south (-Z)",
	world.FaceEast:  "east (+X)",
	world.FaceWest:  "west (-X)",
}

// HUD draws the status text in the top-left corner and, when enabled, the
// slowest profiling sections of the last frame.
type HUD struct {
	fontRenderer  *graphics.FontRenderer
	width, height int
	showProfiling bool

	frames       int
	lastFPSCheck time.Time
	currentFPS   int
}

// NewHUD creates a new HUD renderable for a framebuffer of the given size.
func NewHUD(width, height int) *HUD {
	return &HUD{width: width, height: height}
}

// Init bakes the font and uploads it.
func (h *HUD) Init() error {
	atlas, err := fontatlas.Default(fontPixels)
	if err != nil {
		return err
	}
	h.fontRenderer, err = graphics.NewFontRenderer(atlas, h.width, h.height)
	if err != nil {
		return err
	}
	h.lastFPSCheck = time.Now()
	return nil
}

// Render renders the HUD elements
func (h *HUD) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.hud")()

	h.frames++
	if time.Since(h.lastFPSCheck) >= time.Second {
		h.currentFPS = h.frames
		h.lastFPSCheck = time.Now()
		h.frames = 0
	}

	white := mgl32.Vec3{1, 1, 1}
	step := h.fontRenderer.LineHeight() * 0.7
	status := h.statusLines(ctx.Player, ctx.World)
	h.fontRenderer.RenderLines(status, 10, 30, step, 0.7, white)

	if h.showProfiling {
		if top := profiling.TopN(10); top != "" {
			y := 30 + step*float32(len(status)+1)
			h.fontRenderer.RenderLines(strings.Split(top, ", "), 10, y, step*0.9, 0.6, mgl32.Vec3{1, 1, 0.6})
		}
	}
}

func (h *HUD) statusLines(p *player.Player, w *world.World) []string {
	lines := []string{
		fmt.Sprintf("FPS: %d", h.currentFPS),
		fmt.Sprintf("Pos: %.2f, %.2f, %.2f", p.Position[0], p.Position[1], p.Position[2]),
		fmt.Sprintf("Facing: %s", headingNames[p.Heading()]),
		fmt.Sprintf("Selected: %s", p.Selected),
	}
	if p.HasHoveredBlock {
		if b, ok := w.Get(p.HoveredBlock); ok {
			lines = append(lines, fmt.Sprintf("Looking at: %s %s", b.Type, b.Pos))
		}
	}
	return lines
}

// Dispose cleans up resources
func (h *HUD) Dispose() {
	if h.fontRenderer != nil {
		h.fontRenderer.Dispose()
	}
}

// ToggleProfiling toggles profiling HUD visibility
func (h *HUD) ToggleProfiling() {
	h.showProfiling = !h.showProfiling
}

// ShowProfiling returns whether profiling is enabled
func (h *HUD) ShowProfiling() bool {
	return h.showProfiling
}

// SetViewport follows framebuffer resizes.
func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.fontRenderer != nil {
		h.fontRenderer.SetViewport(width, height)
	}
}
