package main

import (
	"log/slog"
	"time"

	"mini-voxel/internal/game"
	"mini-voxel/internal/graphics/renderables/hud"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/input"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// maxFrameDT caps the simulated step after a stall (window drag, debugger)
// so the player does not tunnel through the floor.
const maxFrameDT = 0.1

// GameLoop manages the main game loop state
type GameLoop struct {
	window       *glfw.Window
	renderer     *renderer.Renderer
	hud          *hud.HUD
	session      *game.Session
	inputManager *input.Manager
	log          *slog.Logger

	paused        bool
	showProfiling bool
	fpsLimiter    *game.FPSLimiter

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

// NewGameLoop creates a new game loop with all components
func NewGameLoop(window *glfw.Window, r *renderer.Renderer, h *hud.HUD, s *game.Session, im *input.Manager, log *slog.Logger) *GameLoop {
	return &GameLoop{
		window:           window,
		renderer:         r,
		hud:              h,
		session:          s,
		inputManager:     im,
		log:              log,
		fpsLimiter:       game.NewFPSLimiter(s.Config.Render.FPSLimit),
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

// Paused returns pointer to pause state for input handlers
func (gl *GameLoop) Paused() *bool {
	return &gl.paused
}

// Run drives frames until the window is closed.
func (gl *GameLoop) Run() {
	for !gl.window.ShouldClose() {
		gl.tick()
	}
}

func (gl *GameLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	if dt > maxFrameDT {
		dt = maxFrameDT
	}

	// Poll events at start
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	gl.handleInputActions()
	gl.updateGameState(dt)

	gl.renderer.Render(gl.session.Player, dt)
	gl.frames++

	// Present
	func() { defer profiling.Track("glfw.SwapBuffers")(); gl.window.SwapBuffers() }()

	gl.updateProfiling()

	// FPS limiting
	gl.fpsLimiter.Wait()
}

// handleInputActions deals with host-level toggles. They are read before the
// snapshot consumes this frame's edges.
func (gl *GameLoop) handleInputActions() {
	if gl.inputManager.JustPressed(input.ActionPause) {
		gl.paused = !gl.paused
		if gl.paused {
			gl.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			gl.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		}
	}
	if gl.inputManager.JustPressed(input.ActionToggleProfiling) {
		gl.showProfiling = !gl.showProfiling
		gl.hud.ToggleProfiling()
	}
}

func (gl *GameLoop) updateGameState(dt float64) {
	if gl.paused {
		gl.inputManager.PostUpdate()
		return
	}
	// A bad selection must not stop the frame; the session counts it.
	if err := gl.session.Step(dt, gl.inputManager.Snapshot()); err != nil {
		gl.log.Warn("step failed", "err", err, "total", gl.session.PlaceErrors)
	}
}

func (gl *GameLoop) updateProfiling() {
	if time.Since(gl.lastFPSCheckTime) < time.Second {
		return
	}
	attrs := []any{"fps", gl.frames, "blocks", gl.session.World.Len(), "place_errors", gl.session.PlaceErrors}
	if gl.showProfiling {
		attrs = append(attrs, "top", profiling.TopN(5))
	}
	gl.log.Info("frame stats", attrs...)
	gl.frames = 0
	gl.lastFPSCheckTime = time.Now()
}
