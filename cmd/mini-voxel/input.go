package main

import (
	"mini-voxel/internal/graphics/renderables/hud"
	"mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/input"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyBindings = map[glfw.Key]input.Action{
	glfw.KeyW:      input.ActionMoveForward,
	glfw.KeyS:      input.ActionMoveBackward,
	glfw.KeyA:      input.ActionMoveLeft,
	glfw.KeyD:      input.ActionMoveRight,
	glfw.KeySpace:  input.ActionJump,
	glfw.Key1:      input.ActionHotbar1,
	glfw.Key2:      input.ActionHotbar2,
	glfw.Key3:      input.ActionHotbar3,
	glfw.Key4:      input.ActionHotbar4,
	glfw.Key5:      input.ActionHotbar5,
	glfw.Key6:      input.ActionHotbar6,
	glfw.Key7:      input.ActionHotbar7,
	glfw.Key8:      input.ActionHotbar8,
	glfw.Key9:      input.ActionHotbar9,
	glfw.KeyEscape: input.ActionPause,
	glfw.KeyV:      input.ActionToggleProfiling,
}

var mouseBindings = map[glfw.MouseButton]input.Action{
	glfw.MouseButtonLeft:  input.ActionBreak,
	glfw.MouseButtonRight: input.ActionPlace,
}

func setupInputHandlers(window *glfw.Window, r *renderer.Renderer, h *hud.HUD, im *input.Manager, sensitivity float64, paused *bool) {
	var lastX, lastY float64
	firstMouse := true

	// Mouse position callback
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if *paused {
			firstMouse = true
			return
		}
		if firstMouse {
			lastX, lastY = xpos, ypos
			firstMouse = false
			return
		}
		dx := xpos - lastX
		dy := lastY - ypos // reversed: y goes down in window space
		lastX, lastY = xpos, ypos
		im.AddLook(dx*sensitivity, dy*sensitivity)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		act, ok := mouseBindings[button]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			im.Press(act)
		case glfw.Release:
			im.Release(act)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		act, ok := keyBindings[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			im.Press(act)
		case glfw.Release:
			im.Release(act)
		}
	})

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		winW, winH := w.GetSize()
		r.UpdateViewport(winW, winH)
		h.SetViewport(winW, winH)
	})
}
