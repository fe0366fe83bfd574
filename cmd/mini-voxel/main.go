package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"mini-voxel/internal/config"
	"mini-voxel/internal/game"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/renderables/blocks"
	"mini-voxel/internal/graphics/renderables/crosshair"
	"mini-voxel/internal/graphics/renderables/direction"
	"mini-voxel/internal/graphics/renderables/hud"
	"mini-voxel/internal/graphics/renderables/wireframe"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/input"
	"mini-voxel/internal/registry"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $"+config.EnvConfigPath+")")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "mini-voxel:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(log)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Render)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	catalog := registry.Default()
	blocksRenderer := blocks.NewBlocks(catalog)
	camera := graphics.NewCamera(cfg.Render.Width, cfg.Render.Height, cfg.Render.FOV)
	overlay := hud.NewHUD(cfg.Render.Width, cfg.Render.Height)

	r, err := renderer.NewRenderer(camera,
		blocksRenderer,
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
		direction.NewDirection(),
		overlay,
	)
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	defer r.Dispose()

	session, err := game.NewSession(cfg,
		game.WithCatalog(catalog),
		game.WithListener(blocksRenderer),
		game.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer session.Close()

	if cfg.Metrics.Addr != "" {
		stop := session.Metrics.Serve(cfg.Metrics.Addr, log)
		defer stop()
	}

	session.Generate()

	im := input.NewManager(catalog.Types()...)
	loop := NewGameLoop(window, r, overlay, session, im, log)
	setupInputHandlers(window, r, overlay, im, cfg.Player.MouseSensitivity, loop.Paused())

	loop.Run()
	return nil
}

func setupWindow(rs config.RenderSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(rs.Width, rs.Height, "mini-voxel", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Disable V-Sync; the loop paces itself with an FPS limiter
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}
