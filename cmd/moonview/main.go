package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leterax/moonview/internal/config"
	"github.com/leterax/moonview/internal/logger"
	"github.com/leterax/moonview/internal/openglhelper"
	"github.com/leterax/moonview/pkg/asset"
	"github.com/leterax/moonview/pkg/camera"
	"github.com/leterax/moonview/pkg/input"
	"github.com/leterax/moonview/pkg/orbit"
	"github.com/leterax/moonview/pkg/render"
	"github.com/leterax/moonview/pkg/viewer"
	"github.com/leterax/moonview/pkg/viewport"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.LoadOrDefault(config.DefaultPath)
	if err != nil {
		slog.Error("Failed to load config", "path", config.DefaultPath, "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rig, err := camera.NewRig(viewer.DefaultCamera(cfg.Window.Width, cfg.Window.Height))
	if err != nil {
		log.Error("Invalid camera", "error", err)
		os.Exit(1)
	}

	graph := viewer.NewScene()
	keys := input.NewState()
	orb := orbit.NewController(orbit.DefaultConfig())
	frames := viewer.NewFrameQueue()

	// A missing window is not fatal: the loop keeps ticking without presenting frames
	var (
		surface    viewport.Surface
		rasterizer viewer.Rasterizer
	)
	window, err := openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync)
	if err != nil {
		log.Error("Output surface not attached, rendering headless", "error", err)
		surface = viewport.NewMemorySurface(cfg.Window.Width, cfg.Window.Height)
		rasterizer = viewer.NewHeadless(log.With("component", "headless"))
	} else {
		defer window.Close()
		surface = window

		gl, err := render.NewGLRasterizer(window, log.With("component", "render"))
		if err != nil {
			log.Error("Rasterizer unavailable, frames will not be drawn", "error", err)
			rasterizer = viewer.NewHeadless(log.With("component", "headless"))
		} else {
			defer gl.Delete()
			rasterizer = gl
		}
	}

	sync := viewport.NewSync(rig, surface, orb.SetViewport)
	sync.Resize(surface.Size())
	if window != nil {
		render.NewBindings(window, keys, orb, sync).Attach()
	}

	loader := asset.NewLoader(fetcher(cfg.Assets), log.With("component", "asset"))
	loader.Load(ctx, asset.AssetPath())

	loop := viewer.NewLoop(viewer.LoopConfig{
		Scheduler:  frames,
		Rig:        rig,
		Graph:      graph,
		Stages:     []camera.Stage{input.NewMotion(keys), orb},
		Rasterizer: rasterizer,
		Loads:      loader,
		Logger:     log.With("component", "loop"),
	})
	loop.Start()

	log.Info("Viewer running", "asset", asset.AssetPath(), "headless", window == nil)
	if window != nil {
		render.RunWindow(ctx, window, frames)
	} else {
		viewer.RunHeadless(ctx, frames, viewer.HeadlessFrameInterval)
	}
}

func fetcher(cfg config.AssetsConfig) asset.Fetcher {
	if cfg.BaseURL != "" {
		return asset.HTTPFetcher{BaseURL: cfg.BaseURL}
	}
	return asset.FileFetcher{Root: cfg.Root}
}
