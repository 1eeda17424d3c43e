// Package viewer drives the render loop: it applies load results, runs the camera
// stages in order and rasterizes the scene once per display refresh.
package viewer

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/moonview/pkg/asset"
	"github.com/leterax/moonview/pkg/camera"
	"github.com/leterax/moonview/pkg/scene"
)

// Scene and camera constants
const (
	CameraFOV      = 30
	CameraNear     = 0.1
	CameraFar      = 10000
	CameraDistance = 5000

	LightColor            = 0xffffff
	LightIntensity        = -1.9
	AmbientLightColor     = 0xffffff
	AmbientLightIntensity = 1.6
)

var (
	// ModelScale and ModelPosition place the loaded model in the scene
	ModelScale    = mgl32.Vec3{1000, 1000, 1100}
	ModelPosition = mgl32.Vec3{0, 140, 0}

	lightPosition = mgl32.Vec3{200, 200, 200}
)

// DefaultCamera returns the startup camera for a viewport of the given size
func DefaultCamera(width, height int) camera.State {
	s := camera.State{
		Position: mgl32.Vec3{0, 0, CameraDistance},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      CameraFOV,
		Near:     CameraNear,
		Far:      CameraFar,
		Aspect:   1,
	}
	return s.WithAspect(width, height)
}

// NewScene creates the scene graph with its startup lights and no model
func NewScene() *scene.Graph {
	g := scene.NewGraph()
	g.AddLight(scene.Light{
		Kind:      scene.Directional,
		Color:     scene.ColorFromHex(LightColor),
		Intensity: LightIntensity,
		Position:  lightPosition,
	})
	g.AddLight(scene.Light{
		Kind:      scene.Ambient,
		Color:     scene.ColorFromHex(AmbientLightColor),
		Intensity: AmbientLightIntensity,
	})
	return g
}

// Rasterizer draws the scene through the camera
type Rasterizer interface {
	Render(g *scene.Graph, cam camera.State)
}

// ResultSource delivers asset load results without blocking
type ResultSource interface {
	Poll() (asset.Result, bool)
}

// LoopState is the render loop lifecycle state
type LoopState int

const (
	// Idle is the state before the first tick
	Idle LoopState = iota
	// Running ticks once per frame until the process ends
	Running
)

// String returns the state name
func (s LoopState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Loop is the self-rescheduling render loop. All of its state is touched only
// from frame callbacks, so it needs no locking.
type Loop struct {
	state      LoopState
	scheduler  Scheduler
	rig        *camera.Rig
	graph      *scene.Graph
	stages     []camera.Stage
	rasterizer Rasterizer
	loads      ResultSource
	log        *slog.Logger

	modelPlaced     bool
	progressPercent int // last whole percent logged
	ticks           uint64
}

// LoopConfig wires a Loop. Stages run in order every tick, before rasterization.
type LoopConfig struct {
	Scheduler  Scheduler
	Rig        *camera.Rig
	Graph      *scene.Graph
	Stages     []camera.Stage
	Rasterizer Rasterizer
	Loads      ResultSource
	Logger     *slog.Logger
}

// NewLoop creates an idle loop
func NewLoop(cfg LoopConfig) *Loop {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		state:      Idle,
		scheduler:  cfg.Scheduler,
		rig:        cfg.Rig,
		graph:      cfg.Graph,
		stages:     cfg.Stages,
		rasterizer: cfg.Rasterizer,
		loads:      cfg.Loads,
		log:        log,

		progressPercent: -1,
	}
}

// Start moves the loop from Idle to Running and requests the first tick.
// Calling it again has no effect.
func (l *Loop) Start() {
	if l.state != Idle {
		return
	}
	l.state = Running
	l.log.Debug("Render loop started")
	l.scheduler.RequestFrame(l.tick)
}

// State returns the lifecycle state
func (l *Loop) State() LoopState {
	return l.state
}

// Ticks returns how many ticks have run
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) tick() {
	l.scheduler.RequestFrame(l.tick)
	l.ticks++

	l.drainLoads()
	l.rig.Apply(l.stages...)
	if l.rasterizer != nil {
		l.rasterizer.Render(l.graph, l.rig.State())
	}
}

func (l *Loop) drainLoads() {
	if l.loads == nil {
		return
	}
	for {
		res, ok := l.loads.Poll()
		if !ok {
			return
		}
		l.HandleLoad(res)
	}
}

// HandleLoad reacts to one load result: a loaded model is placed and inserted
// once, a failure is logged and the scene stays without the model, progress is
// only logged, once per whole percent.
func (l *Loop) HandleLoad(res asset.Result) {
	switch res.Status {
	case asset.InProgress:
		frac, ok := res.Fraction()
		if !ok {
			l.log.Debug("Loading asset", "path", res.Path, "bytes", res.LoadedBytes)
			return
		}
		percent := int(frac * 100)
		if percent <= l.progressPercent {
			return
		}
		l.progressPercent = percent
		l.log.Info("Loading asset", "path", res.Path, "percent", percent)
	case asset.Loaded:
		if l.modelPlaced {
			l.log.Warn("Ignoring extra model", "path", res.Path)
			return
		}
		model := res.Model
		model.Scale = ModelScale
		model.Position = ModelPosition
		l.graph.AddModel(model)
		l.modelPlaced = true
		l.log.Info("Model loaded", "path", res.Path, "meshes", len(model.Meshes))
	case asset.Failed:
		l.log.Error("Failed to load model", "path", res.Path, "error", res.Err)
	}
}
