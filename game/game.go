// Package game wires the arena together: the ark world holding player
// entities, the physics engine, the per-frame systems, telemetry and,
// in graphical mode, raylib input and rendering.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/inspector"
	"github.com/pthm-cable/arena/physics"
	"github.com/pthm-cable/arena/systems"
	"github.com/pthm-cable/arena/telemetry"
	"github.com/pthm-cable/arena/ui"
)

// Options configures game initialization.
type Options struct {
	LogStats  bool   // log window and perf stats via slog
	OutputDir string // directory for CSV logs and config snapshot (empty = disabled)
	Headless  bool   // run without raylib
}

// Game holds the complete arena state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	engine   *physics.Engine
	movement *systems.MovementSystem
	bodySync *systems.BodySyncSystem
	registry *systems.SystemRegistry

	// Lookups for trace rows and rendering
	posMap       *ecs.Map[components.Position]
	velMap       *ecs.Map[components.Velocity]
	renderFilter *ecs.Filter5[components.Position, components.Velocity, components.Motion, components.Appearance, components.Name]
	keysFilter   *ecs.Filter2[components.Controls, components.Name]

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	traceBuf      []telemetry.TraceRecord
	lastResults   []systems.MoveResult

	// Viewer (graphical mode only)
	headless       bool
	camera         *camera.Camera
	inspector      *inspector.Inspector
	overlays       *ui.OverlayRegistry
	hud            *ui.HUD
	perfPanel      *ui.PerfPanel
	helpPanel      *ui.HelpPanel
	inspectorPanel *ui.InspectorPanel
	screenWidth    float32
	screenHeight   float32

	// State
	tick    int64
	simTime float64
	paused  bool
}

// NewGame creates a game from cfg and spawns the configured players.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	g := &Game{
		cfg:      cfg,
		world:    world,
		movement: systems.NewMovementSystem(world),
		bodySync: systems.NewBodySyncSystem(world),
		registry: systems.NewSystemRegistry(),
		posMap:   ecs.NewMap[components.Position](world),
		velMap:   ecs.NewMap[components.Velocity](world),
		renderFilter: ecs.NewFilter5[components.Position, components.Velocity, components.Motion, components.Appearance, components.Name](world).
			With(ecs.C[components.Player]()),
		keysFilter:    ecs.NewFilter2[components.Controls, components.Name](world),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		inspector:     inspector.New(world),
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	physCfg := physics.Config{
		SleepSpeed:  cfg.Physics.SleepSpeed,
		SleepFrames: cfg.Physics.SleepFrames,
		Restitution: cfg.Physics.Restitution,
	}
	if cfg.Arena.Walls {
		physCfg.Bounds = cfg.Derived.Bounds
	}
	g.engine = physics.NewEngine(physCfg)

	om, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.Trace)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	if om != nil {
		slog.Info("output enabled", "dir", om.Dir())
	}

	if !opts.Headless {
		g.camera = camera.New(float64(g.screenWidth), float64(g.screenHeight), cfg.Derived.Bounds)
		g.overlays = ui.NewOverlayRegistry()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(g.registry, 10, 0)
		g.helpPanel = ui.NewHelpPanel()
		g.inspectorPanel = ui.NewInspectorPanel(240)
	}

	g.spawnPlayers()
	return g, nil
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int64 {
	return g.tick
}

// SimTime returns the simulated seconds elapsed.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Paused reports whether the pipeline is frozen.
func (g *Game) Paused() bool {
	return g.paused
}

// Close flushes a final partial stats window and closes output files.
func (g *Game) Close() error {
	if g.collector.Pending(g.tick) {
		g.writeStats(g.collector.Flush(g.tick))
	}
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
