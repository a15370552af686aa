package game

import (
	"log/slog"

	"github.com/pthm-cable/arena/input"
	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/systems"
)

// advance runs one frame of the pipeline after input was polled:
// movement, physics, body sync and telemetry, in that order. Every
// entity sees the same keyboard state. The caller owns the perf tick.
func (g *Game) advance(keys input.Keyboard, dt float64) {
	g.perfCollector.StartPhase(systems.PhaseMovement)
	results := g.movement.Update(keys, dt, g.engine)

	g.perfCollector.StartPhase(systems.PhasePhysics)
	g.engine.Step(dt)

	g.perfCollector.StartPhase(systems.PhaseSync)
	stale := g.bodySync.Update(g.engine)
	g.syncDirectVelocities(results)

	g.tick++
	g.simTime += dt

	g.perfCollector.StartPhase(systems.PhaseTelemetry)
	g.collector.Observe(results, dt)
	g.collector.RecordStaleBodies(stale)
	g.recordTrace(results, dt)
	g.flushTelemetry()
	g.lastResults = results
}

// syncDirectVelocities stores the implied velocity of direct entities so
// rendering and traces can treat every entity alike.
func (g *Game) syncDirectVelocities(results []systems.MoveResult) {
	for _, r := range results {
		if r.Strategy != movement.Direct || !g.velMap.Has(r.Entity) {
			continue
		}
		v := movement.VelocityFor(r.Direction, r.Speed)
		vel := g.velMap.Get(r.Entity)
		vel.X, vel.Y = v.X, v.Y
	}
}

// RunHeadless replays pb until it is exhausted or maxTicks frames have
// run (0 = no limit). Without a script it runs with no keys held and
// the configured dt; maxTicks must then be set.
func (g *Game) RunHeadless(pb *input.Playback, maxTicks int64) {
	idle := input.NewSnapshot(nil, nil)
	for maxTicks <= 0 || g.tick < maxTicks {
		if pb != nil && pb.Done() {
			slog.Info("script finished", "tick", g.tick, "physics_steps", g.engine.Steps())
			return
		}
		g.perfCollector.StartTick()
		g.perfCollector.StartPhase(systems.PhaseInput)
		keys, dt := input.Keyboard(idle), g.cfg.Physics.DT
		if pb != nil {
			kb, stepDT, _ := pb.Next()
			keys, dt = kb, stepDT
		}
		g.advance(keys, dt)
		g.perfCollector.EndTick()
	}
	slog.Info("max ticks reached", "tick", g.tick, "physics_steps", g.engine.Steps())
}
