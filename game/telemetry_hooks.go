package game

import (
	"log/slog"

	"github.com/pthm-cable/arena/systems"
	"github.com/pthm-cable/arena/telemetry"
)

// recordTrace writes one trace row per entity using the state after
// physics and sync ran.
func (g *Game) recordTrace(results []systems.MoveResult, dt float64) {
	if g.outputManager == nil {
		return
	}
	g.traceBuf = g.traceBuf[:0]
	for _, r := range results {
		var rec telemetry.TraceRecord
		switch {
		case g.posMap.Has(r.Entity) && g.velMap.Has(r.Entity):
			pos, vel := g.posMap.Get(r.Entity), g.velMap.Get(r.Entity)
			rec = telemetry.NewTraceRecord(g.tick, g.simTime, dt, r, pos.Vec(), vel.Vec())
		default:
			rec = telemetry.NewTraceRecord(g.tick, g.simTime, dt, r, r.Position, r.Velocity)
		}
		g.traceBuf = append(g.traceBuf, rec)
	}
	if err := g.outputManager.WriteTrace(g.traceBuf); err != nil {
		slog.Error("failed to write trace", "error", err)
	}
}

// flushTelemetry flushes the stats window when it is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	g.writeStats(g.collector.Flush(g.tick))
}

func (g *Game) writeStats(stats telemetry.WindowStats) {
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
