package telemetry

import (
	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/systems"
)

// Collector accumulates movement events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64

	// Current window tracking
	windowStartTick int64
	simTime         float64

	// Event counters for current window
	turns            int
	blockedReversals int
	speedUps         int
	speedDowns       int
	resetFrames      int
	skippedUpdates   int
	rejectedCommands int
	staleBodies      int

	// Last speed per entity name, sampled at flush
	lastSpeed    map[string]float64
	lastStrategy map[string]movement.Strategy
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: nominal seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(1)
	if dt > 0 {
		ticksPerWindow = int64(windowDurationSec / dt)
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		lastSpeed:           make(map[string]float64),
		lastStrategy:        make(map[string]movement.Strategy),
	}
}

// Observe records one frame of movement results. dt is the frame's
// elapsed time, which may differ from the nominal dt.
func (c *Collector) Observe(results []systems.MoveResult, dt float64) {
	c.simTime += dt
	for _, r := range results {
		c.lastStrategy[r.Name] = r.Strategy
		if r.Skipped {
			c.skippedUpdates++
			continue
		}
		c.lastSpeed[r.Name] = r.Speed
		c.rejectedCommands += r.Rejected

		o := r.Outcome
		if o.Turned {
			c.turns++
		}
		if o.Blocked {
			c.blockedReversals++
		}
		if o.SpeedDelta > 0 {
			c.speedUps++
		} else if o.SpeedDelta < 0 {
			c.speedDowns++
		}
		if o.Reset {
			c.resetFrames++
		}
	}
}

// RecordStaleBodies records bodies the sync phase could not read.
func (c *Collector) RecordStaleBodies(n int) {
	c.staleBodies += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Pending reports whether ticks were observed since the last flush.
func (c *Collector) Pending(currentTick int64) bool {
	return currentTick > c.windowStartTick
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64) WindowStats {
	speeds := make([]float64, 0, len(c.lastSpeed))
	for _, v := range c.lastSpeed {
		speeds = append(speeds, v)
	}
	mean, p10, p50, p90 := ComputeSpeedStats(speeds)

	var direct, physical int
	for _, s := range c.lastStrategy {
		if s == movement.Physics {
			physical++
		} else {
			direct++
		}
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTime,

		Players:  len(c.lastStrategy),
		Direct:   direct,
		Physical: physical,

		Turns:            c.turns,
		BlockedReversals: c.blockedReversals,
		SpeedUps:         c.speedUps,
		SpeedDowns:       c.speedDowns,
		ResetFrames:      c.resetFrames,
		SkippedUpdates:   c.skippedUpdates,
		RejectedCommands: c.rejectedCommands,
		StaleBodies:      c.staleBodies,

		SpeedMean: mean,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.turns = 0
	c.blockedReversals = 0
	c.speedUps = 0
	c.speedDowns = 0
	c.resetFrames = 0
	c.skippedUpdates = 0
	c.rejectedCommands = 0
	c.staleBodies = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
