package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Entity counts at window end
	Players  int `csv:"players"`
	Direct   int `csv:"direct"`
	Physical int `csv:"physics"`

	// Events during window
	Turns            int `csv:"turns"`
	BlockedReversals int `csv:"blocked_reversals"`
	SpeedUps         int `csv:"speed_ups"`
	SpeedDowns       int `csv:"speed_downs"`
	ResetFrames      int `csv:"reset_frames"`
	SkippedUpdates   int `csv:"skipped_updates"`
	RejectedCommands int `csv:"rejected_commands"`
	StaleBodies      int `csv:"stale_bodies"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice with linear
// interpolation between neighbours. p should be in [0, 1]. Returns 0 if
// slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean and percentiles from speed values.
func ComputeSpeedStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("players", s.Players),
		slog.Int("direct", s.Direct),
		slog.Int("physics", s.Physical),
		slog.Int("turns", s.Turns),
		slog.Int("blocked_reversals", s.BlockedReversals),
		slog.Int("speed_ups", s.SpeedUps),
		slog.Int("speed_downs", s.SpeedDowns),
		slog.Int("reset_frames", s.ResetFrames),
		slog.Int("skipped_updates", s.SkippedUpdates),
		slog.Int("rejected_commands", s.RejectedCommands),
		slog.Int("stale_bodies", s.StaleBodies),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
