package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/arena/systems"
)

// Phases are logged and exported in frame order.
var phaseOrder = [...]string{
	systems.PhaseInput,
	systems.PhaseMovement,
	systems.PhasePhysics,
	systems.PhaseSync,
	systems.PhaseTelemetry,
}

// OtherPhase collects time spent in phases outside phaseOrder.
const OtherPhase = "other"

func phaseIndex(phase string) int {
	for i, p := range phaseOrder {
		if p == phase {
			return i
		}
	}
	return -1
}

// frameSample holds timing data for a single frame. Phases not in
// phaseOrder are folded into other.
type frameSample struct {
	total  time.Duration
	phases [len(phaseOrder)]time.Duration
	other  time.Duration
}

// PerfCollector times frame phases over a rolling window.
type PerfCollector struct {
	samples []frameSample
	next    int
	filled  int

	cur        frameSample
	frameStart time.Time
	phaseStart time.Time
	phase      int // index into phaseOrder, -1 for unknown, -2 for none

	// Wall-clock frame pacing (graphics mode)
	lastPresent time.Time
	presentGap  time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]frameSample, windowSize),
		phase:   -2,
		now:     time.Now,
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.frameStart = p.now()
	p.cur = frameSample{}
	p.phase = -2
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	d := now.Sub(p.phaseStart)
	switch {
	case p.phase >= 0:
		p.cur.phases[p.phase] += d
	case p.phase == -1:
		p.cur.other += d
	}
}

// EndTick finishes the frame and stores its sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.phase = -2
	p.cur.total = now.Sub(p.frameStart)

	p.samples[p.next] = p.cur
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// RecordFrame marks a presented frame for FPS measurement.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration // average time per phase
	PhasePct map[string]float64       // share of the average frame, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration // wall-clock gap between presented frames
	FPS           float64
}

// Stats aggregates the samples in the current window.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(phaseOrder)),
		PhasePct:      make(map[string]float64, len(phaseOrder)),
		FrameDuration: p.presentGap,
	}
	if p.presentGap > 0 {
		st.FPS = float64(time.Second) / float64(p.presentGap)
	}
	if p.filled == 0 {
		return st
	}

	var total time.Duration
	var sums [len(phaseOrder)]time.Duration
	var other time.Duration
	for i, s := range p.samples[:p.filled] {
		total += s.total
		if i == 0 || s.total < st.MinTickDuration {
			st.MinTickDuration = s.total
		}
		if s.total > st.MaxTickDuration {
			st.MaxTickDuration = s.total
		}
		for j, d := range s.phases {
			sums[j] += d
		}
		other += s.other
	}

	n := time.Duration(p.filled)
	st.AvgTickDuration = total / n
	for j, name := range phaseOrder {
		if sums[j] == 0 {
			continue
		}
		avg := sums[j] / n
		st.PhaseAvg[name] = avg
		if st.AvgTickDuration > 0 {
			st.PhasePct[name] = float64(avg) / float64(st.AvgTickDuration) * 100
		}
	}
	if other > 0 {
		st.PhaseAvg[OtherPhase] = other / n
	}
	if st.AvgTickDuration > 0 {
		st.TicksPerSecond = float64(time.Second) / float64(st.AvgTickDuration)
	}
	return st
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	MovementPct  float64 `csv:"movement_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	SyncPct      float64 `csv:"sync_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[systems.PhaseInput],
		MovementPct:  s.PhasePct[systems.PhaseMovement],
		PhysicsPct:   s.PhasePct[systems.PhasePhysics],
		SyncPct:      s.PhasePct[systems.PhaseSync],
		TelemetryPct: s.PhasePct[systems.PhaseTelemetry],
	}
}
