package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/arena/systems"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseMovement)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(systems.PhasePhysics)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseMovement]; !ok {
		t.Error("expected movement phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[systems.PhasePhysics]; !ok {
		t.Error("expected physics phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseInput]; ok {
		t.Error("expected untimed input phase to be absent")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseSync)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= avg <= max, got %v %v %v",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPerfCollector_PhasePercentages(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(10)
	pc.now = clock.now

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseInput)
		clock.advance(20 * time.Microsecond)
		pc.StartPhase(systems.PhaseTelemetry)
		clock.advance(980 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != time.Millisecond {
		t.Errorf("expected 1ms average tick, got %v", stats.AvgTickDuration)
	}
	fast := stats.PhasePct[systems.PhaseInput]
	slow := stats.PhasePct[systems.PhaseTelemetry]
	if math.Abs(fast-2) > 1e-9 || math.Abs(slow-98) > 1e-9 {
		t.Errorf("expected input 2%% and telemetry 98%%, got %v%% and %v%%", fast, slow)
	}
	if stats.PhaseAvg[systems.PhaseTelemetry] != 980*time.Microsecond {
		t.Errorf("expected telemetry avg 980us, got %v", stats.PhaseAvg[systems.PhaseTelemetry])
	}
	if math.Abs(stats.TicksPerSecond-1000) > 1e-9 {
		t.Errorf("expected 1000 ticks per second, got %v", stats.TicksPerSecond)
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.TelemetryPct != slow {
		t.Errorf("expected CSV row to carry window end and phase pct, got %+v", row)
	}
}

func TestPerfCollector_UnknownPhase(t *testing.T) {
	pc := NewPerfCollector(3)
	pc.StartTick()
	pc.StartPhase("render")
	time.Sleep(50 * time.Microsecond)
	pc.EndTick()

	stats := pc.Stats()
	if stats.PhaseAvg[OtherPhase] <= 0 {
		t.Error("expected unknown phase time to be reported as other")
	}
	if len(stats.PhasePct) != 0 {
		t.Errorf("expected no known phase percentages, got %v", stats.PhasePct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frame time, got %v", stats.FPS)
	}
}
