package telemetry

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/arena/systems"
)

// TraceRecord is one entity's state after one frame.
type TraceRecord struct {
	Tick      int64   `csv:"tick"`
	SimTime   float64 `csv:"sim_time"`
	DT        float64 `csv:"dt"`
	Entity    string  `csv:"entity"`
	Strategy  string  `csv:"strategy"`
	Direction string  `csv:"direction"`
	Candidate string  `csv:"candidate"`
	Speed     float64 `csv:"speed"`
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
	VX        float64 `csv:"vx"`
	VY        float64 `csv:"vy"`
	Turned    bool    `csv:"turned"`
	Blocked   bool    `csv:"blocked"`
	Reset     bool    `csv:"reset"`
	Skipped   bool    `csv:"skipped"`
}

// NewTraceRecord builds a trace row from a movement result. pos and vel
// are the entity's state after physics and sync ran.
func NewTraceRecord(tick int64, simTime, dt float64, r systems.MoveResult, pos, vel r2.Vec) TraceRecord {
	rec := TraceRecord{
		Tick:      tick,
		SimTime:   simTime,
		DT:        dt,
		Entity:    r.Name,
		Strategy:  r.Strategy.String(),
		Direction: r.Direction.String(),
		Speed:     r.Speed,
		X:         pos.X,
		Y:         pos.Y,
		VX:        vel.X,
		VY:        vel.Y,
		Skipped:   r.Skipped,
	}
	if !r.Skipped {
		rec.Candidate = r.Outcome.Candidate.String()
		rec.Turned = r.Outcome.Turned
		rec.Blocked = r.Outcome.Blocked
		rec.Reset = r.Outcome.Reset
	}
	return rec
}
