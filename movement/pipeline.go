package movement

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/arena/input"
	"github.com/pthm-cable/arena/physics"
)

// Resolve maps held keys to a candidate direction. The first held key in
// Left, Right, Down, Up order wins; with nothing held the current
// direction is kept.
func Resolve(keys input.Keyboard, b Bindings, current Direction) Direction {
	switch {
	case held(keys, b.Left):
		return Left
	case held(keys, b.Right):
		return Right
	case held(keys, b.Down):
		return Down
	case held(keys, b.Up):
		return Up
	}
	return current
}

// Turn applies the candidate unless it would reverse the current direction.
// Only a perpendicular candidate changes the direction.
func Turn(current, candidate Direction) Direction {
	if current.Perpendicular(candidate) {
		return candidate
	}
	return current
}

// AdjustSpeed applies this frame's speed key presses. Only press edges
// count; holding a key does nothing further. Speed is not clamped and may
// reach zero or go negative.
func AdjustSpeed(speed float64, keys input.Keyboard, b Bindings, increment float64) float64 {
	if pressed(keys, b.SpeedUp) {
		speed += increment
	}
	if pressed(keys, b.SpeedDown) {
		speed -= increment
	}
	return speed
}

// Displacement is the distance covered in dt seconds.
func Displacement(d Direction, speed, dt float64) r2.Vec {
	return r2.Scale(speed*dt, d.Axis())
}

// VelocityFor is the velocity commanded to a physics body. The engine
// integrates it, so there is no dt factor.
func VelocityFor(d Direction, speed float64) r2.Vec {
	return r2.Scale(speed, d.Axis())
}

func held(keys input.Keyboard, k input.Key) bool {
	return k != input.KeyNone && keys.Held(k)
}

func pressed(keys input.Keyboard, k input.Key) bool {
	return k != input.KeyNone && keys.JustPressed(k)
}

// Mover is the movement state of one controlled entity.
type Mover struct {
	Strategy Strategy
	Bindings Bindings
	Tuning   Tuning

	Direction Direction
	Speed     float64
	// Position is owned by the mover only for Direct entities. Physics
	// entities keep it at the origin; their body holds the real pose.
	Position r2.Vec
}

// NewMover creates a mover facing Up at the default speed.
func NewMover(s Strategy, b Bindings, t Tuning) Mover {
	return Mover{
		Strategy:  s,
		Bindings:  b,
		Tuning:    t,
		Direction: Up,
		Speed:     t.DefaultSpeed,
	}
}

// Outcome describes what happened during one Step.
type Outcome struct {
	Candidate  Direction
	Turned     bool // direction changed
	Blocked    bool // candidate was the opposite of the current direction
	SpeedDelta float64
	Reset      bool
}

// Step advances m by one frame of dt seconds. It runs direction
// resolution, the turn guard, speed keys, motion and reset, in that order,
// and returns the new state with any commands for the entity's physics
// body. Direct movers never emit commands.
func Step(m Mover, keys input.Keyboard, dt float64) (Mover, []physics.Command, Outcome) {
	var out Outcome

	out.Candidate = Resolve(keys, m.Bindings, m.Direction)
	next := Turn(m.Direction, out.Candidate)
	out.Blocked = next != out.Candidate
	out.Turned = next != m.Direction
	m.Direction = next

	speed := AdjustSpeed(m.Speed, keys, m.Bindings, m.Tuning.SpeedIncrement)
	out.SpeedDelta = speed - m.Speed
	m.Speed = speed

	var cmds []physics.Command
	switch m.Strategy {
	case Physics:
		cmds = append(cmds, physics.VelocityCommand(VelocityFor(m.Direction, m.Speed), true))
	default:
		m.Position = r2.Add(m.Position, Displacement(m.Direction, m.Speed, dt))
	}

	if held(keys, m.Bindings.Reset) {
		out.Reset = true
		m.Speed = m.Tuning.DefaultSpeed
		switch m.Strategy {
		case Physics:
			cmds = append(cmds, physics.PoseCommand(physics.Identity(), true))
			if m.Tuning.ResetVelocity {
				cmds = append(cmds, physics.VelocityCommand(r2.Vec{}, true))
			}
		default:
			m.Position = r2.Vec{}
		}
	}

	return m, cmds, out
}
