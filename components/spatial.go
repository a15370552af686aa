package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's arena position (y up).
// Direct entities own it; physics entities receive it from their body.
type Position struct {
	X, Y float64 `inspect:"label,fmt:%.1f"`
}

// Velocity represents an entity's velocity in units per second.
type Velocity struct {
	X, Y float64 `inspect:"label,fmt:%.1f"`
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// PositionOf converts a vector to a Position.
func PositionOf(v r2.Vec) Position {
	return Position{X: v.X, Y: v.Y}
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// VelocityOf converts a vector to a Velocity.
func VelocityOf(v r2.Vec) Velocity {
	return Velocity{X: v.X, Y: v.Y}
}
