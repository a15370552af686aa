// Package systems contains ECS systems for the arena.
package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/input"
	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/physics"
)

// MoveResult reports what one entity did during a frame.
type MoveResult struct {
	Entity    ecs.Entity
	Name      string
	Strategy  movement.Strategy
	Direction movement.Direction
	Speed     float64
	Position  r2.Vec // integrated position (direct entities only)
	Velocity  r2.Vec // last commanded velocity (physics entities only)
	Outcome   movement.Outcome
	Skipped   bool // body handle did not resolve; nothing was updated
	Rejected  int  // commands the engine refused after the handle resolved
}

// MovementSystem runs the movement pipeline for every controlled entity.
// Entities are independent, so iteration order does not matter.
type MovementSystem struct {
	direct  *ecs.Filter4[components.Controls, components.Motion, components.Position, components.Name]
	bodies  *ecs.Filter4[components.Controls, components.Motion, components.Body, components.Name]
	results []MoveResult
}

// NewMovementSystem creates a movement system.
func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		direct: ecs.NewFilter4[components.Controls, components.Motion, components.Position, components.Name](w).
			With(ecs.C[components.Player]()).
			Without(ecs.C[components.Body]()),
		bodies: ecs.NewFilter4[components.Controls, components.Motion, components.Body, components.Name](w).
			With(ecs.C[components.Player]()),
	}
}

// Update advances every controlled entity by one frame. Commands for
// physics bodies go through phys. The returned slice is reused by the
// next call.
func (s *MovementSystem) Update(keys input.Keyboard, dt float64, phys physics.Commander) []MoveResult {
	s.results = s.results[:0]

	query := s.direct.Query()
	for query.Next() {
		ctl, mot, pos, name := query.Get()
		mv := components.MoverOf(ctl, mot, pos)
		mv, _, out := movement.Step(mv, keys, dt)
		components.StoreMover(mv, mot, pos)
		if out.Reset {
			slog.Debug("reset", "entity", name.Value, "strategy", mv.Strategy.String())
		}

		s.results = append(s.results, MoveResult{
			Entity:    query.Entity(),
			Name:      name.Value,
			Strategy:  mv.Strategy,
			Direction: mv.Direction,
			Speed:     mv.Speed,
			Position:  mv.Position,
			Outcome:   out,
		})
	}

	bq := s.bodies.Query()
	for bq.Next() {
		ctl, mot, body, name := bq.Get()
		res := MoveResult{
			Entity:    bq.Entity(),
			Name:      name.Value,
			Strategy:  ctl.Strategy,
			Direction: mot.Direction,
			Speed:     mot.Speed,
		}

		// A missing body is not an error: it may not be registered yet or
		// may already be gone. Skip the whole update and try next frame.
		if phys == nil || !phys.Resolve(body.Handle) {
			res.Skipped = true
			s.results = append(s.results, res)
			slog.Debug("body unresolved, skipping update", "entity", name.Value)
			continue
		}

		mv := components.MoverOf(ctl, mot, nil)
		mv, cmds, out := movement.Step(mv, keys, dt)
		components.StoreMover(mv, mot, nil)

		for _, cmd := range cmds {
			if !physics.Apply(phys, body.Handle, cmd) {
				res.Rejected++
				continue
			}
			if cmd.Kind == physics.SetLinearVelocity {
				res.Velocity = cmd.Velocity
			}
		}
		if out.Reset {
			slog.Debug("reset", "entity", name.Value, "strategy", ctl.Strategy.String())
		}

		res.Direction = mv.Direction
		res.Speed = mv.Speed
		res.Outcome = out
		s.results = append(s.results, res)
	}

	return s.results
}
