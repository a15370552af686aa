package components

import (
	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/physics"
)

// Body links an entity to its physics body. The handle is not owned and
// may go stale; resolve it through the engine before use.
type Body struct {
	Handle physics.Handle `inspect:"skip"`
	Size   float64        `inspect:"label,fmt:%.0f"`
	Asleep bool           `inspect:"bool"`
}

// MoverOf assembles the movement state for one entity.
// pos is only meaningful for direct entities.
func MoverOf(c *Controls, m *Motion, pos *Position) movement.Mover {
	mv := movement.Mover{
		Strategy:  c.Strategy,
		Bindings:  c.Bindings,
		Tuning:    c.Tuning,
		Direction: m.Direction,
		Speed:     m.Speed,
	}
	if c.Strategy == movement.Direct && pos != nil {
		mv.Position = pos.Vec()
	}
	return mv
}

// StoreMover writes the per-frame parts of mv back into the components.
// Controls are left untouched.
func StoreMover(mv movement.Mover, m *Motion, pos *Position) {
	m.Direction = mv.Direction
	m.Speed = mv.Speed
	if mv.Strategy == movement.Direct && pos != nil {
		*pos = PositionOf(mv.Position)
	}
}
