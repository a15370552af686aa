package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/physics"
)

// BodyReader reads body state without changing it.
type BodyReader interface {
	Body(h physics.Handle) (physics.BodySnapshot, bool)
}

// BodySyncSystem copies body poses into the Position and Velocity
// components so rendering and telemetry can treat every entity alike.
type BodySyncSystem struct {
	filter *ecs.Filter3[components.Body, components.Position, components.Velocity]
}

// NewBodySyncSystem creates a body sync system.
func NewBodySyncSystem(w *ecs.World) *BodySyncSystem {
	return &BodySyncSystem{
		filter: ecs.NewFilter3[components.Body, components.Position, components.Velocity](w),
	}
}

// Update syncs every physics entity and returns how many bodies were
// unresolved. Unresolved entities keep their last synced state.
func (s *BodySyncSystem) Update(bodies BodyReader) int {
	stale := 0
	query := s.filter.Query()
	for query.Next() {
		body, pos, vel := query.Get()
		snap, ok := bodies.Body(body.Handle)
		if !ok {
			stale++
			continue
		}
		*pos = components.PositionOf(snap.Pose.Position)
		*vel = components.VelocityOf(snap.Velocity)
		body.Asleep = snap.Asleep
	}
	return stale
}
