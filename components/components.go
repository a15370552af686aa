// Package components defines ECS components for the arena.
package components

import (
	"github.com/pthm-cable/arena/movement"
)

// Player tags entities driven by the keyboard.
type Player struct{}

// Name is the display and telemetry name of an entity.
type Name struct {
	Value string `inspect:"label"`
}

// Motion holds the per-frame movement state.
type Motion struct {
	Direction movement.Direction `inspect:"label"`
	Speed     float64            `inspect:"label,fmt:%.1f"`
}

// Controls holds the fixed configuration of a controlled entity.
// It never changes after the entity is created.
type Controls struct {
	Strategy movement.Strategy `inspect:"label"`
	Bindings movement.Bindings `inspect:"skip"`
	Tuning   movement.Tuning   `inspect:"skip"`
}

// Appearance holds render-only data.
type Appearance struct {
	Size    float64 `inspect:"label,fmt:%.0f"`
	R, G, B uint8   `inspect:"skip"`
}
