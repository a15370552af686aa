package ui

import "github.com/pthm-cable/arena/input"

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGrid      OverlayID = "grid"
	OverlayVelocity  OverlayID = "velocity"
	OverlayPerf      OverlayID = "perf"
	OverlayInspector OverlayID = "inspector"
	OverlayHelp      OverlayID = "help"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         input.Key // toggle key (KeyNone = no key)
	Category    string
	Default     bool // enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]int
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
// The toggle keys match config.ReservedKeys so they never steer a player.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]int),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Grid",
		Description: "Arena grid and origin axes",
		Key:         input.KeyF1,
		Category:    "visual",
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayVelocity,
		Name:        "Velocity",
		Description: "Velocity vector of each player",
		Key:         input.KeyF2,
		Category:    "visual",
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-phase frame timings",
		Key:         input.KeyF3,
		Category:    "debug",
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayInspector,
		Name:        "Inspector",
		Description: "Components of the clicked player",
		Key:         input.KeyF4,
		Category:    "debug",
		Default:     true,
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayHelp,
		Name:        "Help",
		Description: "Key bindings and overlay list",
		Key:         input.KeyF5,
		Category:    "debug",
	})
	return reg
}

// Register adds an overlay, replacing any existing one with the same ID.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.byID[desc.ID]; ok {
		r.descriptors[i] = desc
	} else {
		r.byID[desc.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, desc)
	}
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every overlay whose key was pressed this frame.
// It returns the overlays that changed.
func (r *OverlayRegistry) HandleKeys(keys input.Keyboard) []OverlayID {
	var toggled []OverlayID
	for _, desc := range r.descriptors {
		if desc.Key != input.KeyNone && keys.JustPressed(desc.Key) {
			r.Toggle(desc.ID)
			toggled = append(toggled, desc.ID)
		}
	}
	return toggled
}
