package systems

// Phase IDs, in frame order. Perf tracking and the HUD share these.
const (
	PhaseInput     = "input"
	PhaseMovement  = "movement"
	PhasePhysics   = "physics"
	PhaseSync      = "sync"
	PhaseTelemetry = "telemetry"
)

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "physics")
}

// SystemRegistry holds metadata about all frame phases.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with the arena's phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.Register(SystemInfo{ID: PhaseInput, Name: "Input", Description: "Polls the keyboard", Category: "core"})
	reg.Register(SystemInfo{ID: PhaseMovement, Name: "Movement", Description: "Resolves direction, speed and reset", Category: "core"})
	reg.Register(SystemInfo{ID: PhasePhysics, Name: "Physics", Description: "Steps the body engine", Category: "physics"})
	reg.Register(SystemInfo{ID: PhaseSync, Name: "Body Sync", Description: "Copies body poses to components", Category: "physics"})
	reg.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Records traces and stats", Category: "internal"})
	return reg
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.byID[info.ID] = info
	for i := range r.systems {
		if r.systems[i].ID == info.ID {
			r.systems[i] = info
			return
		}
	}
	r.systems = append(r.systems, info)
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
