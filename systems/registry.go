package systems

import "github.com/pthm-cable/biome/telemetry"

// SystemInfo describes a tick phase for logs and reports.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "lifecycle")
}

// SystemRegistry holds metadata about all tick phases.
// This centralizes naming so the loop and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases, in tick order.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases to the registry.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseEnvironment, Name: "Environment", Description: "Advances season, weather and climate factors", Category: "environment"})
	r.Register(SystemInfo{ID: telemetry.PhaseOrganisms, Name: "Organisms", Description: "Metabolism, health, competition, pairing, movement and reproduction", Category: "lifecycle"})
	r.Register(SystemInfo{ID: telemetry.PhasePredation, Name: "Predation", Description: "Predators eat their nearest prey", Category: "lifecycle"})
	r.Register(SystemInfo{ID: telemetry.PhaseStatistics, Name: "Statistics", Description: "Appends population samples", Category: "core"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
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

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
