package telemetry

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int
	Species   string
	ParentID  uint32

	Children int
	Kills    int
	Pairings int
}

// LifetimeTracker manages per-organism lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new organism.
func (lt *LifetimeTracker) Register(id uint32, birthTick int, species string, parentID uint32) {
	lt.stats[id] = &LifetimeStats{
		BirthTick: birthTick,
		Species:   species,
		ParentID:  parentID,
	}
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an organism's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// Record applies an event to the organisms it names.
func (lt *LifetimeTracker) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		lt.RecordChild(ev.TargetID)
	case EventKill:
		if s := lt.stats[ev.EntityID]; s != nil {
			s.Kills++
		}
	case EventPairing:
		for _, id := range []uint32{ev.EntityID, ev.TargetID} {
			if s := lt.stats[id]; s != nil {
				s.Pairings++
			}
		}
	}
}

// RecordChild increments the children count of a parent.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// Count returns the number of tracked organisms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
