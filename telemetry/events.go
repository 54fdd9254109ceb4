// Package telemetry provides population statistics, bookmarking, and CSV output.
package telemetry

import "github.com/pthm-cable/biome/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventKill
	EventPairing
)

// DeathCause records why an organism left the live set.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseStarvation
	CauseHealth
	CausePredation
)

func (c DeathCause) String() string {
	switch c {
	case CauseStarvation:
		return "starvation"
	case CauseHealth:
		return "health"
	case CausePredation:
		return "predation"
	}
	return "none"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int
	EntityID uint32
	Kind     components.Kind

	// Optional fields depending on event type
	TargetID uint32     // parent for births, prey for kills, partner for pairings
	Cause    DeathCause // deaths only
	Age      int        // age at death
}

// NewBirthEvent creates a birth event. parentID is 0 for initial spawns.
func NewBirthEvent(tick int, childID, parentID uint32, kind components.Kind) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Kind:     kind,
		TargetID: parentID,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int, entityID uint32, kind components.Kind, cause DeathCause, age int) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Kind:     kind,
		Cause:    cause,
		Age:      age,
	}
}

// NewKillEvent creates a kill event. Kind is the prey's kind.
func NewKillEvent(tick int, predatorID, preyID uint32, preyKind components.Kind) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: predatorID,
		Kind:     preyKind,
		TargetID: preyID,
	}
}

// NewPairingEvent creates a pairing event.
func NewPairingEvent(tick int, id, partnerID uint32, kind components.Kind) Event {
	return Event{
		Type:     EventPairing,
		Tick:     tick,
		EntityID: id,
		Kind:     kind,
		TargetID: partnerID,
	}
}
