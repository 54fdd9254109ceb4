package ecosystem

import (
	"fmt"

	"github.com/pthm-cable/biome/systems"
)

// CheckInvariants verifies the state between ticks: every live organism has
// energy and health in range and the partner relation is symmetric,
// same-species and refers only to live organisms. A non-nil result wraps
// systems.ErrInvariant and indicates a defect.
func (e *Ecosystem) CheckInvariants() error {
	maxEnergy := e.cfg.Organism.MaxEnergy
	maxHealth := e.cfg.Organism.MaxHealth

	for _, ent := range e.live {
		if !e.store.Alive(ent) {
			return &systems.InvariantError{Kind: systems.InvariantDangling, Detail: "dead entity in live set"}
		}
		v, org := e.store.Vitals(ent), e.store.Organism(ent)
		if v.Energy < 0 || v.Energy > maxEnergy {
			return &systems.InvariantError{
				Kind:   systems.InvariantEnergyRange,
				ID:     org.ID,
				Detail: fmt.Sprintf("energy %.3f", v.Energy),
			}
		}
		if v.Health < 0 || v.Health > maxHealth {
			return &systems.InvariantError{
				Kind:   systems.InvariantHealthRange,
				ID:     org.ID,
				Detail: fmt.Sprintf("health %.3f", v.Health),
			}
		}
	}
	if len(e.live) != e.store.Len() {
		return &systems.InvariantError{
			Kind:   systems.InvariantDangling,
			Detail: fmt.Sprintf("live set has %d organisms, store has %d", len(e.live), e.store.Len()),
		}
	}

	return e.pairing.Check(func(id uint32) (string, bool) {
		ent, ok := e.store.Entity(id)
		if !ok || !e.store.Alive(ent) {
			return "", false
		}
		return e.store.Organism(ent).Species.Name, true
	})
}
