package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/environment"
)

// OrganismSystem runs the per-tick behaviour of a single organism.
type OrganismSystem struct {
	store    *Store
	breeding *BreedingSystem
	env      *environment.Environment
	org      config.OrganismConfig
	bounds   config.Bounds
	rng      *rand.Rand
}

// NewOrganismSystem creates the organism update system. env is read, never written.
func NewOrganismSystem(store *Store, breeding *BreedingSystem, env *environment.Environment, cfg *config.Config, rng *rand.Rand) *OrganismSystem {
	return &OrganismSystem{
		store:    store,
		breeding: breeding,
		env:      env,
		org:      cfg.Organism,
		bounds:   cfg.Derived.Bounds,
		rng:      rng,
	}
}

// Update advances e by one tick against the current live set:
// age, energy, health, competition, partner search, movement, cooldown.
// It returns the ID of a partner found this tick, or 0.
func (s *OrganismSystem) Update(e ecs.Entity, live []ecs.Entity) uint32 {
	pos, v, org := s.store.Get(e)
	plant := org.Diet().IsPlant()

	v.Age++
	UpdateEnergy(v, org, s.env, s.org)
	UpdateHealth(v, org, s.env, s.org)

	if plant {
		ApplyCompetition(v, s.store.CountCompetitors(e, live), s.org.CompetitionPenalty)
	}

	partner := s.breeding.FindPartner(e, live)

	if !plant {
		Move(pos, org.Species.MoveSpeed(s.org.DefaultSpeed), s.org, s.bounds, s.rng)
	}

	if v.ReproCooldown > 0 {
		v.ReproCooldown--
	}
	return partner
}
