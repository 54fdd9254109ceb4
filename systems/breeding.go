package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/traits"
)

// Offspring describes a newborn that the caller still has to spawn.
type Offspring struct {
	Species  *config.Species
	Position components.Position // unclamped; the spawn path clamps it
	Genetics traits.Genetics
	Parents  [2]uint32 // second parent is 0 for plants
}

// BreedingSystem handles pairing and reproduction.
type BreedingSystem struct {
	store   *Store
	pairing *Pairing
	repro   config.ReproductionConfig
	org     config.OrganismConfig
	rng     *rand.Rand

	genetics traits.Range
	mutation traits.Range
}

// NewBreedingSystem creates a new breeding system.
func NewBreedingSystem(store *Store, pairing *Pairing, cfg *config.Config, rng *rand.Rand) *BreedingSystem {
	return &BreedingSystem{
		store:    store,
		pairing:  pairing,
		repro:    cfg.Reproduction,
		org:      cfg.Organism,
		rng:      rng,
		genetics: traits.Range{Min: cfg.Organism.GeneticsMin, Max: cfg.Organism.GeneticsMax},
		mutation: traits.Range{Min: cfg.Organism.MutationMin, Max: cfg.Organism.MutationMax},
	}
}

// Eligible applies the fixed energy, health and cooldown gates for the
// organism's diet. It draws no randomness.
func (s *BreedingSystem) Eligible(e ecs.Entity) bool {
	v := s.store.Vitals(e)
	if v.ReproCooldown > 0 {
		return false
	}
	if s.store.Organism(e).Diet().IsPlant() {
		return v.Energy > s.repro.PlantEnergy && v.Health > s.repro.PlantHealth
	}
	return v.Energy > s.repro.AnimalEnergy && v.Health > s.repro.AnimalHealth
}

// CanReproduce checks the gates, the partner requirement for animals, and
// finally draws against the species reproduction rate.
func (s *BreedingSystem) CanReproduce(e ecs.Entity) bool {
	if !s.Eligible(e) {
		return false
	}
	org := s.store.Organism(e)
	if !org.Diet().IsPlant() && !s.pairing.Paired(org.ID) {
		return false
	}
	return bernoulli(s.rng, org.Species.ReproductionRate)
}

// FindPartner scans live in order and links e with the first unpartnered,
// eligible organism of the same species within the partner radius.
// It returns the partner ID, or 0 when no partnership formed.
func (s *BreedingSystem) FindPartner(e ecs.Entity, live []ecs.Entity) uint32 {
	org := s.store.Organism(e)
	if org.Diet().IsPlant() || s.pairing.Paired(org.ID) {
		return 0
	}
	pos := *s.store.Position(e)

	for _, other := range live {
		if other == e || !s.store.Alive(other) {
			continue
		}
		cand := s.store.Organism(other)
		if cand.Species != org.Species || s.pairing.Paired(cand.ID) {
			continue
		}
		if !s.Eligible(other) {
			continue
		}
		if pos.DistanceTo(*s.store.Position(other)) >= s.org.PartnerRadius {
			continue
		}
		if err := s.pairing.Link(org.ID, cand.ID); err != nil {
			// both sides were checked unpartnered above
			panic(err)
		}
		slog.Debug("paired", "species", org.Species.Name, "a", org.ID, "b", cand.ID)
		return cand.ID
	}
	return 0
}

// Reproduce attempts one reproduction for e. Plants reproduce alone; an
// animal reproduces only when it and its partner can both reproduce, after
// which the partnership is dissolved.
func (s *BreedingSystem) Reproduce(e ecs.Entity) (Offspring, bool) {
	org := s.store.Organism(e)
	if org.Diet().IsPlant() {
		if !s.CanReproduce(e) {
			return Offspring{}, false
		}
		s.pay(s.store.Vitals(e))
		return s.offspring(e, 0), true
	}

	partnerID, ok := s.pairing.Partner(org.ID)
	if !ok {
		return Offspring{}, false
	}
	partner, ok := s.store.Entity(partnerID)
	if !ok {
		return Offspring{}, false
	}
	if !s.CanReproduce(e) || !s.CanReproduce(partner) {
		return Offspring{}, false
	}

	s.pay(s.store.Vitals(e))
	s.pay(s.store.Vitals(partner))
	child := s.offspring(e, partnerID)
	s.pairing.Unlink(org.ID)
	return child, true
}

func (s *BreedingSystem) pay(v *components.Vitals) {
	v.Energy -= s.repro.Cost
	v.ReproCooldown = s.repro.Cooldown
}

// offspring places a child around e with freshly inherited genetics.
func (s *BreedingSystem) offspring(e ecs.Entity, partnerID uint32) Offspring {
	pos := *s.store.Position(e)
	org := s.store.Organism(e)

	spread := s.org.OffspringSpread
	childPos := components.Position{
		X: pos.X + jitter(s.rng, spread),
		Y: pos.Y + jitter(s.rng, spread),
	}
	return Offspring{
		Species:  org.Species,
		Position: childPos,
		Genetics: traits.Inherit(s.rng, org.Species.MutationChance, s.genetics, s.mutation),
		Parents:  [2]uint32{org.ID, partnerID},
	}
}
