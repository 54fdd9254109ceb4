package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
)

// Meal records one predation event.
type Meal struct {
	Predator     uint32
	Prey         uint32
	PredatorKind components.Kind
	PreyKind     components.Kind
	Gain         float64 // energy actually added to the predator
}

// FeedingSystem resolves predation over the live set once per tick.
type FeedingSystem struct {
	store      *Store
	grid       *SpatialGrid
	radius     float64
	energyGain float64
	maxEnergy  float64

	neighbors []Neighbor
}

// NewFeedingSystem creates a feeding system for the given world bounds.
func NewFeedingSystem(store *Store, cfg *config.Config) *FeedingSystem {
	b := cfg.Derived.Bounds
	return &FeedingSystem{
		store:      store,
		grid:       NewSpatialGrid(b.Width, b.Height, cfg.Predation.GridCellSize),
		radius:     cfg.Predation.Radius,
		energyGain: cfg.Predation.EnergyGain,
		maxEnergy:  cfg.Organism.MaxEnergy,
	}
}

// Update lets every non-plant in live eat at most one prey: its nearest
// valid prey, ties broken by live order, if strictly within the radius.
// remove is called for each eaten prey before the next predator is
// processed; an eaten organism neither hunts nor is hunted afterwards.
func (s *FeedingSystem) Update(live []ecs.Entity, remove func(ecs.Entity)) []Meal {
	// Positions do not change during predation, so the grid is built once.
	s.grid.Clear()
	for i, e := range live {
		s.grid.Insert(e, i, *s.store.Position(e))
	}

	// remove may alter the live slice; iterate a copy.
	order := make([]ecs.Entity, len(live))
	copy(order, live)

	var meals []Meal
	for _, e := range order {
		if !s.store.Alive(e) {
			continue
		}
		pred := s.store.Organism(e)
		if pred.Diet().IsPlant() {
			continue
		}

		prey, ok := s.nearestPrey(e, pred.Diet())
		if !ok {
			continue
		}

		preyOrg := s.store.Organism(prey)
		meal := Meal{
			Predator:     pred.ID,
			Prey:         preyOrg.ID,
			PredatorKind: pred.Kind(),
			PreyKind:     preyOrg.Kind(),
		}

		v := s.store.Vitals(e)
		before := v.Energy
		v.Energy = math.Min(s.maxEnergy, v.Energy+s.energyGain)
		meal.Gain = v.Energy - before

		remove(prey)
		meals = append(meals, meal)
	}
	return meals
}

// nearestPrey finds the closest live organism that diet may eat.
func (s *FeedingSystem) nearestPrey(e ecs.Entity, diet config.Diet) (ecs.Entity, bool) {
	pos := *s.store.Position(e)
	s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos, s.radius, e)

	best := -1
	for i, n := range s.neighbors {
		if !s.store.Alive(n.E) {
			continue
		}
		if !diet.Eats(s.store.Organism(n.E).Diet()) {
			continue
		}
		if best < 0 || n.Dist < s.neighbors[best].Dist ||
			(n.Dist == s.neighbors[best].Dist && n.Order < s.neighbors[best].Order) {
			best = i
		}
	}
	if best < 0 {
		return ecs.Entity{}, false
	}
	return s.neighbors[best].E, true
}
