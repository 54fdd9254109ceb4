package components

import (
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/traits"
)

// Vitals tracks an organism's metabolic state.
// Energy and Health live in [0, 100]; Age counts ticks alive.
type Vitals struct {
	Energy        float64
	Health        float64
	Age           int
	ReproCooldown int // ticks until reproduction is allowed again
}

// Dead reports whether the organism has run out of energy or health.
func (v *Vitals) Dead() bool {
	return v.Energy <= 0 || v.Health <= 0
}

// Organism bundles identity, species and genome.
// Partnerships are held outside the component, keyed by ID.
type Organism struct {
	ID       uint32
	Species  *config.Species
	Genetics traits.Genetics
}

// Diet returns the species diet.
func (o *Organism) Diet() config.Diet {
	return o.Species.Diet
}

// Kind returns the statistics category of the organism.
func (o *Organism) Kind() Kind {
	return KindOf(o.Species.Diet)
}
