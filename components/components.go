// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/biome/config"

// Kind is the statistics category derived from an organism's diet.
type Kind uint8

const (
	KindPlant Kind = iota
	KindHerbivore
	KindCarnivore
	NumKinds
)

// KindOf maps a diet onto its statistics category. Anything that is neither
// plant nor herbivore counts as a carnivore.
func KindOf(d config.Diet) Kind {
	switch d {
	case config.DietPlant:
		return KindPlant
	case config.DietHerbivore:
		return KindHerbivore
	}
	return KindCarnivore
}

// String returns the plural series name used by statistics and CSV output.
func (k Kind) String() string {
	switch k {
	case KindPlant:
		return "plants"
	case KindHerbivore:
		return "herbivores"
	}
	return "carnivores"
}
