// Package traits defines the heritable multipliers carried by every organism.
package traits

import "math/rand"

// Range is a closed interval for uniform draws.
type Range struct {
	Min, Max float64
}

// Sample draws uniformly from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Genetics holds four independent multipliers centred on 1.0.
// Size is only read by presentation; the others scale behaviour.
type Genetics struct {
	Size                 float64
	EnergyEfficiency     float64
	TemperatureTolerance float64
	ReproductionRate     float64
}

// Random draws a fresh genome with every trait uniform in r.
func Random(rng *rand.Rand, r Range) Genetics {
	return Genetics{
		Size:                 r.Sample(rng),
		EnergyEfficiency:     r.Sample(rng),
		TemperatureTolerance: r.Sample(rng),
		ReproductionRate:     r.Sample(rng),
	}
}

// Mutate scales every trait by an independent draw from factor with
// probability chance. It reports whether a mutation happened.
func (g *Genetics) Mutate(rng *rand.Rand, chance float64, factor Range) bool {
	if rng.Float64() >= chance {
		return false
	}
	g.Size *= factor.Sample(rng)
	g.EnergyEfficiency *= factor.Sample(rng)
	g.TemperatureTolerance *= factor.Sample(rng)
	g.ReproductionRate *= factor.Sample(rng)
	return true
}

// Inherit draws an offspring genome: a fresh draw from base, then one
// mutation roll.
func Inherit(rng *rand.Rand, chance float64, base, factor Range) Genetics {
	g := Random(rng, base)
	g.Mutate(rng, chance, factor)
	return g
}
