package systems

import "math/rand"

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// jitter draws from [-r, r).
func jitter(rng *rand.Rand, r float64) float64 {
	return uniform(rng, -r, r)
}

// bernoulli returns true with probability p.
func bernoulli(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
