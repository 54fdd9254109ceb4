package systems

import (
	"math/rand"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
)

// Move applies one random step to an animal. Plants never call it.
// The horizontal step is uniform in [-speed, speed] and the vertical in
// [-speed/2, speed/2]; y stays in the hop band above the ground line and x
// stays within the world width.
func Move(pos *components.Position, speed float64, cfg config.OrganismConfig, bounds config.Bounds, rng *rand.Rand) {
	pos.X += jitter(rng, speed)
	y := pos.Y + jitter(rng, speed/2)

	pos.Y = clampFloat(y, bounds.Ground-cfg.HopHeight, bounds.Ground)
	pos.X = clampFloat(pos.X, 0, bounds.Width)
}

// ClampToBounds keeps a spawn position inside the world rectangle.
func ClampToBounds(pos components.Position, bounds config.Bounds) components.Position {
	return components.Position{
		X: clampFloat(pos.X, 0, bounds.Width),
		Y: clampFloat(pos.Y, 0, bounds.Height),
	}
}
