package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
)

// CountCompetitors returns the number of other plants strictly within the
// species competition radius of e, using current positions.
func (s *Store) CountCompetitors(e ecs.Entity, live []ecs.Entity) int {
	pos := *s.Position(e)
	radius := s.Organism(e).Species.CompetitionRadius

	count := 0
	for _, other := range live {
		if other == e || !s.Alive(other) {
			continue
		}
		if !s.Organism(other).Diet().IsPlant() {
			continue
		}
		if pos.DistanceTo(*s.Position(other)) < radius {
			count++
		}
	}
	return count
}

// ApplyCompetition subtracts the crowding penalty for count neighbours.
func ApplyCompetition(v *components.Vitals, count int, penalty float64) {
	v.Energy = math.Max(0, v.Energy-penalty*float64(count))
}
