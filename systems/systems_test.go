package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/environment"
	"github.com/pthm-cable/biome/traits"
)

// neutral genes: no temperature damage, unit efficiency.
var neutral = traits.Genetics{Size: 1, EnergyEfficiency: 1, TemperatureTolerance: 1, ReproductionRate: 1}

type fixture struct {
	cfg       *config.Config
	rng       *rand.Rand
	store     *Store
	pairing   *Pairing
	env       *environment.Environment
	breeding  *BreedingSystem
	organisms *OrganismSystem
	feeding   *FeedingSystem
	live      []ecs.Entity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	return newFixtureWith(t, cfg)
}

func newFixtureWith(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	require.NoError(t, cfg.Finalize())

	rng := rand.New(rand.NewSource(42))
	store := NewStore(ecs.NewWorld())
	pairing := NewPairing()
	env := environment.New(cfg.Environment)
	breeding := NewBreedingSystem(store, pairing, cfg, rng)
	return &fixture{
		cfg:       cfg,
		rng:       rng,
		store:     store,
		pairing:   pairing,
		env:       env,
		breeding:  breeding,
		organisms: NewOrganismSystem(store, breeding, env, cfg, rng),
		feeding:   NewFeedingSystem(store, cfg),
	}
}

// spawn adds a full-energy organism with neutral genes to the live order.
func (f *fixture) spawn(t *testing.T, species string, x, y float64) ecs.Entity {
	t.Helper()
	sp, err := f.cfg.Lookup(species)
	require.NoError(t, err)
	e, _ := f.store.Spawn(sp, components.Position{X: x, Y: y}, neutral, components.Vitals{Energy: 100, Health: 100})
	f.live = append(f.live, e)
	return e
}

func (f *fixture) remove(e ecs.Entity) {
	f.pairing.Unlink(f.store.Organism(e).ID)
	f.store.Remove(e)
}

func (f *fixture) id(e ecs.Entity) uint32 {
	return f.store.Organism(e).ID
}
