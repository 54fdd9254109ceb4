package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/telemetry"
)

func TestOrganismUpdatePlant(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, "Grass", 100, 560)
	f.spawn(t, "Grass", 110, 560)
	v := f.store.Vitals(a)
	v.Energy = 50
	v.ReproCooldown = 3

	partner := f.organisms.Update(a, f.live)

	assert.Zero(t, partner)
	pos, v, _ := f.store.Get(a)
	assert.Equal(t, components.Position{X: 100, Y: 560}, *pos, "plants never move")
	assert.Equal(t, 1, v.Age)
	assert.Equal(t, 2, v.ReproCooldown)
	// spring gain 1.08, consumption 0.08, one competitor at 0.1
	assert.InDelta(t, 50+1.08-0.08-0.1, v.Energy, 1e-9)
	assert.Equal(t, 100.0, v.Health)
}

func TestOrganismUpdateAnimalPairsAndMoves(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, "Rabbit", 100, 540)
	b := f.spawn(t, "Rabbit", 110, 540)

	partner := f.organisms.Update(a, f.live)

	assert.Equal(t, f.id(b), partner)
	assert.True(t, f.pairing.Paired(f.id(a)))

	pos := f.store.Position(a)
	assert.InDelta(t, 100, pos.X, 2)
	assert.InDelta(t, 540, pos.Y, 1)
	assert.InDelta(t, 100-0.3, f.store.Vitals(a).Energy, 1e-9)
}

func TestOrganismCooldownFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	e := f.spawn(t, "Wolf", 100, 560)

	f.organisms.Update(e, f.live)
	assert.Zero(t, f.store.Vitals(e).ReproCooldown)
}

func TestOrganismUpdateKeepsInvariants(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10; i++ {
		f.spawn(t, "Grass", float64(i*20), 560)
		f.spawn(t, "Deer", float64(i*20), 540)
	}

	bounds := f.cfg.Derived.Bounds
	for tick := 0; tick < 300; tick++ {
		f.env.Update(f.rng)
		for _, e := range f.live {
			f.organisms.Update(e, f.live)

			pos, v, org := f.store.Get(e)
			require.GreaterOrEqual(t, v.Energy, 0.0)
			require.LessOrEqual(t, v.Energy, 100.0)
			require.GreaterOrEqual(t, v.Health, 0.0)
			require.LessOrEqual(t, v.Health, 100.0)
			if !org.Diet().IsPlant() {
				require.GreaterOrEqual(t, pos.X, 0.0)
				require.LessOrEqual(t, pos.X, bounds.Width)
				require.GreaterOrEqual(t, pos.Y, bounds.Ground-f.cfg.Organism.HopHeight)
				require.LessOrEqual(t, pos.Y, bounds.Ground)
			}
		}
	}
}

func TestMoveClamps(t *testing.T) {
	f := newFixture(t)
	bounds := f.cfg.Derived.Bounds

	pos := components.Position{X: 0, Y: bounds.Ground}
	for i := 0; i < 1000; i++ {
		Move(&pos, 50, f.cfg.Organism, bounds, f.rng)
		require.GreaterOrEqual(t, pos.X, 0.0)
		require.LessOrEqual(t, pos.X, bounds.Width)
		require.GreaterOrEqual(t, pos.Y, bounds.Ground-50)
		require.LessOrEqual(t, pos.Y, bounds.Ground)
	}
}

func TestClampToBounds(t *testing.T) {
	bounds := newFixture(t).cfg.Derived.Bounds
	got := ClampToBounds(components.Position{X: -10, Y: 5000}, bounds)
	assert.Equal(t, components.Position{X: 0, Y: bounds.Height}, got)
}

func TestStoreSpawnAndRemove(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, "Wolf", 1, 2)
	b := f.spawn(t, "Wolf", 3, 4)
	idA, idB := f.id(a), f.id(b)

	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, f.store.Len())
	assert.InDelta(t, 25.0, f.store.Body(a).Radius, 1e-9)

	f.store.Remove(a)
	assert.False(t, f.store.Alive(a))
	_, ok := f.store.Entity(idA)
	assert.False(t, ok)
	got, ok := f.store.Entity(idB)
	require.True(t, ok)
	assert.Equal(t, b, got)
	assert.Equal(t, 1, f.store.Len())

	count := 0
	f.store.Each(func(v *components.Vitals, org *components.Organism) { count++ })
	assert.Equal(t, 1, count)
}

func TestRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()
	assert.Equal(t, telemetry.Phases, reg.IDs())
	assert.Equal(t, "Predation", reg.GetName(telemetry.PhasePredation))
	assert.Equal(t, "unknown", reg.GetName("unknown"))
}
