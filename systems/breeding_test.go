package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name     string
		species  string
		energy   float64
		health   float64
		cooldown int
		want     bool
	}{
		{"plant ok", "Grass", 61, 51, 0, true},
		{"plant energy at gate", "Grass", 60, 100, 0, false},
		{"plant health at gate", "Grass", 100, 50, 0, false},
		{"plant cooling down", "Grass", 100, 100, 1, false},
		{"animal ok", "Rabbit", 71, 61, 0, true},
		{"animal energy at gate", "Rabbit", 70, 100, 0, false},
		{"animal health at gate", "Rabbit", 100, 60, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			e := f.spawn(t, tt.species, 100, 560)
			v := f.store.Vitals(e)
			v.Energy, v.Health, v.ReproCooldown = tt.energy, tt.health, tt.cooldown
			assert.Equal(t, tt.want, f.breeding.Eligible(e))
		})
	}
}

func TestCanReproduceNeedsPartnerForAnimals(t *testing.T) {
	f := newFixture(t)
	f.cfg.Species["Rabbit"].ReproductionRate = 1
	a := f.spawn(t, "Rabbit", 100, 560)
	b := f.spawn(t, "Rabbit", 110, 560)

	assert.False(t, f.breeding.CanReproduce(a))
	require.NoError(t, f.pairing.Link(f.id(a), f.id(b)))
	assert.True(t, f.breeding.CanReproduce(a))
}

func TestCanReproduceRate(t *testing.T) {
	f := newFixture(t)
	f.cfg.Species["Grass"].ReproductionRate = 0
	e := f.spawn(t, "Grass", 100, 560)
	for i := 0; i < 100; i++ {
		require.False(t, f.breeding.CanReproduce(e))
	}
}

func TestPlantReproduceCost(t *testing.T) {
	f := newFixture(t)
	f.cfg.Species["Grass"].ReproductionRate = 1
	e := f.spawn(t, "Grass", 100, 560)
	f.store.Vitals(e).Energy = 80

	child, ok := f.breeding.Reproduce(e)
	require.True(t, ok)

	v := f.store.Vitals(e)
	assert.InDelta(t, 50.0, v.Energy, 1e-9)
	assert.Equal(t, 50, v.ReproCooldown)

	assert.Same(t, f.cfg.Species["Grass"], child.Species)
	assert.Equal(t, [2]uint32{f.id(e), 0}, child.Parents)
	assert.InDelta(t, 100, child.Position.X, 20)
	assert.InDelta(t, 560, child.Position.Y, 20)

	// cooling down now
	_, ok = f.breeding.Reproduce(e)
	assert.False(t, ok)
}

func TestAnimalReproduceCost(t *testing.T) {
	f := newFixture(t)
	f.cfg.Species["Deer"].ReproductionRate = 1
	a := f.spawn(t, "Deer", 100, 560)
	b := f.spawn(t, "Deer", 120, 560)
	require.NoError(t, f.pairing.Link(f.id(a), f.id(b)))
	f.store.Vitals(a).Energy = 90
	f.store.Vitals(b).Energy = 80

	child, ok := f.breeding.Reproduce(a)
	require.True(t, ok)

	va, vb := f.store.Vitals(a), f.store.Vitals(b)
	assert.InDelta(t, 60.0, va.Energy, 1e-9)
	assert.InDelta(t, 50.0, vb.Energy, 1e-9)
	assert.Equal(t, 50, va.ReproCooldown)
	assert.Equal(t, 50, vb.ReproCooldown)
	assert.False(t, f.pairing.Paired(f.id(a)))
	assert.False(t, f.pairing.Paired(f.id(b)))
	assert.Equal(t, [2]uint32{f.id(a), f.id(b)}, child.Parents)
	assert.InDelta(t, 100, child.Position.X, 20)
}

func TestAnimalReproduceNeedsEligiblePartner(t *testing.T) {
	f := newFixture(t)
	f.cfg.Species["Deer"].ReproductionRate = 1
	a := f.spawn(t, "Deer", 100, 560)
	b := f.spawn(t, "Deer", 120, 560)
	require.NoError(t, f.pairing.Link(f.id(a), f.id(b)))
	f.store.Vitals(b).Energy = 65

	_, ok := f.breeding.Reproduce(a)
	assert.False(t, ok)
	assert.Equal(t, 100.0, f.store.Vitals(a).Energy)
	assert.True(t, f.pairing.Paired(f.id(a)))
}

func TestFindPartnerFirstMatchInOrder(t *testing.T) {
	f := newFixture(t)
	self := f.spawn(t, "Rabbit", 100, 560)
	wrongSpecies := f.spawn(t, "Deer", 101, 560)
	far := f.spawn(t, "Rabbit", 140, 560) // exactly on the radius
	tired := f.spawn(t, "Rabbit", 102, 560)
	f.store.Vitals(tired).Energy = 50
	first := f.spawn(t, "Rabbit", 130, 560)
	nearest := f.spawn(t, "Rabbit", 103, 560)

	got := f.breeding.FindPartner(self, f.live)
	assert.Equal(t, f.id(first), got)
	assert.True(t, f.pairing.Paired(f.id(first)))
	assert.False(t, f.pairing.Paired(f.id(wrongSpecies)))
	assert.False(t, f.pairing.Paired(f.id(far)))
	assert.False(t, f.pairing.Paired(f.id(nearest)))

	// already partnered: no second search
	assert.Zero(t, f.breeding.FindPartner(self, f.live))
	// self is taken, so nearest finds nobody among the first two
	assert.Zero(t, f.breeding.FindPartner(nearest, f.live[:2]))
}

func TestFindPartnerSkipsPlants(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, "Grass", 100, 560)
	f.spawn(t, "Grass", 101, 560)
	assert.Zero(t, f.breeding.FindPartner(a, f.live))
	assert.Zero(t, f.pairing.Len())
}
