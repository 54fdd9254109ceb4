package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/environment"
	"github.com/pthm-cable/biome/traits"
)

func TestPlantGain(t *testing.T) {
	cfg := config.Default().Organism
	f := environment.Factors{Sunlight: 1, WaterLevel: 0.5, Humidity: 0.5}

	tests := []struct {
		season environment.Season
		want   float64
	}{
		{environment.Spring, 0.75 * 1.2},
		{environment.Summer, 0.75},
		{environment.Fall, 0.75 * 0.7},
		{environment.Winter, 0.75 * 0.3},
	}

	growth := config.Default().Environment.PlantGrowth
	for _, tt := range tests {
		t.Run(tt.season.String(), func(t *testing.T) {
			got := PlantGain(f, tt.season.Pick(growth), cfg)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestUpdateEnergy(t *testing.T) {
	cfg := config.Default()
	env := environment.New(cfg.Environment)
	grass := cfg.Species["Grass"]
	wolf := cfg.Species["Wolf"]

	t.Run("plant clamps at max", func(t *testing.T) {
		v := components.Vitals{Energy: 100, Health: 100}
		org := components.Organism{Species: grass, Genetics: neutral}
		UpdateEnergy(&v, &org, env, cfg.Organism)
		assert.Equal(t, 100.0, v.Energy)
	})

	t.Run("plant gains in spring", func(t *testing.T) {
		v := components.Vitals{Energy: 50, Health: 100}
		org := components.Organism{Species: grass, Genetics: neutral}
		UpdateEnergy(&v, &org, env, cfg.Organism)
		// sunlight 1, water 1, humidity 0.5 -> 0.9 * 1.2 - 0.08
		assert.InDelta(t, 50+0.9*1.2-0.08, v.Energy, 1e-9)
	})

	t.Run("animal pays consumption over efficiency", func(t *testing.T) {
		v := components.Vitals{Energy: 50, Health: 100}
		g := neutral
		g.EnergyEfficiency = 0.5
		org := components.Organism{Species: wolf, Genetics: g}
		UpdateEnergy(&v, &org, env, cfg.Organism)
		assert.InDelta(t, 49.0, v.Energy, 1e-9)
	})

	t.Run("animal floors at zero", func(t *testing.T) {
		v := components.Vitals{Energy: 0.1, Health: 100}
		org := components.Organism{Species: wolf, Genetics: neutral}
		UpdateEnergy(&v, &org, env, cfg.Organism)
		assert.Zero(t, v.Energy)
	})
}

func TestUpdateHealth(t *testing.T) {
	cfg := config.Default()
	env := environment.New(cfg.Environment) // 20 degrees
	wolf := cfg.Species["Wolf"]            // optimal 10

	tests := []struct {
		name      string
		tolerance float64
		energy    float64
		health    float64
		want      float64
	}{
		{"tolerant", 1.0, 50, 100, 100},
		{"intolerant", 0.8, 50, 100, 100 - 10*0.2*0.1},
		{"over tolerant never heals", 1.2, 50, 90, 90},
		{"low energy penalty", 1.0, 19, 100, 99},
		{"floors at zero", 0.8, 10, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := traits.Genetics{Size: 1, EnergyEfficiency: 1, TemperatureTolerance: tt.tolerance, ReproductionRate: 1}
			org := components.Organism{Species: wolf, Genetics: g}
			v := components.Vitals{Energy: tt.energy, Health: tt.health}
			UpdateHealth(&v, &org, env, cfg.Organism)
			assert.InDelta(t, tt.want, v.Health, 1e-9)
		})
	}
}

func TestCompetition(t *testing.T) {
	f := newFixture(t)
	// Grass competition radius is 30.
	a := f.spawn(t, "Grass", 100, 560)
	f.spawn(t, "Grass", 110, 560)
	f.spawn(t, "Tree", 129, 560)
	f.spawn(t, "Grass", 130, 560) // exactly on the radius, not counted
	f.spawn(t, "Rabbit", 105, 560)

	assert.Equal(t, 2, f.store.CountCompetitors(a, f.live))

	v := components.Vitals{Energy: 0.1}
	ApplyCompetition(&v, 2, 0.1)
	assert.Zero(t, v.Energy)
}
