package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/telemetry"
)

func TestParamDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	assert.InDeltaSlice(t, pv.DefaultVector(), pv.ExtractFromConfig(config.Default()), 1e-9)
}

func TestParamNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	assert.InDeltaSlice(t, def, pv.Denormalize(pv.Normalize(def)), 1e-9)
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := pv.DefaultVector()
	values[0] = 1e6 // Tree count far above range
	values[4] = -5  // Wolf count below range
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	assert.Equal(t, pv.Specs[0].Max, got[0])
	assert.Equal(t, pv.Specs[4].Min, got[4])
	require.Len(t, cfg.Population, 5, "existing entries are updated in place")
}

func TestComputeQuality(t *testing.T) {
	window := telemetry.WindowStats{
		Plants:             100,
		Herbivores:         25,
		Carnivores:         5,
		HerbivoreEnergyP50: 60,
		CarnivoreEnergyP50: 60,
		HerbivoresEaten:    15,
	}
	steady := make([]telemetry.WindowStats, 10)
	for i := range steady {
		steady[i] = window
	}

	q := computeQuality(steady)
	assert.Greater(t, q, 0.8)
	assert.LessOrEqual(t, q, 1.0)

	assert.Zero(t, computeQuality(steady[:3]), "warmup windows only")

	extinct := make([]telemetry.WindowStats, 10)
	copy(extinct, steady)
	for i := 3; i < len(extinct); i++ {
		extinct[i].Carnivores = 0
	}
	assert.Zero(t, computeQuality(extinct))
}

func TestComputeFitnessPrefersSurvival(t *testing.T) {
	assert.Less(t, computeFitness(2000, 0), computeFitness(1000, 1))
	assert.Less(t, computeFitness(1000, 1), computeFitness(1000, 0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1m05s", formatDuration(65e9))
	assert.Equal(t, "1h00m01s", formatDuration(3601e9))
}
