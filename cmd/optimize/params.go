package main

import (
	"github.com/pthm-cable/biome/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	get func(cfg *config.Config) float64
	set func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// populationParam tunes the initial count of one species.
func populationParam(species string, min, max, def float64) ParamSpec {
	return ParamSpec{
		Name: "pop_" + species, Path: "population." + species,
		Min: min, Max: max, Default: def,
		get: func(cfg *config.Config) float64 {
			for _, e := range cfg.Population {
				if e.Species == species {
					return float64(e.Count)
				}
			}
			return 0
		},
		set: func(cfg *config.Config, v float64) {
			n := int(v + 0.5)
			for i := range cfg.Population {
				if cfg.Population[i].Species == species {
					cfg.Population[i].Count = n
					return
				}
			}
			cfg.Population = append(cfg.Population, config.PopulationEntry{Species: species, Count: n})
		},
	}
}

// reproductionRateParam tunes the per-tick reproduction probability of one species.
func reproductionRateParam(species string, min, max, def float64) ParamSpec {
	return ParamSpec{
		Name: "repro_rate_" + species, Path: "species." + species + ".reproduction_rate",
		Min: min, Max: max, Default: def,
		get: func(cfg *config.Config) float64 {
			if sp, ok := cfg.Species[species]; ok {
				return sp.ReproductionRate
			}
			return 0
		},
		set: func(cfg *config.Config, v float64) {
			if sp, ok := cfg.Species[species]; ok {
				sp.ReproductionRate = v
			}
		},
	}
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Initial population
			populationParam("Tree", 10, 120, 50),
			populationParam("Grass", 20, 250, 100),
			populationParam("Rabbit", 2, 60, 15),
			populationParam("Deer", 2, 40, 8),
			populationParam("Wolf", 1, 20, 3),
			// Reproduction
			reproductionRateParam("Rabbit", 0.001, 0.05, 0.006),
			reproductionRateParam("Wolf", 0.0005, 0.02, 0.003),
			{
				Name: "repro_cost", Path: "reproduction.cost", Min: 10, Max: 50, Default: 30,
				get: func(cfg *config.Config) float64 { return cfg.Reproduction.Cost },
				set: func(cfg *config.Config, v float64) { cfg.Reproduction.Cost = v },
			},
			{
				Name: "repro_cooldown", Path: "reproduction.cooldown", Min: 10, Max: 200, Default: 50,
				get: func(cfg *config.Config) float64 { return float64(cfg.Reproduction.Cooldown) },
				set: func(cfg *config.Config, v float64) { cfg.Reproduction.Cooldown = int(v + 0.5) },
			},
			// Predation
			{
				Name: "predation_gain", Path: "predation.energy_gain", Min: 10, Max: 60, Default: 30,
				get: func(cfg *config.Config) float64 { return cfg.Predation.EnergyGain },
				set: func(cfg *config.Config, v float64) { cfg.Predation.EnergyGain = v },
			},
			// Flora
			{
				Name: "competition_penalty", Path: "organism.competition_penalty", Min: 0.01, Max: 0.5, Default: 0.1,
				get: func(cfg *config.Config) float64 { return cfg.Organism.CompetitionPenalty },
				set: func(cfg *config.Config, v float64) { cfg.Organism.CompetitionPenalty = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
