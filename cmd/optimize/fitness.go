package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/ecosystem"
	"github.com/pthm-cable/biome/telemetry"
)

// FitnessEvaluator runs simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	configPath  string
	statsWindow int

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Every run loads a fresh
// config from configPath so concurrent runs never share species pointers.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		configPath:  configPath,
		statsWindow: 250,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A category below minViablePop for extinctionGraceTicks consecutive ticks
// counts as functionally extinct.
const (
	minViablePop         = 3
	extinctionGraceTicks = 500
	warmupTicks          = 100
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer coexistence = lower fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	type seedResult struct {
		fitness float64
		quality float64
	}

	// Each seed runs its own ecosystem; nothing is shared between goroutines.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: computeFitness(result.survivalTicks, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single run until functional extinction of any
// category or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	result := &runResult{}

	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return result
	}
	fe.params.ApplyToConfig(cfg, x)

	eco, err := ecosystem.NewWithOptions(cfg, rand.New(rand.NewSource(seed)), ecosystem.Options{
		StatsWindow: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}

	var below [components.NumKinds]int
	for eco.Ticks() < fe.maxTicks {
		eco.Tick()

		tick := eco.Ticks()
		if tick < warmupTicks {
			continue
		}

		series := eco.Statistics()
		last := series.Len() - 1
		counts := [components.NumKinds]int{
			components.KindPlant:     series.Plants[last],
			components.KindHerbivore: series.Herbivores[last],
			components.KindCarnivore: series.Carnivores[last],
		}

		for k, n := range counts {
			// Hard extinction
			if n == 0 {
				result.survivalTicks = tick
				return result
			}
			if n < minViablePop {
				below[k]++
			} else {
				below[k] = 0
			}
			if below[k] >= extinctionGraceTicks {
				result.survivalTicks = tick
				return result
			}
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality separates runs with similar survival.
func computeFitness(survivalTicks int, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightHunting   = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows where any category < this

	targetPreyRatio = 5.0  // herbivores per carnivore
	targetEnergyP50 = 60.0 // median animal energy
)

// computeQuality computes ecosystem quality in [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var ratioSum, energySum, huntSum float64
	var valid int
	herbCounts := make([]float64, 0, len(windows))
	carnCounts := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Plants < qualityMinPop || w.Herbivores < qualityMinPop || w.Carnivores < qualityMinPop {
			continue
		}
		valid++
		herbCounts = append(herbCounts, float64(w.Herbivores))
		carnCounts = append(carnCounts, float64(w.Carnivores))

		// 1. Population ratio score
		logErr := math.Log(float64(w.Herbivores) / float64(w.Carnivores) / targetPreyRatio)
		ratioSum += math.Exp(-logErr * logErr)

		// 3. Energy health score
		herbH := math.Exp(-math.Pow((w.HerbivoreEnergyP50-targetEnergyP50)/20, 2))
		carnH := math.Exp(-math.Pow((w.CarnivoreEnergyP50-targetEnergyP50)/20, 2))
		energySum += (herbH + carnH) / 2

		// 4. Hunting activity: kills per carnivore in the window
		killsPerPred := float64(w.HerbivoresEaten) / float64(w.Carnivores)
		huntSum += 1 - math.Exp(-killsPerPred/3)
	}

	if valid == 0 {
		return 0
	}
	n := float64(valid)

	// 2. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if valid >= 2 {
		cvHerb, cvCarn := cv(herbCounts), cv(carnCounts)
		stabilityScore = math.Exp(-(cvHerb*cvHerb + cvCarn*cvCarn))
	}

	quality := qualityWeightRatio*ratioSum/n +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightHunting*huntSum/n

	return min(max(quality, 0), 1)
}

// cv computes the coefficient of variation (std/mean).
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
