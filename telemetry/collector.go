package telemetry

import (
	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/environment"
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	births       [components.NumKinds]int
	deaths       [components.NumKinds]int
	eaten        [components.NumKinds]int
	starvations  int
	healthDeaths int
	pairings     int
	ageAtDeath   int
	agedDeaths   int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Record applies one event to the window counters.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		c.births[ev.Kind]++
	case EventKill:
		c.eaten[ev.Kind]++
	case EventPairing:
		c.pairings++
	case EventDeath:
		c.ageAtDeath += ev.Age
		c.agedDeaths++
		switch ev.Cause {
		case CauseStarvation:
			c.deaths[ev.Kind]++
			c.starvations++
		case CauseHealth:
			c.deaths[ev.Kind]++
			c.healthDeaths++
		}
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// Deaths by predation show up in PlantsEaten/HerbivoresEaten, not in the
// per-kind death counts.
func (c *Collector) Flush(currentTick int, env environment.Snapshot, pop Population) WindowStats {
	var meanAge float64
	if c.agedDeaths > 0 {
		meanAge = float64(c.ageAtDeath) / float64(c.agedDeaths)
	}

	plantMean, _, plantP50, _ := ComputeEnergyStats(pop.Energies[components.KindPlant])
	herbMean, herbP10, herbP50, herbP90 := ComputeEnergyStats(pop.Energies[components.KindHerbivore])
	carnMean, carnP10, carnP50, carnP90 := ComputeEnergyStats(pop.Energies[components.KindCarnivore])
	healthMean, healthStd := ComputeSpread(pop.Health)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Season:      env.Season.String(),
		Weather:     env.Weather.String(),
		Temperature: env.Factors.Temperature,
		Humidity:    env.Factors.Humidity,
		Sunlight:    env.Factors.Sunlight,
		WaterLevel:  env.Factors.WaterLevel,

		Plants:     pop.Counts[components.KindPlant],
		Herbivores: pop.Counts[components.KindHerbivore],
		Carnivores: pop.Counts[components.KindCarnivore],

		PlantBirths:     c.births[components.KindPlant],
		HerbivoreBirths: c.births[components.KindHerbivore],
		CarnivoreBirths: c.births[components.KindCarnivore],
		PlantDeaths:     c.deaths[components.KindPlant],
		HerbivoreDeaths: c.deaths[components.KindHerbivore],
		CarnivoreDeaths: c.deaths[components.KindCarnivore],
		Starvations:     c.starvations,
		HealthDeaths:    c.healthDeaths,
		PlantsEaten:     c.eaten[components.KindPlant],
		HerbivoresEaten: c.eaten[components.KindHerbivore],
		Pairings:        c.pairings,

		MeanAgeAtDeath: meanAge,

		PlantEnergyMean: plantMean,
		PlantEnergyP50:  plantP50,

		HerbivoreEnergyMean: herbMean,
		HerbivoreEnergyP10:  herbP10,
		HerbivoreEnergyP50:  herbP50,
		HerbivoreEnergyP90:  herbP90,

		CarnivoreEnergyMean: carnMean,
		CarnivoreEnergyP10:  carnP10,
		CarnivoreEnergyP50:  carnP50,
		CarnivoreEnergyP90:  carnP90,

		HealthMean: healthMean,
		HealthStd:  healthStd,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [components.NumKinds]int{}
	c.deaths = [components.NumKinds]int{}
	c.eaten = [components.NumKinds]int{}
	c.starvations = 0
	c.healthDeaths = 0
	c.pairings = 0
	c.ageAtDeath = 0
	c.agedDeaths = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
