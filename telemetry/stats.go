package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biome/components"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Environment at window end
	Season      string  `csv:"season"`
	Weather     string  `csv:"weather"`
	Temperature float64 `csv:"temperature"`
	Humidity    float64 `csv:"humidity"`
	Sunlight    float64 `csv:"sunlight"`
	WaterLevel  float64 `csv:"water_level"`

	// Population counts at window end
	Plants     int `csv:"plants"`
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`

	// Events during window
	PlantBirths     int `csv:"plant_births"`
	HerbivoreBirths int `csv:"herbivore_births"`
	CarnivoreBirths int `csv:"carnivore_births"`
	PlantDeaths     int `csv:"plant_deaths"`
	HerbivoreDeaths int `csv:"herbivore_deaths"`
	CarnivoreDeaths int `csv:"carnivore_deaths"`
	Starvations     int `csv:"starvations"`
	HealthDeaths    int `csv:"health_deaths"`
	PlantsEaten     int `csv:"plants_eaten"`
	HerbivoresEaten int `csv:"herbivores_eaten"`
	Pairings        int `csv:"pairings"`

	MeanAgeAtDeath float64 `csv:"mean_age_at_death"`

	// Energy distribution (sampled at window end)
	PlantEnergyMean float64 `csv:"plant_energy_mean"`
	PlantEnergyP50  float64 `csv:"plant_energy_p50"`

	HerbivoreEnergyMean float64 `csv:"herbivore_energy_mean"`
	HerbivoreEnergyP10  float64 `csv:"herbivore_energy_p10"`
	HerbivoreEnergyP50  float64 `csv:"herbivore_energy_p50"`
	HerbivoreEnergyP90  float64 `csv:"herbivore_energy_p90"`

	CarnivoreEnergyMean float64 `csv:"carnivore_energy_mean"`
	CarnivoreEnergyP10  float64 `csv:"carnivore_energy_p10"`
	CarnivoreEnergyP50  float64 `csv:"carnivore_energy_p50"`
	CarnivoreEnergyP90  float64 `csv:"carnivore_energy_p90"`

	// Health across all organisms
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
}

// Count returns the population of one kind.
func (s WindowStats) Count(k components.Kind) int {
	switch k {
	case components.KindPlant:
		return s.Plants
	case components.KindHerbivore:
		return s.Herbivores
	}
	return s.Carnivores
}

// Population is the live-set sample the collector summarises at flush time.
type Population struct {
	Counts   Counts
	Energies [components.NumKinds][]float64
	Health   []float64
}

// Add records one live organism.
func (p *Population) Add(kind components.Kind, energy, health float64) {
	p.Counts[kind]++
	p.Energies[kind] = append(p.Energies[kind], energy)
	p.Health = append(p.Health, health)
}

// ComputeEnergyStats calculates mean and empirical quantiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// ComputeSpread returns the mean and standard deviation of values.
func ComputeSpread(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.String("season", s.Season),
		slog.String("weather", s.Weather),
		slog.Float64("temperature", s.Temperature),
		slog.Int("plants", s.Plants),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("plant_births", s.PlantBirths),
		slog.Int("herbivore_births", s.HerbivoreBirths),
		slog.Int("carnivore_births", s.CarnivoreBirths),
		slog.Int("starvations", s.Starvations),
		slog.Int("health_deaths", s.HealthDeaths),
		slog.Int("plants_eaten", s.PlantsEaten),
		slog.Int("herbivores_eaten", s.HerbivoresEaten),
		slog.Int("pairings", s.Pairings),
		slog.Float64("mean_age_at_death", s.MeanAgeAtDeath),
		slog.Float64("herbivore_energy_p50", s.HerbivoreEnergyP50),
		slog.Float64("carnivore_energy_p50", s.CarnivoreEnergyP50),
		slog.Float64("health_mean", s.HealthMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"season", s.Season,
		"weather", s.Weather,
		"temperature", s.Temperature,
		"humidity", s.Humidity,
		"sunlight", s.Sunlight,
		"water_level", s.WaterLevel,
		"plants", s.Plants,
		"herbivores", s.Herbivores,
		"carnivores", s.Carnivores,
		"plant_births", s.PlantBirths,
		"herbivore_births", s.HerbivoreBirths,
		"carnivore_births", s.CarnivoreBirths,
		"plant_deaths", s.PlantDeaths,
		"herbivore_deaths", s.HerbivoreDeaths,
		"carnivore_deaths", s.CarnivoreDeaths,
		"starvations", s.Starvations,
		"health_deaths", s.HealthDeaths,
		"plants_eaten", s.PlantsEaten,
		"herbivores_eaten", s.HerbivoresEaten,
		"pairings", s.Pairings,
		"mean_age_at_death", s.MeanAgeAtDeath,
		"plant_energy_mean", s.PlantEnergyMean,
		"herbivore_energy_mean", s.HerbivoreEnergyMean,
		"herbivore_energy_p50", s.HerbivoreEnergyP50,
		"carnivore_energy_mean", s.CarnivoreEnergyMean,
		"carnivore_energy_p50", s.CarnivoreEnergyP50,
		"health_mean", s.HealthMean,
		"health_std", s.HealthStd,
	)
}
