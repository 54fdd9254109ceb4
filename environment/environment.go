// Package environment models the world-wide climate that every organism reads.
package environment

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/biome/config"
)

// Season cycles Spring -> Summer -> Fall -> Winter.
type Season uint8

const (
	Spring Season = iota
	Summer
	Fall
	Winter
	numSeasons
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	case Winter:
		return "Winter"
	}
	return "Unknown"
}

// Next returns the following season, wrapping after Winter.
func (s Season) Next() Season {
	return (s + 1) % numSeasons
}

// Pick selects this season's entry from a per-season table.
func (s Season) Pick(t config.SeasonTable) float64 {
	switch s {
	case Summer:
		return t.Summer
	case Fall:
		return t.Fall
	case Winter:
		return t.Winter
	}
	return t.Spring
}

// Weather is the short-term climate state.
type Weather uint8

const (
	Sunny Weather = iota
	Rainy
	Cloudy
	Stormy
	numWeathers
)

func (w Weather) String() string {
	switch w {
	case Sunny:
		return "Sunny"
	case Rainy:
		return "Rainy"
	case Cloudy:
		return "Cloudy"
	case Stormy:
		return "Stormy"
	}
	return "Unknown"
}

// Effect selects this weather's deltas from the weather table.
func (w Weather) Effect(t config.WeatherTable) config.WeatherEffect {
	switch w {
	case Rainy:
		return t.Rainy
	case Cloudy:
		return t.Cloudy
	case Stormy:
		return t.Stormy
	}
	return t.Sunny
}

// Factors are the continuous climate values organisms respond to.
type Factors struct {
	Temperature float64
	Humidity    float64
	Sunlight    float64
	WaterLevel  float64
}

// Snapshot is an immutable copy of the environment for readers outside the tick.
type Snapshot struct {
	Time    int
	Season  Season
	Weather Weather
	Factors Factors
}

// LogValue implements slog.LogValuer.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("time", s.Time),
		slog.String("season", s.Season.String()),
		slog.String("weather", s.Weather.String()),
		slog.Float64("temperature", s.Factors.Temperature),
		slog.Float64("humidity", s.Factors.Humidity),
		slog.Float64("sunlight", s.Factors.Sunlight),
		slog.Float64("water_level", s.Factors.WaterLevel),
	)
}

// Environment is the single mutable climate state owned by the ecosystem.
type Environment struct {
	Time    int
	Season  Season
	Weather Weather
	Factors Factors

	cfg config.EnvironmentConfig
}

// New creates an environment in Spring, Sunny, with the configured initial factors.
func New(cfg config.EnvironmentConfig) *Environment {
	return &Environment{
		Season:  Spring,
		Weather: Sunny,
		Factors: Factors{
			Temperature: cfg.Initial.Temperature,
			Humidity:    cfg.Initial.Humidity,
			Sunlight:    cfg.Initial.Sunlight,
			WaterLevel:  cfg.Initial.WaterLevel,
		},
		cfg: cfg,
	}
}

// Update advances the climate by one tick.
func (e *Environment) Update(rng *rand.Rand) {
	e.Time++
	e.updateSeason()
	e.updateWeather(rng)
	e.updateFactors()
}

// Snapshot returns a copy of the current state.
func (e *Environment) Snapshot() Snapshot {
	return Snapshot{Time: e.Time, Season: e.Season, Weather: e.Weather, Factors: e.Factors}
}

// PlantGrowth returns the current season's multiplier on photosynthesis.
func (e *Environment) PlantGrowth() float64 {
	return e.Season.Pick(e.cfg.PlantGrowth)
}

func (e *Environment) updateSeason() {
	if e.cfg.SeasonLength <= 0 || e.Time%e.cfg.SeasonLength != 0 {
		return
	}
	prev := e.Season
	e.Season = e.Season.Next()
	slog.Debug("season_change", "time", e.Time, "from", prev.String(), "to", e.Season.String())
}

func (e *Environment) updateWeather(rng *rand.Rand) {
	if rng.Float64() >= e.cfg.WeatherChangeChance {
		return
	}
	prev := e.Weather
	e.Weather = Weather(rng.Intn(int(numWeathers)))
	if e.Weather != prev {
		slog.Debug("weather_change", "time", e.Time, "from", prev.String(), "to", e.Weather.String())
	}
}

func (e *Environment) updateFactors() {
	target := e.Season.Pick(e.cfg.SeasonTargets)
	e.Factors.Temperature += (target - e.Factors.Temperature) * e.cfg.RelaxRate

	fx := e.Weather.Effect(e.cfg.WeatherEffects)
	e.Factors.Humidity = e.clampFactor(e.Factors.Humidity + fx.Humidity)
	e.Factors.Sunlight = e.clampFactor(e.Factors.Sunlight + fx.Sunlight)
	e.Factors.WaterLevel = e.clampFactor(e.Factors.WaterLevel + fx.WaterLevel)
}

func (e *Environment) clampFactor(v float64) float64 {
	return max(e.cfg.FactorMin, min(e.cfg.FactorMax, v))
}
