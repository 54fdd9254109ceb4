// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig        `yaml:"screen"`
	World        WorldConfig         `yaml:"world"`
	Environment  EnvironmentConfig   `yaml:"environment"`
	Organism     OrganismConfig      `yaml:"organism"`
	Reproduction ReproductionConfig  `yaml:"reproduction"`
	Predation    PredationConfig     `yaml:"predation"`
	Species      map[string]*Species `yaml:"species"`
	Population   []PopulationEntry   `yaml:"population"`
	Telemetry    TelemetryConfig     `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The engine only uses it as the
// fallback world size; presentation layers read the rest.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width       int     `yaml:"width"`        // World width in world units (0 = use screen width)
	Height      int     `yaml:"height"`       // World height in world units (0 = use screen height)
	GroundRatio float64 `yaml:"ground_ratio"` // Ground line as a fraction of height
}

// FactorValues is one set of continuous climate factors.
type FactorValues struct {
	Temperature float64 `yaml:"temperature"`
	Humidity    float64 `yaml:"humidity"`
	Sunlight    float64 `yaml:"sunlight"`
	WaterLevel  float64 `yaml:"water_level"`
}

// SeasonTable holds one value per season.
type SeasonTable struct {
	Spring float64 `yaml:"spring"`
	Summer float64 `yaml:"summer"`
	Fall   float64 `yaml:"fall"`
	Winter float64 `yaml:"winter"`
}

// WeatherEffect is the per-tick additive delta a weather applies.
type WeatherEffect struct {
	Humidity   float64 `yaml:"humidity"`
	Sunlight   float64 `yaml:"sunlight"`
	WaterLevel float64 `yaml:"water_level"`
}

// WeatherTable holds one effect per weather state.
type WeatherTable struct {
	Sunny  WeatherEffect `yaml:"sunny"`
	Rainy  WeatherEffect `yaml:"rainy"`
	Cloudy WeatherEffect `yaml:"cloudy"`
	Stormy WeatherEffect `yaml:"stormy"`
}

// EnvironmentConfig holds climate model parameters.
type EnvironmentConfig struct {
	SeasonLength        int          `yaml:"season_length"`         // Ticks per season
	WeatherChangeChance float64      `yaml:"weather_change_chance"` // Per-tick probability of a weather roll
	RelaxRate           float64      `yaml:"relax_rate"`            // Temperature relaxation factor toward season target
	FactorMin           float64      `yaml:"factor_min"`
	FactorMax           float64      `yaml:"factor_max"`
	Initial             FactorValues `yaml:"initial"`
	SeasonTargets       SeasonTable  `yaml:"season_targets"`
	PlantGrowth         SeasonTable  `yaml:"plant_growth"` // Season multiplier on plant energy gain
	WeatherEffects      WeatherTable `yaml:"weather_effects"`
}

// OrganismConfig holds per-organism behaviour constants.
type OrganismConfig struct {
	InitialEnergy          float64 `yaml:"initial_energy"`
	InitialHealth          float64 `yaml:"initial_health"`
	MaxEnergy              float64 `yaml:"max_energy"`
	MaxHealth              float64 `yaml:"max_health"`
	GeneticsMin            float64 `yaml:"genetics_min"`
	GeneticsMax            float64 `yaml:"genetics_max"`
	MutationMin            float64 `yaml:"mutation_min"`
	MutationMax            float64 `yaml:"mutation_max"`
	SunlightWeight         float64 `yaml:"sunlight_weight"`
	WaterWeight            float64 `yaml:"water_weight"`
	DrynessWeight          float64 `yaml:"dryness_weight"`
	LowEnergyThreshold     float64 `yaml:"low_energy_threshold"`
	LowEnergyPenalty       float64 `yaml:"low_energy_penalty"`
	TemperatureDamageScale float64 `yaml:"temperature_damage_scale"`
	CompetitionPenalty     float64 `yaml:"competition_penalty"` // Energy lost per crowding neighbour
	PartnerRadius          float64 `yaml:"partner_radius"`
	DefaultSpeed           float64 `yaml:"default_speed"`
	HopHeight              float64 `yaml:"hop_height"` // Animals stay within this band above the ground
	OffspringSpread        float64 `yaml:"offspring_spread"`
}

// ReproductionConfig holds the fixed reproduction gates.
// These are deliberately independent of Species.MinReproductionEnergy.
type ReproductionConfig struct {
	PlantEnergy  float64 `yaml:"plant_energy"`
	PlantHealth  float64 `yaml:"plant_health"`
	AnimalEnergy float64 `yaml:"animal_energy"`
	AnimalHealth float64 `yaml:"animal_health"`
	Cost         float64 `yaml:"cost"`
	Cooldown     int     `yaml:"cooldown"`
}

// PredationConfig holds predation parameters.
type PredationConfig struct {
	Radius       float64 `yaml:"radius"`
	EnergyGain   float64 `yaml:"energy_gain"`
	GridCellSize float64 `yaml:"grid_cell_size"`
}

// PopulationEntry is one species' initial head count. A list keeps spawn order stable.
type PopulationEntry struct {
	Species string `yaml:"species"`
	Count   int    `yaml:"count"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	HistorySize         int `yaml:"history_size"`          // Rolling population series length
	StatsWindow         int `yaml:"stats_window"`          // Ticks per telemetry window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// Bounds is the immutable world geometry handed to systems that need it.
type Bounds struct {
	Width  float64
	Height float64
	Ground float64
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Bounds       Bounds
	SpeciesOrder []string // sorted species names
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the species table and computes derived values.
// Load calls it; configs built in code must call it before use.
func (c *Config) Finalize() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

func (c *Config) validate() error {
	if len(c.Species) == 0 {
		return &ConfigError{Field: "species", Reason: "no species defined"}
	}
	for name, sp := range c.Species {
		if sp == nil {
			return &ConfigError{Species: name, Reason: "empty species entry"}
		}
		sp.Name = name
		if err := sp.validate(); err != nil {
			return err
		}
	}
	for _, entry := range c.Population {
		if _, ok := c.Species[entry.Species]; !ok {
			return fmt.Errorf("population: %w", newUnknownSpeciesError(entry.Species, c.Species))
		}
		if entry.Count < 0 {
			return &ConfigError{Species: entry.Species, Field: "count", Reason: "must not be negative"}
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	ratio := c.World.GroundRatio
	if ratio == 0 {
		ratio = 0.7
	}
	c.Derived.Bounds = Bounds{
		Width:  float64(worldW),
		Height: float64(worldH),
		Ground: ratio * float64(worldH),
	}

	if c.Telemetry.HistorySize <= 0 {
		c.Telemetry.HistorySize = 100
	}

	c.Derived.SpeciesOrder = c.Derived.SpeciesOrder[:0]
	for name := range c.Species {
		c.Derived.SpeciesOrder = append(c.Derived.SpeciesOrder, name)
	}
	sort.Strings(c.Derived.SpeciesOrder)
}

// Lookup returns the species descriptor for name.
func (c *Config) Lookup(name string) (*Species, error) {
	sp, ok := c.Species[name]
	if !ok {
		return nil, newUnknownSpeciesError(name, c.Species)
	}
	return sp, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
