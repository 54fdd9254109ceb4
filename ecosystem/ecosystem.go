// Package ecosystem owns the live organisms and the environment and drives
// the simulation tick.
package ecosystem

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/environment"
	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/telemetry"
	"github.com/pthm-cable/biome/traits"
)

// Options configures telemetry around the simulation.
type Options struct {
	LogStats      bool                        // log window stats and bookmarks via slog
	StatsWindow   int                         // ticks per telemetry window (0 = config)
	Perf          bool                        // collect per-phase timings
	Output        *telemetry.OutputManager    // CSV output, nil = disabled
	StatsCallback func(telemetry.WindowStats) // called on every flushed window
}

// Ecosystem holds the complete simulation state.
type Ecosystem struct {
	cfg    *config.Config
	bounds config.Bounds
	rng    *rand.Rand

	world   *ecs.World
	store   *systems.Store
	pairing *systems.Pairing
	env     *environment.Environment

	// Systems
	organisms *systems.OrganismSystem
	breeding  *systems.BreedingSystem
	feeding   *systems.FeedingSystem

	// Live order; offspring are appended, removals keep the order of the rest.
	live    []ecs.Entity
	scratch []ecs.Entity

	genetics traits.Range
	history  *telemetry.History

	// Telemetry
	collector     *telemetry.Collector
	lifetimes     *telemetry.LifetimeTracker
	bookmarks     *telemetry.BookmarkDetector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastWindow    *telemetry.WindowStats

	tick   int
	paused bool
}

// New creates an ecosystem with default telemetry options.
func New(cfg *config.Config, rng *rand.Rand) (*Ecosystem, error) {
	return NewWithOptions(cfg, rng, Options{})
}

// NewWithOptions creates an ecosystem and spawns the configured initial
// population. cfg must have been loaded or finalized; it is treated as
// read-only from here on.
func NewWithOptions(cfg *config.Config, rng *rand.Rand, opts Options) (*Ecosystem, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ecosystem: nil config")
	}
	if rng == nil {
		return nil, fmt.Errorf("ecosystem: nil random source")
	}

	world := ecs.NewWorld()
	store := systems.NewStore(world)
	pairing := systems.NewPairing()
	env := environment.New(cfg.Environment)
	breeding := systems.NewBreedingSystem(store, pairing, cfg, rng)

	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		window = opts.StatsWindow
	}

	e := &Ecosystem{
		cfg:     cfg,
		bounds:  cfg.Derived.Bounds,
		rng:     rng,
		world:   world,
		store:   store,
		pairing: pairing,
		env:     env,

		organisms: systems.NewOrganismSystem(store, breeding, env, cfg, rng),
		breeding:  breeding,
		feeding:   systems.NewFeedingSystem(store, cfg),

		genetics: traits.Range{Min: cfg.Organism.GeneticsMin, Max: cfg.Organism.GeneticsMax},
		history:  telemetry.NewHistory(cfg.Telemetry.HistorySize),

		collector:     telemetry.NewCollector(window),
		lifetimes:     telemetry.NewLifetimeTracker(),
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize),
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	if opts.Perf {
		e.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	}

	if err := e.spawnInitialPopulation(); err != nil {
		return nil, err
	}
	slog.Debug("ecosystem created", "organisms", len(e.live), "bounds", e.bounds)
	return e, nil
}

// TogglePause flips the pause state. While paused Tick changes nothing.
func (e *Ecosystem) TogglePause() {
	e.paused = !e.paused
}

// Paused reports whether the simulation is paused.
func (e *Ecosystem) Paused() bool {
	return e.paused
}

// Ticks returns the number of ticks simulated so far.
func (e *Ecosystem) Ticks() int {
	return e.tick
}

// Len returns the number of live organisms.
func (e *Ecosystem) Len() int {
	return len(e.live)
}

// Bounds returns the world geometry.
func (e *Ecosystem) Bounds() config.Bounds {
	return e.bounds
}

// Environment returns a copy of the current climate.
func (e *Ecosystem) Environment() environment.Snapshot {
	return e.env.Snapshot()
}

// Statistics returns a copy of the rolling population series.
func (e *Ecosystem) Statistics() telemetry.Series {
	return e.history.Series()
}

// LastWindow returns the most recently flushed telemetry window.
func (e *Ecosystem) LastWindow() (telemetry.WindowStats, bool) {
	if e.lastWindow == nil {
		return telemetry.WindowStats{}, false
	}
	return *e.lastWindow, true
}

// Perf returns the perf collector, or nil when timing is disabled.
func (e *Ecosystem) Perf() *telemetry.PerfCollector {
	return e.perf
}
