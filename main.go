package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/ecosystem"
	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/telemetry"
)

// spawnFlag collects repeated -spawn name=count values.
type spawnFlag []config.PopulationEntry

func (s *spawnFlag) String() string {
	parts := make([]string, len(*s))
	for i, e := range *s {
		parts[i] = fmt.Sprintf("%s=%d", e.Species, e.Count)
	}
	return strings.Join(parts, ",")
}

func (s *spawnFlag) Set(v string) error {
	name, count, ok := strings.Cut(v, "=")
	if !ok {
		name, count = v, "1"
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid count in %q", v)
	}
	*s = append(*s, config.PopulationEntry{Species: name, Count: n})
	return nil
}

func main() {
	var spawns spawnFlag

	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	perf := flag.Bool("perf", false, "Collect per-phase timings")
	pauseAt := flag.Int("pause-at", 0, "Pause after N ticks (0 = never)")
	pauseFor := flag.Int("pause-for", 100, "Loop iterations to stay paused")
	checkInvariants := flag.Bool("check-invariants", false, "Verify state invariants after every tick")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Var(&spawns, "spawn", "Add organisms at start, name=count (repeatable)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	eco, err := ecosystem.NewWithOptions(cfg, rand.New(rand.NewSource(rngSeed)), ecosystem.Options{
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		Perf:        *perf,
		Output:      output,
	})
	if err != nil {
		slog.Error("failed to create ecosystem", "error", err)
		os.Exit(1)
	}

	for _, entry := range spawns {
		for i := 0; i < entry.Count; i++ {
			if _, err := eco.AddOrganism(entry.Species); err != nil {
				var unknown *config.UnknownSpeciesError
				if errors.As(err, &unknown) {
					slog.Error("unknown species", "name", unknown.Name, "suggestion", unknown.Suggestion)
				} else {
					slog.Error("failed to spawn", "error", err)
				}
				os.Exit(1)
			}
		}
	}

	phases := make([]string, 0, len(telemetry.Phases))
	for _, info := range systems.NewSystemRegistry().All() {
		phases = append(phases, info.Name)
	}
	slog.Info("starting simulation",
		"seed", rngSeed,
		"organisms", eco.Len(),
		"max_ticks", *maxTicks,
		"phases", phases,
	)

	paused := 0
	for {
		eco.Tick()

		if *checkInvariants {
			if err := eco.CheckInvariants(); err != nil {
				slog.Error("invariant violated", "tick", eco.Ticks(), "error", err)
				os.Exit(2)
			}
		}

		if eco.Paused() {
			paused++
			if paused >= *pauseFor {
				eco.TogglePause()
				slog.Info("resumed", "tick", eco.Ticks())
			}
			continue
		}
		if *pauseAt > 0 && eco.Ticks() == *pauseAt && paused == 0 {
			eco.TogglePause()
			slog.Info("paused", "tick", eco.Ticks(), "iterations", *pauseFor)
			continue
		}

		if eco.Len() == 0 {
			slog.Info("ecosystem empty", "tick", eco.Ticks())
			return
		}
		if *maxTicks > 0 && eco.Ticks() >= *maxTicks {
			slog.Info("max ticks reached", "tick", eco.Ticks(), "organisms", eco.Len())
			return
		}
	}
}
