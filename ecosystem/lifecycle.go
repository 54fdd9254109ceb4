package ecosystem

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/telemetry"
	"github.com/pthm-cable/biome/traits"
)

// SpawnOption overrides part of the default placement in AddOrganism.
type SpawnOption func(*spawnOptions)

type spawnOptions struct {
	x, y       float64
	hasX, hasY bool
}

// SpawnAt places the organism at (x, y).
func SpawnAt(x, y float64) SpawnOption {
	return func(o *spawnOptions) {
		o.x, o.hasX = x, true
		o.y, o.hasY = y, true
	}
}

// SpawnX fixes the horizontal coordinate only.
func SpawnX(x float64) SpawnOption {
	return func(o *spawnOptions) { o.x, o.hasX = x, true }
}

// SpawnY fixes the vertical coordinate only.
func SpawnY(y float64) SpawnOption {
	return func(o *spawnOptions) { o.y, o.hasY = y, true }
}

// AddOrganism creates a fresh organism of the named species with random
// genetics and full energy and health. Without options, x is uniform over
// the world width; plants sit on the ground line and animals somewhere in
// the hop band above it. The position is clamped to the world rectangle.
func (e *Ecosystem) AddOrganism(name string, opts ...SpawnOption) (uint32, error) {
	sp, err := e.cfg.Lookup(name)
	if err != nil {
		return 0, fmt.Errorf("add organism: %w", err)
	}

	var o spawnOptions
	for _, opt := range opts {
		opt(&o)
	}

	pos := components.Position{X: o.x, Y: o.y}
	if !o.hasX {
		pos.X = e.rng.Float64() * e.bounds.Width
	}
	if !o.hasY {
		pos.Y = e.bounds.Ground
		if !sp.Diet.IsPlant() {
			pos.Y -= e.rng.Float64() * e.cfg.Organism.HopHeight
		}
	}

	g := traits.Random(e.rng, e.genetics)
	_, id := e.spawn(sp, systems.ClampToBounds(pos, e.bounds), g, [2]uint32{})
	return id, nil
}

// spawnInitialPopulation creates the configured population, species in
// config order.
func (e *Ecosystem) spawnInitialPopulation() error {
	for _, entry := range e.cfg.Population {
		for i := 0; i < entry.Count; i++ {
			if _, err := e.AddOrganism(entry.Species); err != nil {
				return fmt.Errorf("initial population: %w", err)
			}
		}
	}
	return nil
}

// spawn appends a new organism to the live set.
func (e *Ecosystem) spawn(sp *config.Species, pos components.Position, g traits.Genetics, parents [2]uint32) (ecs.Entity, uint32) {
	v := components.Vitals{
		Energy: e.cfg.Organism.InitialEnergy,
		Health: e.cfg.Organism.InitialHealth,
	}
	ent, id := e.store.Spawn(sp, pos, g, v)
	e.live = append(e.live, ent)
	e.lifetimes.Register(id, e.tick, sp.Name, parents[0])
	return ent, id
}

// spawnOffspring places a newborn inside the world rectangle and records
// the birth for both parents.
func (e *Ecosystem) spawnOffspring(child systems.Offspring) uint32 {
	pos := systems.ClampToBounds(child.Position, e.bounds)
	_, id := e.spawn(child.Species, pos, child.Genetics, child.Parents)

	kind := components.KindOf(child.Species.Diet)
	e.record(telemetry.NewBirthEvent(e.tick, id, child.Parents[0], kind))
	if child.Parents[1] != 0 {
		e.lifetimes.RecordChild(child.Parents[1])
	}
	return id
}

// remove deletes an organism, dissolving any partnership first so no
// surviving organism references it.
func (e *Ecosystem) remove(ent ecs.Entity, cause telemetry.DeathCause) {
	if !e.store.Alive(ent) {
		return
	}
	org := e.store.Organism(ent)
	v := e.store.Vitals(ent)
	id, kind := org.ID, org.Kind()

	e.record(telemetry.NewDeathEvent(e.tick, id, kind, cause, v.Age))
	slog.Debug("death", "id", id, "species", org.Species.Name, "cause", cause.String(), "age", v.Age)

	e.pairing.Unlink(id)
	e.lifetimes.Remove(id)
	if i := slices.Index(e.live, ent); i >= 0 {
		e.live = slices.Delete(e.live, i, i+1)
	}
	e.store.Remove(ent)
}

// deathCause classifies a non-predation death.
func deathCause(v *components.Vitals) telemetry.DeathCause {
	if v.Energy <= 0 {
		return telemetry.CauseStarvation
	}
	return telemetry.CauseHealth
}
