package ecosystem

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/telemetry"
)

// Tick advances the simulation by one step. It is a no-op while paused.
//
// Phases run in a fixed order: environment, organisms in live order (with
// removal of the dead and spawning of offspring), predation, statistics.
func (e *Ecosystem) Tick() {
	if e.paused {
		return
	}
	e.tick++
	e.perf.StartTick()

	e.perf.StartPhase(telemetry.PhaseEnvironment)
	e.env.Update(e.rng)

	e.perf.StartPhase(telemetry.PhaseOrganisms)
	e.updateOrganisms()

	e.perf.StartPhase(telemetry.PhasePredation)
	e.resolvePredation()

	e.perf.StartPhase(telemetry.PhaseStatistics)
	e.collectStatistics()

	e.perf.EndTick()
	e.flushTelemetry()
}

// updateOrganisms visits the organisms alive at the start of the phase.
// Offspring born during the pass join the live set but are first updated
// next tick; an organism removed earlier in the pass is skipped.
func (e *Ecosystem) updateOrganisms() {
	e.scratch = append(e.scratch[:0], e.live...)

	for _, ent := range e.scratch {
		if !e.store.Alive(ent) {
			continue
		}

		if partner := e.organisms.Update(ent, e.live); partner != 0 {
			org := e.store.Organism(ent)
			e.record(telemetry.NewPairingEvent(e.tick, org.ID, partner, org.Kind()))
		}

		if v := e.store.Vitals(ent); v.Dead() {
			e.remove(ent, deathCause(v))
			continue
		}

		if child, ok := e.breeding.Reproduce(ent); ok {
			e.spawnOffspring(child)
		}
	}
}

// resolvePredation lets each surviving animal eat at most once.
func (e *Ecosystem) resolvePredation() {
	meals := e.feeding.Update(e.live, func(prey ecs.Entity) {
		e.remove(prey, telemetry.CausePredation)
	})
	for _, m := range meals {
		e.record(telemetry.NewKillEvent(e.tick, m.Predator, m.Prey, m.PreyKind))
	}
}

// collectStatistics appends this tick's population counts to the history.
func (e *Ecosystem) collectStatistics() {
	counts := e.counts()
	e.history.Append(counts)
	if err := e.output.WritePopulation(e.tick, counts); err != nil {
		e.outputError("population", err)
	}
}

// counts tallies live organisms by kind.
func (e *Ecosystem) counts() telemetry.Counts {
	var c telemetry.Counts
	e.store.Each(func(_ *components.Vitals, org *components.Organism) {
		c[org.Kind()]++
	})
	return c
}
