package ecosystem

import (
	"log/slog"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/telemetry"
)

// record feeds an event to the window collector and the lifetime tracker.
func (e *Ecosystem) record(ev telemetry.Event) {
	e.collector.Record(ev)
	e.lifetimes.Record(ev)
}

// samplePopulation gathers energies and health of every live organism.
func (e *Ecosystem) samplePopulation() telemetry.Population {
	var pop telemetry.Population
	e.store.Each(func(v *components.Vitals, org *components.Organism) {
		pop.Add(org.Kind(), v.Energy, v.Health)
	})
	return pop
}

// flushTelemetry closes the current window when it is due.
func (e *Ecosystem) flushTelemetry() {
	if !e.collector.ShouldFlush(e.tick) {
		return
	}

	stats := e.collector.Flush(e.tick, e.env.Snapshot(), e.samplePopulation())
	e.lastWindow = &stats

	var perfStats telemetry.PerfStats
	if e.perf != nil {
		perfStats = e.perf.Stats()
	}

	if e.logStats {
		stats.LogStats()
		if e.perf != nil {
			perfStats.LogStats()
		}
	}

	if err := e.output.WriteTelemetry(stats); err != nil {
		e.outputError("telemetry", err)
	}
	if e.perf != nil {
		if err := e.output.WritePerf(perfStats, e.tick); err != nil {
			e.outputError("perf", err)
		}
	}

	for _, b := range e.bookmarks.Check(stats) {
		if e.logStats {
			b.LogBookmark()
		}
		if err := e.output.WriteBookmark(b); err != nil {
			e.outputError("bookmark", err)
		}
	}

	if e.statsCallback != nil {
		e.statsCallback(stats)
	}
}

func (e *Ecosystem) outputError(what string, err error) {
	slog.Error("failed to write "+what, "tick", e.tick, "error", err)
}
