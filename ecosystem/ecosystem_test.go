package ecosystem

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/telemetry"
)

// emptyConfig returns the defaults without an initial population and with
// reproduction switched off, so small scenarios stay exact.
func emptyConfig() *config.Config {
	cfg := config.Default()
	cfg.Population = nil
	for _, sp := range cfg.Species {
		sp.ReproductionRate = 0
	}
	return cfg
}

func newEcosystem(t *testing.T, cfg *config.Config) *Ecosystem {
	t.Helper()
	eco, err := New(cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	return eco
}

func add(t *testing.T, eco *Ecosystem, species string, opts ...SpawnOption) uint32 {
	t.Helper()
	id, err := eco.AddOrganism(species, opts...)
	require.NoError(t, err)
	return id
}

func TestNewSpawnsConfiguredPopulation(t *testing.T) {
	eco := newEcosystem(t, config.Default())

	assert.Equal(t, 176, eco.Len())
	assert.Equal(t, 0, eco.Ticks())
	assert.Equal(t, 0, eco.Statistics().Len(), "no samples before the first tick")

	perSpecies := map[string]int{}
	for _, v := range eco.Organisms() {
		perSpecies[v.Species]++
	}
	assert.Equal(t, map[string]int{"Tree": 50, "Grass": 100, "Rabbit": 15, "Deer": 8, "Wolf": 3}, perSpecies)
	require.NoError(t, eco.CheckInvariants())
}

func TestNewRejectsNilArguments(t *testing.T) {
	_, err := New(nil, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
	_, err = New(config.Default(), nil)
	assert.Error(t, err)
}

func TestAddOrganismGrassOnGroundLine(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())
	b := eco.Bounds()
	require.Equal(t, 560.0, b.Ground)

	for i := 0; i < 10; i++ {
		add(t, eco, "Grass")
	}

	views := eco.Organisms()
	require.Len(t, views, 10)
	for _, v := range views {
		assert.Equal(t, b.Ground, v.Y)
		assert.GreaterOrEqual(t, v.X, 0.0)
		assert.LessOrEqual(t, v.X, b.Width)
		assert.Equal(t, 100.0, v.Energy)
		assert.Equal(t, 100.0, v.Health)
		assert.Equal(t, 0, v.Age)
		assert.Equal(t, uint32(0), v.Partner)
		assert.Equal(t, config.DietPlant, v.Diet)
	}
}

func TestAddOrganismAnimalsInHopBand(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())
	b := eco.Bounds()

	for i := 0; i < 20; i++ {
		add(t, eco, "Rabbit")
	}
	for _, v := range eco.Organisms() {
		assert.GreaterOrEqual(t, v.Y, b.Ground-50)
		assert.LessOrEqual(t, v.Y, b.Ground)
	}
}

func TestAddOrganismExplicitPosition(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())
	id := add(t, eco, "Wolf", SpawnAt(12, 34))

	v, ok := eco.Organism(id)
	require.True(t, ok)
	assert.Equal(t, 12.0, v.X)
	assert.Equal(t, 34.0, v.Y)
	assert.Equal(t, components.KindCarnivore, v.Kind)

	id = add(t, eco, "Tree", SpawnX(100))
	v, ok = eco.Organism(id)
	require.True(t, ok)
	assert.Equal(t, 100.0, v.X)
	assert.Equal(t, eco.Bounds().Ground, v.Y)

	id = add(t, eco, "Deer", SpawnAt(-10, 5000))
	v, ok = eco.Organism(id)
	require.True(t, ok)
	assert.Equal(t, 0.0, v.X)
	assert.Equal(t, eco.Bounds().Height, v.Y)
}

func TestAddOrganismUnknownSpecies(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())

	_, err := eco.AddOrganism("Wolff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrUnknownSpecies))

	var unknown *config.UnknownSpeciesError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Wolff", unknown.Name)
	assert.Equal(t, "Wolf", unknown.Suggestion)
	assert.Equal(t, 0, eco.Len())
}

func TestPauseIsIdempotent(t *testing.T) {
	eco := newEcosystem(t, config.Default())
	eco.TogglePause()
	require.True(t, eco.Paused())

	before := eco.Organisms()
	env := eco.Environment()
	for i := 0; i < 5; i++ {
		eco.Tick()
	}

	assert.Equal(t, 0, eco.Ticks())
	assert.Equal(t, before, eco.Organisms())
	assert.Equal(t, env, eco.Environment())
	assert.Equal(t, 0, eco.Statistics().Len())

	eco.TogglePause()
	eco.Tick()
	assert.Equal(t, 1, eco.Ticks())
	assert.Equal(t, 1, eco.Statistics().Len())
}

func TestTickPredation(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())
	ground := eco.Bounds().Ground
	rabbit := add(t, eco, "Rabbit", SpawnAt(0, ground))
	add(t, eco, "Grass", SpawnAt(5, ground))

	eco.Tick()

	views := eco.Organisms()
	require.Len(t, views, 1)
	assert.Equal(t, rabbit, views[0].ID)
	// Gain is capped at the maximum.
	assert.Equal(t, 100.0, views[0].Energy)
	assert.Equal(t, 1, views[0].Kills)

	latest := eco.Statistics()
	assert.Equal(t, []int{0}, latest.Plants)
	assert.Equal(t, []int{1}, latest.Herbivores)
}

func TestTickRemovesStarvedOrganism(t *testing.T) {
	eco, err := NewWithOptions(emptyConfig(), rand.New(rand.NewSource(7)), Options{StatsWindow: 1})
	require.NoError(t, err)
	id := add(t, eco, "Rabbit")
	add(t, eco, "Tree")

	ent, ok := eco.store.Entity(id)
	require.True(t, ok)
	eco.store.Vitals(ent).Energy = 0

	eco.Tick()

	_, ok = eco.Organism(id)
	assert.False(t, ok)
	assert.Equal(t, 1, eco.Len())

	window, ok := eco.LastWindow()
	require.True(t, ok)
	assert.Equal(t, 1, window.Starvations)
	assert.Equal(t, 1, window.HerbivoreDeaths)
	require.NoError(t, eco.CheckInvariants())
}

func TestTickReproductionCost(t *testing.T) {
	cfg := emptyConfig()
	cfg.Species["Rabbit"].ReproductionRate = 1
	eco := newEcosystem(t, cfg)

	ground := eco.Bounds().Ground
	a := add(t, eco, "Rabbit", SpawnAt(100, ground))
	b := add(t, eco, "Rabbit", SpawnAt(105, ground))

	eco.Tick()

	require.Equal(t, 3, eco.Len())
	views := eco.Organisms()
	assert.Equal(t, a, views[0].ID)
	assert.Equal(t, b, views[1].ID)

	for _, parent := range views[:2] {
		// one tick of metabolism plus the reproduction cost
		assert.InDelta(t, 70, parent.Energy, 0.5)
		assert.Equal(t, 1, parent.Children)
		assert.Greater(t, parent.ReproCooldown, 0)
	}

	child := views[2]
	assert.Equal(t, "Rabbit", child.Species)
	assert.Equal(t, 100.0, child.Energy)
	assert.Equal(t, 0, child.Age)
	assert.InDelta(t, 100, child.X, 22)
	assert.NotEqual(t, b, views[0].Partner, "partnership dissolves after reproducing")

	require.NoError(t, eco.CheckInvariants())
}

func TestTickKeepsInvariants(t *testing.T) {
	eco := newEcosystem(t, config.Default())
	b := eco.Bounds()

	for i := 0; i < 300; i++ {
		eco.Tick()
		require.NoError(t, eco.CheckInvariants(), "tick %d", eco.Ticks())

		byID := map[uint32]OrganismView{}
		for _, v := range eco.Organisms() {
			byID[v.ID] = v
		}
		for _, v := range byID {
			require.True(t, v.X >= 0 && v.X <= b.Width, "x out of bounds: %v", v.X)
			require.True(t, v.Y >= 0 && v.Y <= b.Height, "y out of bounds: %v", v.Y)
			if v.Partner != 0 {
				p, ok := byID[v.Partner]
				require.True(t, ok, "partner %d not alive", v.Partner)
				require.Equal(t, v.ID, p.Partner)
				require.Equal(t, v.Species, p.Species)
			}
		}

		counts, ok := eco.history.Latest()
		require.True(t, ok)
		require.Equal(t, eco.Len(), counts.Total())
	}
	assert.Equal(t, 100, eco.Statistics().Len(), "history is bounded")
}

func TestCheckInvariantsDetectsCrossSpeciesPair(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())
	rabbit := add(t, eco, "Rabbit")
	wolf := add(t, eco, "Wolf")
	require.NoError(t, eco.pairing.Link(rabbit, wolf))

	err := eco.CheckInvariants()
	require.Error(t, err)
	assert.True(t, errors.Is(err, systems.ErrInvariant))

	var inv *systems.InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, systems.InvariantCrossSpecies, inv.Kind)
}

func TestCheckInvariantsDetectsEnergyRange(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())
	id := add(t, eco, "Deer")
	ent, _ := eco.store.Entity(id)
	eco.store.Vitals(ent).Energy = 150

	var inv *systems.InvariantError
	require.True(t, errors.As(eco.CheckInvariants(), &inv))
	assert.Equal(t, systems.InvariantEnergyRange, inv.Kind)
	assert.Equal(t, id, inv.ID)
}

func TestRemovalDissolvesPartnership(t *testing.T) {
	eco := newEcosystem(t, emptyConfig())
	a := add(t, eco, "Deer")
	b := add(t, eco, "Deer")
	require.NoError(t, eco.pairing.Link(a, b))

	ent, _ := eco.store.Entity(a)
	eco.remove(ent, telemetry.CauseHealth)

	v, ok := eco.Organism(b)
	require.True(t, ok)
	assert.Equal(t, uint32(0), v.Partner)
	require.NoError(t, eco.CheckInvariants())
}

func TestTelemetryOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	require.NoError(t, err)

	var windows []telemetry.WindowStats
	eco, err := NewWithOptions(config.Default(), rand.New(rand.NewSource(3)), Options{
		StatsWindow:   10,
		Perf:          true,
		Output:        out,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		eco.Tick()
	}
	require.NoError(t, out.Close())

	require.Len(t, windows, 2)
	assert.Equal(t, 10, windows[0].WindowEndTick)
	assert.Equal(t, 20, windows[1].WindowEndTick)
	assert.Equal(t, eco.Len(), windows[1].Plants+windows[1].Herbivores+windows[1].Carnivores)
	assert.Equal(t, 20, eco.Perf().Samples())

	for _, name := range []string{"telemetry.csv", "perf.csv", "population.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() []OrganismView {
		eco, err := New(config.Default(), rand.New(rand.NewSource(99)))
		require.NoError(t, err)
		for i := 0; i < 50; i++ {
			eco.Tick()
		}
		return eco.Organisms()
	}
	assert.Equal(t, run(), run())
}
