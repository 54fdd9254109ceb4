package systems

import (
	"math"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/environment"
)

// PlantGain returns the photosynthetic energy a plant earns this tick,
// before its species consumption is subtracted.
func PlantGain(f environment.Factors, seasonMult float64, cfg config.OrganismConfig) float64 {
	gain := f.Sunlight*cfg.SunlightWeight +
		f.WaterLevel*cfg.WaterWeight +
		(1-f.Humidity)*cfg.DrynessWeight
	return gain * seasonMult
}

// UpdateEnergy applies one tick of metabolism.
// Plants photosynthesise and pay consumption, clamped to [0, max].
// Animals only pay consumption scaled by efficiency; they gain energy
// through predation alone.
func UpdateEnergy(v *components.Vitals, org *components.Organism, env *environment.Environment, cfg config.OrganismConfig) {
	sp := org.Species
	if sp.Diet.IsPlant() {
		gain := PlantGain(env.Factors, env.PlantGrowth(), cfg)
		v.Energy = clampFloat(v.Energy+gain-sp.EnergyConsumption, 0, cfg.MaxEnergy)
		return
	}

	loss := sp.EnergyConsumption / org.Genetics.EnergyEfficiency
	v.Energy = math.Max(0, v.Energy-loss)
}

// TemperatureDamage returns the health lost to temperature stress. A
// tolerance above 1 would turn the damage into healing; it is floored at 0
// so health never recovers.
func TemperatureDamage(temp float64, org *components.Organism, cfg config.OrganismConfig) float64 {
	diff := math.Abs(temp - org.Species.OptimalTemp)
	damage := diff * (1 - org.Genetics.TemperatureTolerance) * cfg.TemperatureDamageScale
	return math.Max(0, damage)
}

// UpdateHealth applies temperature stress and the low-energy penalty.
func UpdateHealth(v *components.Vitals, org *components.Organism, env *environment.Environment, cfg config.OrganismConfig) {
	v.Health = math.Max(0, v.Health-TemperatureDamage(env.Factors.Temperature, org, cfg))

	if v.Energy < cfg.LowEnergyThreshold {
		v.Health = math.Max(0, v.Health-cfg.LowEnergyPenalty)
	}
}
