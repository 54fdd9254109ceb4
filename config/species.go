package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Diet determines how an organism gains energy and what it preys on.
type Diet uint8

const (
	DietPlant Diet = iota
	DietHerbivore
	DietCarnivore
)

var dietNames = [...]string{"Plant", "Herbivore", "Carnivore"}

// String returns the diet name as written in configuration.
func (d Diet) String() string {
	if int(d) < len(dietNames) {
		return dietNames[d]
	}
	return fmt.Sprintf("Diet(%d)", d)
}

// IsPlant reports whether the diet is photosynthetic.
func (d Diet) IsPlant() bool {
	return d == DietPlant
}

// Eats reports whether an organism with this diet may consume prey of diet other.
func (d Diet) Eats(other Diet) bool {
	switch d {
	case DietHerbivore:
		return other == DietPlant
	case DietCarnivore:
		return other == DietHerbivore
	}
	return false
}

// ParseDiet converts a configured diet name.
func ParseDiet(s string) (Diet, error) {
	for i, name := range dietNames {
		if name == s {
			return Diet(i), nil
		}
	}
	return 0, fmt.Errorf("unknown diet %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Diet) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDiet(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Diet) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Species is the immutable descriptor shared by every organism of one species.
type Species struct {
	Name                  string  `yaml:"-"`
	Color                 []int   `yaml:"color,omitempty"`
	Size                  float64 `yaml:"size"`
	Diet                  Diet    `yaml:"diet"`
	OptimalTemp           float64 `yaml:"optimal_temp"`
	EnergyConsumption     float64 `yaml:"energy_consumption"`
	Lifespan              int     `yaml:"lifespan"` // informational, never enforced
	ReproductionRate      float64 `yaml:"reproduction_rate"`
	MutationChance        float64 `yaml:"mutation_chance"`
	MinReproductionEnergy float64 `yaml:"min_reproduction_energy"` // informational, gates nothing
	CompetitionRadius     float64 `yaml:"competition_radius,omitempty"`
	Speed                 float64 `yaml:"speed,omitempty"` // 0 = organism.default_speed

	// keys required by the schema but absent from the YAML mapping
	missing []string
}

// requiredSpeciesKeys lists the keys every species mapping must carry.
var requiredSpeciesKeys = []string{
	"diet",
	"optimal_temp",
	"energy_consumption",
	"reproduction_rate",
	"mutation_chance",
}

// UnmarshalYAML records which required keys are missing so validation can
// report them against the species name.
func (s *Species) UnmarshalYAML(value *yaml.Node) error {
	type plain Species
	if err := value.Decode((*plain)(s)); err != nil {
		return err
	}

	present := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		present[value.Content[i].Value] = true
	}
	s.missing = s.missing[:0]
	for _, key := range requiredSpeciesKeys {
		if !present[key] {
			s.missing = append(s.missing, key)
		}
	}
	if s.Diet == DietPlant && !present["competition_radius"] {
		s.missing = append(s.missing, "competition_radius")
	}
	return nil
}

func (s *Species) validate() error {
	if len(s.missing) > 0 {
		return &ConfigError{Species: s.Name, Field: s.missing[0], Reason: "required field missing"}
	}
	if s.Diet > DietCarnivore {
		return &ConfigError{Species: s.Name, Field: "diet", Reason: "unknown diet"}
	}
	if s.EnergyConsumption < 0 {
		return &ConfigError{Species: s.Name, Field: "energy_consumption", Reason: "must not be negative"}
	}
	if s.ReproductionRate < 0 || s.ReproductionRate > 1 {
		return &ConfigError{Species: s.Name, Field: "reproduction_rate", Reason: "must be a probability"}
	}
	if s.MutationChance < 0 || s.MutationChance > 1 {
		return &ConfigError{Species: s.Name, Field: "mutation_chance", Reason: "must be a probability"}
	}
	if s.Diet.IsPlant() && s.CompetitionRadius <= 0 {
		return &ConfigError{Species: s.Name, Field: "competition_radius", Reason: "plants need a positive radius"}
	}
	if s.Speed < 0 {
		return &ConfigError{Species: s.Name, Field: "speed", Reason: "must not be negative"}
	}
	return nil
}

// MoveSpeed returns the species speed, falling back to def when unset.
func (s *Species) MoveSpeed(def float64) float64 {
	if s.Speed > 0 {
		return s.Speed
	}
	return def
}
