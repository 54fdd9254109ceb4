package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownSpecies is matched by errors.Is for any UnknownSpeciesError.
var ErrUnknownSpecies = errors.New("unknown species")

// ConfigError reports an invalid or incomplete configuration entry.
type ConfigError struct {
	Species string
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Species != "" && e.Field != "":
		return fmt.Sprintf("config: species %q: %s: %s", e.Species, e.Field, e.Reason)
	case e.Species != "":
		return fmt.Sprintf("config: species %q: %s", e.Species, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
	}
	return "config: " + e.Reason
}

// UnknownSpeciesError is returned when a species name is not in the species table.
type UnknownSpeciesError struct {
	Name       string
	Suggestion string // closest configured name, empty if nothing is close
}

func (e *UnknownSpeciesError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown species %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown species %q", e.Name)
}

// Is lets errors.Is match ErrUnknownSpecies.
func (e *UnknownSpeciesError) Is(target error) bool {
	return target == ErrUnknownSpecies
}

func newUnknownSpeciesError(name string, table map[string]*Species) *UnknownSpeciesError {
	return &UnknownSpeciesError{Name: name, Suggestion: closestSpecies(name, table)}
}

// closestSpecies returns the configured name with the smallest edit distance
// to name, provided the distance is small relative to the name length.
func closestSpecies(name string, table map[string]*Species) string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sort.Strings(names)

	best, bestDist := "", -1
	for _, cand := range names {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
