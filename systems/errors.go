package systems

import (
	"errors"
	"fmt"
)

// ErrInvariant is matched by errors.Is for every InvariantError.
var ErrInvariant = errors.New("invariant violation")

// InvariantKind names a broken simulation invariant.
type InvariantKind string

const (
	InvariantSelfPartner   InvariantKind = "self_partner"
	InvariantAlreadyPaired InvariantKind = "already_paired"
	InvariantAsymmetric    InvariantKind = "asymmetric_partner"
	InvariantDangling      InvariantKind = "dangling_partner"
	InvariantCrossSpecies  InvariantKind = "cross_species_partner"
	InvariantEnergyRange   InvariantKind = "energy_out_of_range"
	InvariantHealthRange   InvariantKind = "health_out_of_range"
)

// InvariantError reports a programming defect in the simulation state.
// It is never expected at runtime and is not recoverable.
type InvariantError struct {
	Kind   InvariantKind
	ID     uint32
	Other  uint32
	Detail string
}

func (e *InvariantError) Error() string {
	msg := fmt.Sprintf("invariant %s: organism %d", e.Kind, e.ID)
	if e.Other != 0 {
		msg += fmt.Sprintf(" (other %d)", e.Other)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is lets errors.Is match ErrInvariant.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
