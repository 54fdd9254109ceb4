package systems

import (
	"fmt"
	"sort"
)

// Pairing is the symmetric partner relation between animals, keyed by
// organism ID. Every entry a -> b has a matching b -> a.
type Pairing struct {
	partners map[uint32]uint32
}

// NewPairing creates an empty relation.
func NewPairing() *Pairing {
	return &Pairing{partners: make(map[uint32]uint32)}
}

// Partner returns the partner of id, if any.
func (p *Pairing) Partner(id uint32) (uint32, bool) {
	other, ok := p.partners[id]
	return other, ok
}

// Paired reports whether id currently has a partner.
func (p *Pairing) Paired(id uint32) bool {
	_, ok := p.partners[id]
	return ok
}

// Link pairs a and b. Both must be distinct and unpartnered.
func (p *Pairing) Link(a, b uint32) error {
	if a == b {
		return &InvariantError{Kind: InvariantSelfPartner, ID: a}
	}
	if other, ok := p.partners[a]; ok {
		return &InvariantError{Kind: InvariantAlreadyPaired, ID: a, Other: other}
	}
	if other, ok := p.partners[b]; ok {
		return &InvariantError{Kind: InvariantAlreadyPaired, ID: b, Other: other}
	}
	p.partners[a] = b
	p.partners[b] = a
	return nil
}

// Unlink clears the partnership of id on both sides. It reports whether a
// partnership existed.
func (p *Pairing) Unlink(id uint32) bool {
	other, ok := p.partners[id]
	if !ok {
		return false
	}
	delete(p.partners, id)
	if back, ok := p.partners[other]; ok && back == id {
		delete(p.partners, other)
	}
	return true
}

// Len returns the number of partnerships.
func (p *Pairing) Len() int {
	return len(p.partners) / 2
}

// Check verifies the relation against the live set. resolve returns the
// species name of a live organism and false for unknown IDs.
func (p *Pairing) Check(resolve func(id uint32) (string, bool)) error {
	ids := make([]uint32, 0, len(p.partners))
	for id := range p.partners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, a := range ids {
		b := p.partners[a]
		if a == b {
			return &InvariantError{Kind: InvariantSelfPartner, ID: a}
		}
		if back, ok := p.partners[b]; !ok || back != a {
			return &InvariantError{Kind: InvariantAsymmetric, ID: a, Other: b}
		}
		speciesA, okA := resolve(a)
		if !okA {
			return &InvariantError{Kind: InvariantDangling, ID: a, Other: b}
		}
		speciesB, okB := resolve(b)
		if !okB {
			return &InvariantError{Kind: InvariantDangling, ID: b, Other: a}
		}
		if speciesA != speciesB {
			return &InvariantError{
				Kind:   InvariantCrossSpecies,
				ID:     a,
				Other:  b,
				Detail: fmt.Sprintf("%s with %s", speciesA, speciesB),
			}
		}
	}
	return nil
}
