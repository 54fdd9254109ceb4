package ecosystem

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/traits"
)

// OrganismView is a read-only copy of one organism for presentation.
type OrganismView struct {
	ID      uint32
	Species string
	Diet    config.Diet
	Kind    components.Kind
	Color   []int

	X, Y   float64
	Radius float64

	Energy        float64
	Health        float64
	Age           int
	ReproCooldown int
	Partner       uint32 // 0 when unpaired

	Genetics traits.Genetics

	// Lifetime counters
	Children int
	Kills    int
	Pairings int
}

// Organisms returns a snapshot of every live organism in live order.
func (e *Ecosystem) Organisms() []OrganismView {
	views := make([]OrganismView, 0, len(e.live))
	for _, ent := range e.live {
		views = append(views, e.view(ent))
	}
	return views
}

// Organism returns the view of a single live organism by ID.
func (e *Ecosystem) Organism(id uint32) (OrganismView, bool) {
	ent, ok := e.store.Entity(id)
	if !ok {
		return OrganismView{}, false
	}
	return e.view(ent), true
}

func (e *Ecosystem) view(ent ecs.Entity) OrganismView {
	pos, v, org := e.store.Get(ent)
	view := OrganismView{
		ID:      org.ID,
		Species: org.Species.Name,
		Diet:    org.Diet(),
		Kind:    org.Kind(),
		Color:   org.Species.Color,

		X:      pos.X,
		Y:      pos.Y,
		Radius: e.store.Body(ent).Radius,

		Energy:        v.Energy,
		Health:        v.Health,
		Age:           v.Age,
		ReproCooldown: v.ReproCooldown,

		Genetics: org.Genetics,
	}
	if partner, ok := e.pairing.Partner(org.ID); ok {
		view.Partner = partner
	}
	if lt := e.lifetimes.Get(org.ID); lt != nil {
		view.Children = lt.Children
		view.Kills = lt.Kills
		view.Pairings = lt.Pairings
	}
	return view
}
