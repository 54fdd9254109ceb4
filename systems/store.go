// Package systems provides the ECS systems that implement organism behaviour.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/traits"
)

// Store owns the mappers over the organism archetype and the ID index.
// Component pointers returned by Get are only valid until the next Spawn or
// Remove; callers re-fetch after any structural change.
type Store struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Vitals, components.Organism, components.Body]
	posMap *ecs.Map[components.Position]
	vitMap *ecs.Map[components.Vitals]
	orgMap *ecs.Map[components.Organism]
	filter *ecs.Filter2[components.Vitals, components.Organism]

	byID   map[uint32]ecs.Entity
	nextID uint32
}

// NewStore creates a store over the given world.
func NewStore(w *ecs.World) *Store {
	return &Store{
		world:  w,
		mapper: ecs.NewMap4[components.Position, components.Vitals, components.Organism, components.Body](w),
		posMap: ecs.NewMap[components.Position](w),
		vitMap: ecs.NewMap[components.Vitals](w),
		orgMap: ecs.NewMap[components.Organism](w),
		filter: ecs.NewFilter2[components.Vitals, components.Organism](w),
		byID:   make(map[uint32]ecs.Entity),
		nextID: 1, // 0 means "no organism"
	}
}

// Spawn creates an organism and returns its entity and stable ID.
func (s *Store) Spawn(sp *config.Species, pos components.Position, g traits.Genetics, v components.Vitals) (ecs.Entity, uint32) {
	id := s.nextID
	s.nextID++

	org := components.Organism{ID: id, Species: sp, Genetics: g}
	body := components.NewBody(sp.Size, g.Size)
	e := s.mapper.NewEntity(&pos, &v, &org, &body)
	s.byID[id] = e
	return e, id
}

// Remove deletes the organism from the world.
func (s *Store) Remove(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	delete(s.byID, s.orgMap.Get(e).ID)
	s.world.RemoveEntity(e)
}

// Alive reports whether the entity still exists.
func (s *Store) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Entity resolves a stable organism ID.
func (s *Store) Entity(id uint32) (ecs.Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Get returns the core components of an organism.
func (s *Store) Get(e ecs.Entity) (*components.Position, *components.Vitals, *components.Organism) {
	return s.posMap.Get(e), s.vitMap.Get(e), s.orgMap.Get(e)
}

// Position returns the position component.
func (s *Store) Position(e ecs.Entity) *components.Position {
	return s.posMap.Get(e)
}

// Vitals returns the vitals component.
func (s *Store) Vitals(e ecs.Entity) *components.Vitals {
	return s.vitMap.Get(e)
}

// Organism returns the organism component.
func (s *Store) Organism(e ecs.Entity) *components.Organism {
	return s.orgMap.Get(e)
}

// Body returns all four components, including the presentation body.
func (s *Store) Body(e ecs.Entity) *components.Body {
	_, _, _, body := s.mapper.Get(e)
	return body
}

// Len returns the number of live organisms.
func (s *Store) Len() int {
	return len(s.byID)
}

// Each calls fn for every organism in storage order. fn must not spawn or
// remove organisms.
func (s *Store) Each(fn func(v *components.Vitals, org *components.Organism)) {
	query := s.filter.Query()
	for query.Next() {
		v, org := query.Get()
		fn(v, org)
	}
}
