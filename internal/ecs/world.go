package ecs

// Positioned is implemented by the component that places an entity on a map
// tile. The world maintains a tile index over whichever component type
// implements it.
type Positioned interface {
	Component
	XY() (int, int)
}

// World is the central entity registry and component store.
type World struct {
	nextID     EntityID
	alive      map[EntityID]bool
	components map[ComponentType]map[EntityID]Component

	// Tile index over the Positioned component, rebuilt lazily. Any write
	// that can move or remove an entity marks it dirty; callers that mutate
	// entities behind the world's back call InvalidatePositions.
	posType  ComponentType
	hasPos   bool
	posDirty bool
	byTile   map[[2]int][]EntityID
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// DestroyEntity marks the entity dead and removes all its components.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	w.alive[id] = false
	for _, store := range w.components {
		delete(store, id)
	}
	w.posDirty = true
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Add attaches a component to an entity, replacing any existing component of
// the same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
	if _, ok := c.(Positioned); ok {
		w.posType = t
		w.hasPos = true
		w.posDirty = true
	}
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
		if w.hasPos && t == w.posType {
			w.posDirty = true
		}
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Query returns all alive entities that have every listed component type.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	store := w.components[smallest]
	if store == nil {
		return nil
	}
	var result []EntityID
	for id := range store {
		if !w.alive[id] {
			continue
		}
		match := true
		for _, t := range types {
			if t == smallest {
				continue
			}
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}

// EntitiesAt returns all alive entities whose Positioned component sits on
// tile (x, y). The underlying index is rebuilt on demand.
func (w *World) EntitiesAt(x, y int) []EntityID {
	if !w.hasPos {
		return nil
	}
	if w.posDirty || w.byTile == nil {
		w.rebuildTileIndex()
	}
	return w.byTile[[2]int{x, y}]
}

// InvalidatePositions forces the tile index to be rebuilt on next use. The
// damage pipeline calls this after corpse conversion so stale entries never
// survive a death.
func (w *World) InvalidatePositions() {
	w.posDirty = true
}

func (w *World) rebuildTileIndex() {
	w.byTile = make(map[[2]int][]EntityID)
	for id, c := range w.components[w.posType] {
		if !w.alive[id] {
			continue
		}
		x, y := c.(Positioned).XY()
		key := [2]int{x, y}
		w.byTile[key] = append(w.byTile[key], id)
	}
	w.posDirty = false
}
