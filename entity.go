package pallet

import (
	"sort"
	"strings"

	"github.com/TheBitDrifter/mask"
)

// EntityHandle is a value pair of world and id. Handles may be copied freely;
// two handles are equal iff they reference the same id in the same world.
// Entities have no storage of their own beyond their slot in the index, so a
// handle stays cheap no matter how many components the entity carries.
type EntityHandle struct {
	world *World
	id    EntityID
}

// ID returns the entity's id.
func (e EntityHandle) ID() EntityID {
	return e.id
}

// World returns the world the handle references.
func (e EntityHandle) World() *World {
	return e.world
}

// Mask returns the entity's component mask. A destroyed or never-created id
// reports an empty mask.
func (e EntityHandle) Mask() mask.Mask {
	return e.world.entities.maskOf(e.id)
}

// Alive reports whether the entity still carries any component; code that
// stored a handle across a batch of destructions checks this before touching
// the entity again.
func (e EntityHandle) Alive() bool {
	return !e.Mask().IsEmpty()
}

// Valid reports whether the entity has been flushed and is visible to
// iteration.
func (e EntityHandle) Valid() bool {
	return e.world.entities.isValid(e.id)
}

// Flush marks the entity valid, exposing it to iteration before the next tick
// boundary.
func (e EntityHandle) Flush() {
	e.world.Flush(e.id)
}

// Destroy removes all the entity's components and recycles its id.
func (e EntityHandle) Destroy() {
	e.world.DestroyEntity(e.id)
}

// ComponentsAsString returns a sorted, formatted string of the names of the
// components the entity carries.
func (e EntityHandle) ComponentsAsString() string {
	var names []string
	for _, p := range e.world.pools {
		if p != nil && p.has(e.id) {
			name := ComponentName(p.componentID())
			parts := strings.Split(name, ".")
			names = append(names, parts[len(parts)-1])
		}
	}
	if len(names) == 0 {
		return "[]"
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}
