package pallet

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// Ensure AccessibleComponent satisfies Component
var _ Component = AccessibleComponent[struct{}]{}

// AccessibleComponent extends a registered component id with typed access to
// entity slots. Values are cheap and freely copyable; all instances for the
// same T share one id.
type AccessibleComponent[T any] struct {
	id ComponentID
}

// ID returns the component id.
func (c AccessibleComponent[T]) ID() ComponentID {
	return c.id
}

// Type returns the component's Go type.
func (c AccessibleComponent[T]) Type() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

func (c AccessibleComponent[T]) newPool() pool {
	return newComponentPool[T](c.id, blockSizeFor(c.id))
}

// Read declares read-only access to the component in a system access set.
func (c AccessibleComponent[T]) Read() ComponentAccess {
	return ComponentAccess{component: c}
}

// Mut declares write access to the component in a system access set.
func (c AccessibleComponent[T]) Mut() ComponentAccess {
	return ComponentAccess{component: c, writes: true}
}

// Add constructs the component in place on the entity from v and returns the
// stored instance. The entity must not already carry the component.
func (c AccessibleComponent[T]) Add(e EntityHandle, v T) *T {
	w := e.world
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.inRange(e.id) {
		panic(bark.AddTrace(EntityNotFoundError{Entity: e.id}))
	}
	ptr := typedPool[T](w, c.id).add(e.id, v)
	w.entities.mark(e.id, uint32(c.id))
	return ptr
}

// Has reports whether the entity carries the component.
func (c AccessibleComponent[T]) Has(e EntityHandle) bool {
	p := e.world.pools[c.id]
	return p != nil && p.has(e.id)
}

// GetFromEntity returns the entity's instance of the component. The entity
// must carry it.
func (c AccessibleComponent[T]) GetFromEntity(e EntityHandle) *T {
	p := e.world.pools[c.id]
	if p == nil {
		panic(bark.AddTrace(ComponentNotFoundError{Name: ComponentName(c.id), Entity: e.id}))
	}
	return p.(*ComponentPool[T]).get(e.id)
}

// GetOrAdd returns the entity's instance of the component, constructing a zero
// value in place first if the entity does not carry it yet.
func (c AccessibleComponent[T]) GetOrAdd(e EntityHandle) *T {
	w := e.world
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.inRange(e.id) {
		panic(bark.AddTrace(EntityNotFoundError{Entity: e.id}))
	}
	tp := typedPool[T](w, c.id)
	if tp.has(e.id) {
		return tp.get(e.id)
	}
	var zero T
	ptr := tp.add(e.id, zero)
	w.entities.mark(e.id, uint32(c.id))
	return ptr
}

// Remove destroys the entity's instance of the component. The entity must
// carry it.
func (c AccessibleComponent[T]) Remove(e EntityHandle) {
	w := e.world
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.pools[c.id]
	if p == nil {
		panic(bark.AddTrace(ComponentNotFoundError{Name: ComponentName(c.id), Entity: e.id}))
	}
	p.remove(e.id)
	w.entities.unmark(e.id, uint32(c.id))
}
