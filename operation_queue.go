package pallet

import "sync"

// EntityOperation represents a structural change that can be applied to a
// world at a tick boundary
type EntityOperation interface {
	Apply(*World) error
}

// EntityOperationsQueue provides an interface for queuing and processing
// operations
type EntityOperationsQueue interface {
	Enqueue(EntityOperation)
	ProcessAll(*World) error
}

// entityOperationsQueue holds a list of operations to be processed. Systems
// enqueue from their own workers, so the queue carries its own lock.
type entityOperationsQueue struct {
	mu         sync.Mutex
	operations []EntityOperation
}

// Enqueue adds an operation to the queue
func (queue *entityOperationsQueue) Enqueue(op EntityOperation) {
	queue.mu.Lock()
	queue.operations = append(queue.operations, op)
	queue.mu.Unlock()
}

// ProcessAll applies all queued operations to the provided world and clears
// the queue afterward. If workers are still running, operations stay queued
// for the next boundary.
func (queue *entityOperationsQueue) ProcessAll(w *World) error {
	if w.dispatcher.hasRunning() {
		return nil
	}
	queue.mu.Lock()
	pending := queue.operations
	queue.operations = nil
	queue.mu.Unlock()
	for _, op := range pending {
		if err := op.Apply(w); err != nil {
			return err
		}
	}
	return nil
}

// NewEntityOperation creates multiple entities with the same components
type NewEntityOperation struct {
	count      int
	components []Component
}

// Apply creates the entities with zero values of the components
func (op NewEntityOperation) Apply(w *World) error {
	_, err := w.NewEntities(op.count, op.components...)
	return err
}

// DestroyEntityOperation removes an entity from the world
type DestroyEntityOperation struct {
	entity   EntityID
	recycled int
}

// Apply destroys the entity unless its id was already recycled
func (op DestroyEntityOperation) Apply(w *World) error {
	if !w.entities.inRange(op.entity) {
		return nil
	}
	if w.entities.recycledOf(op.entity) != op.recycled {
		return nil
	}
	w.DestroyEntity(op.entity)
	return nil
}

// AddComponentOperation attaches a zero-valued component to an entity
type AddComponentOperation struct {
	entity    EntityID
	recycled  int
	component Component
}

// Apply adds the component if the entity still exists and does not carry it
func (op AddComponentOperation) Apply(w *World) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.inRange(op.entity) {
		return nil
	}
	if w.entities.recycledOf(op.entity) != op.recycled {
		return nil
	}
	p := w.poolForLocked(op.component)
	if p.has(op.entity) {
		return nil
	}
	p.addZero(op.entity)
	w.entities.mark(op.entity, uint32(op.component.ID()))
	return nil
}

// RemoveComponentOperation detaches a component from an entity
type RemoveComponentOperation struct {
	entity    EntityID
	recycled  int
	component Component
}

// Apply removes the component if the entity still exists and carries it
func (op RemoveComponentOperation) Apply(w *World) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.inRange(op.entity) {
		return nil
	}
	if w.entities.recycledOf(op.entity) != op.recycled {
		return nil
	}
	p := w.pools[op.component.ID()]
	if p == nil || !p.has(op.entity) {
		return nil
	}
	p.remove(op.entity)
	w.entities.unmark(op.entity, uint32(op.component.ID()))
	return nil
}

// EnqueueNewEntities either creates entities immediately or, while systems are
// running, queues the creation for the next FinishTick.
func (w *World) EnqueueNewEntities(count int, components ...Component) error {
	if !w.dispatcher.hasRunning() {
		_, err := w.NewEntities(count, components...)
		return err
	}
	w.queue.Enqueue(NewEntityOperation{count: count, components: components})
	return nil
}

// EnqueueDestroyEntity either destroys the entity immediately or, while
// systems are running, queues the destruction for the next FinishTick. A
// queued destruction is dropped if the id is recycled before it applies.
func (w *World) EnqueueDestroyEntity(e EntityHandle) error {
	if !w.dispatcher.hasRunning() {
		w.DestroyEntity(e.id)
		return nil
	}
	w.queue.Enqueue(DestroyEntityOperation{
		entity:   e.id,
		recycled: w.entities.recycledOf(e.id),
	})
	return nil
}

// EnqueueAddComponent either attaches a zero-valued component immediately or,
// while systems are running, queues the addition for the next FinishTick.
func (w *World) EnqueueAddComponent(e EntityHandle, c Component) error {
	if !w.dispatcher.hasRunning() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if !w.entities.inRange(e.id) {
			return EntityNotFoundError{Entity: e.id}
		}
		p := w.poolForLocked(c)
		if p.has(e.id) {
			return nil
		}
		p.addZero(e.id)
		w.entities.mark(e.id, uint32(c.ID()))
		return nil
	}
	w.queue.Enqueue(AddComponentOperation{
		entity:    e.id,
		recycled:  w.entities.recycledOf(e.id),
		component: c,
	})
	return nil
}

// EnqueueRemoveComponent either detaches the component immediately or, while
// systems are running, queues the removal for the next FinishTick.
func (w *World) EnqueueRemoveComponent(e EntityHandle, c Component) error {
	if !w.dispatcher.hasRunning() {
		w.mu.Lock()
		defer w.mu.Unlock()
		p := w.pools[c.ID()]
		if p == nil || !p.has(e.id) {
			return nil
		}
		p.remove(e.id)
		w.entities.unmark(e.id, uint32(c.ID()))
		return nil
	}
	w.queue.Enqueue(RemoveComponentOperation{
		entity:    e.id,
		recycled:  w.entities.recycledOf(e.id),
		component: c,
	})
	return nil
}
