package pallet

import (
	"iter"
	"runtime"
	"sync"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"golang.org/x/sync/errgroup"
)

// World composes the entity index, one pool per registered component type, and
// the system dispatcher. A World is an ordinary value owned by the caller;
// nothing in the package holds a global instance.
type World struct {
	mu         sync.Mutex
	entities   entityIndex
	pools      [MaxComponents]pool
	dispatcher dispatcher
	queue      entityOperationsQueue
}

// CreateEntity allocates an entity with an empty mask. The entity stays
// invisible to iteration until flushed.
func (w *World) CreateEntity() EntityHandle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return EntityHandle{world: w, id: w.entities.create()}
}

// GetEntityHandle returns a handle for an id. Handles are pure values; a
// handle to a destroyed id reports an empty mask.
func (w *World) GetEntityHandle(id EntityID) EntityHandle {
	return EntityHandle{world: w, id: id}
}

// NewEntities creates n entities each carrying zero values of the given
// components. The entities stay invisible to iteration until flushed.
func (w *World) NewEntities(n int, components ...Component) ([]EntityHandle, error) {
	if n <= 0 {
		return nil, InvalidEntityCountError{Count: n}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	entities := make([]EntityHandle, n)
	for i := range entities {
		id := w.entities.create()
		for _, c := range components {
			w.addZeroLocked(id, c)
		}
		entities[i] = EntityHandle{world: w, id: id}
	}
	return entities, nil
}

// DestroyEntity removes every component the entity carries, zeroes its mask,
// and recycles its id. The entity is immediately invisible to iteration.
func (w *World) DestroyEntity(id EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.inRange(id) {
		panic(bark.AddTrace(EntityNotFoundError{Entity: id}))
	}
	for _, p := range w.pools {
		if p != nil && p.has(id) {
			p.remove(id)
		}
	}
	w.entities.release(id)
}

// HasComponents reports whether the entity carries every listed component.
func (w *World) HasComponents(id EntityID, components ...Component) bool {
	var m mask.Mask
	for _, c := range components {
		m.Mark(uint32(c.ID()))
	}
	return w.entities.hasComponents(id, m)
}

// HasMask reports whether the entity's mask covers m.
func (w *World) HasMask(id EntityID, m mask.Mask) bool {
	return w.entities.hasComponents(id, m)
}

// ComponentMask returns the entity's component mask.
func (w *World) ComponentMask(id EntityID) mask.Mask {
	return w.entities.maskOf(id)
}

// EntitiesWith returns a lazy forward sequence of the valid entities carrying
// every listed component.
func (w *World) EntitiesWith(components ...Component) iter.Seq[EntityHandle] {
	query := Factory.NewQuery()
	node := query.And(components)
	return Factory.NewCursor(node, w).Entities()
}

// Flush marks the listed entities valid, exposing them to iteration. With no
// arguments every entity is flushed.
func (w *World) Flush(ids ...EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(ids) == 0 {
		w.entities.flushAll()
		return
	}
	for _, id := range ids {
		if !w.entities.inRange(id) {
			panic(bark.AddTrace(EntityNotFoundError{Entity: id}))
		}
		w.entities.flush(id)
	}
}

// TickSystem dispatches fn over the valid entities whose mask covers the
// access set. The dispatch first waits for any running system whose write
// mask intersects the access set; with cfg.Async it then returns immediately
// and fn runs on its own worker.
func (w *World) TickSystem(cfg SystemConfig, fn SystemFunc, accesses ...ComponentAccess) {
	var readMask, writeMask, fullMask mask.Mask
	for _, a := range accesses {
		bit := uint32(a.component.ID())
		if a.writes {
			writeMask.Mark(bit)
		} else {
			readMask.Mark(bit)
		}
		fullMask.Mark(bit)
	}

	w.dispatcher.joinConflicting(fullMask)

	run := func() {
		w.forEachMatching(fullMask, cfg.Parallel, fn)
	}
	if !cfg.Async {
		run()
		return
	}

	rs := &RunningSystem{
		readMask:  readMask,
		writeMask: writeMask,
		done:      make(chan struct{}),
	}
	w.dispatcher.track(rs)
	go func() {
		defer close(rs.done)
		run()
	}()
}

// forEachMatching drives one dispatch. The entity range is snapshotted at
// entry; entities created mid-iteration are invalid and skipped either way.
func (w *World) forEachMatching(full mask.Mask, parallel bool, fn SystemFunc) {
	n := w.entities.size()
	if !parallel {
		for i := 0; i < n; i++ {
			id := EntityID(i)
			if w.entities.matches(id, full) {
				fn(EntityHandle{world: w, id: id})
			}
		}
		return
	}

	chunk := Config.ParallelChunkSize()
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < n; start += chunk {
		lo := start
		hi := min(start+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				id := EntityID(i)
				if w.entities.matches(id, full) {
					fn(EntityHandle{world: w, id: id})
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

// JoinSystemThreads blocks until every running system completes.
func (w *World) JoinSystemThreads() {
	w.dispatcher.joinAll()
}

// FinishTick is the tick boundary: it joins every running system, marks every
// entity valid, and applies the deferred operations queued during the tick.
func (w *World) FinishTick() {
	w.dispatcher.joinAll()
	w.mu.Lock()
	w.entities.flushAll()
	w.mu.Unlock()
	if err := w.queue.ProcessAll(w); err != nil {
		panic(bark.AddTrace(err))
	}
}

// Close joins residual workers and destroys all components and entities. The
// world is empty afterwards and may be reused.
func (w *World) Close() {
	w.dispatcher.joinAll()
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, p := range w.pools {
		if p != nil {
			p.clear()
			w.pools[i] = nil
		}
	}
	w.entities.reset()
}

// addZeroLocked attaches a zero value of c to the entity. Callers hold w.mu.
func (w *World) addZeroLocked(id EntityID, c Component) {
	p := w.poolForLocked(c)
	p.addZero(id)
	w.entities.mark(id, uint32(c.ID()))
}

// poolForLocked returns the pool for c, creating it on first use. Callers
// hold w.mu.
func (w *World) poolForLocked(c Component) pool {
	cid := c.ID()
	if w.pools[cid] == nil {
		w.pools[cid] = c.newPool()
	}
	return w.pools[cid]
}

// typedPool returns the pool for component id cid as its concrete type,
// creating it on first use. Callers hold w.mu. The downcast is guaranteed by
// the id-to-type mapping in the component registry.
func typedPool[T any](w *World, cid ComponentID) *ComponentPool[T] {
	p := w.pools[cid]
	if p == nil {
		tp := newComponentPool[T](cid, blockSizeFor(cid))
		w.pools[cid] = tp
		return tp
	}
	return p.(*ComponentPool[T])
}

// AddComponent constructs v in place on the entity and returns the stored
// instance, registering T on first use. The entity must not already carry T.
func AddComponent[T any](w *World, id EntityID, v T) *T {
	cid := RegisterComponent[T]()
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.inRange(id) {
		panic(bark.AddTrace(EntityNotFoundError{Entity: id}))
	}
	ptr := typedPool[T](w, cid).add(id, v)
	w.entities.mark(id, uint32(cid))
	return ptr
}

// GetComponent returns the entity's instance of T. The entity must carry it.
func GetComponent[T any](w *World, id EntityID) *T {
	cid := RegisterComponent[T]()
	p := w.pools[cid]
	if p == nil {
		panic(bark.AddTrace(ComponentNotFoundError{Name: ComponentName(cid), Entity: id}))
	}
	return p.(*ComponentPool[T]).get(id)
}

// HasComponent reports whether the entity carries T.
func HasComponent[T any](w *World, id EntityID) bool {
	cid := RegisterComponent[T]()
	p := w.pools[cid]
	return p != nil && p.has(id)
}

// RemoveComponent destroys the entity's instance of T. The entity must carry
// it.
func RemoveComponent[T any](w *World, id EntityID) {
	cid := RegisterComponent[T]()
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.pools[cid]
	if p == nil {
		panic(bark.AddTrace(ComponentNotFoundError{Name: ComponentName(cid), Entity: id}))
	}
	p.remove(id)
	w.entities.unmark(id, uint32(cid))
}

// EnsureComponent returns the entity's instance of T, constructing a zero
// value in place first if absent.
func EnsureComponent[T any](w *World, id EntityID) *T {
	cid := RegisterComponent[T]()
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.inRange(id) {
		panic(bark.AddTrace(EntityNotFoundError{Entity: id}))
	}
	tp := typedPool[T](w, cid)
	if tp.has(id) {
		return tp.get(id)
	}
	var zero T
	ptr := tp.add(id, zero)
	w.entities.mark(id, uint32(cid))
	return ptr
}

// TickSystem1 dispatches fn over the valid entities carrying C1, passing the
// component alongside the handle. The component counts as written for
// scheduling.
func TickSystem1[C1 any](w *World, cfg SystemConfig, fn func(EntityHandle, *C1)) {
	c1 := FactoryNewComponent[C1]()
	w.TickSystem(cfg, func(e EntityHandle) {
		fn(e, c1.GetFromEntity(e))
	}, c1.Mut())
}

// TickSystem2 dispatches fn over the valid entities carrying C1 and C2. Both
// components count as written for scheduling; use TickSystem with Read
// accesses when read-only concurrency matters.
func TickSystem2[C1, C2 any](w *World, cfg SystemConfig, fn func(EntityHandle, *C1, *C2)) {
	c1 := FactoryNewComponent[C1]()
	c2 := FactoryNewComponent[C2]()
	w.TickSystem(cfg, func(e EntityHandle) {
		fn(e, c1.GetFromEntity(e), c2.GetFromEntity(e))
	}, c1.Mut(), c2.Mut())
}

// TickSystem3 dispatches fn over the valid entities carrying C1, C2 and C3.
// All three components count as written for scheduling.
func TickSystem3[C1, C2, C3 any](w *World, cfg SystemConfig, fn func(EntityHandle, *C1, *C2, *C3)) {
	c1 := FactoryNewComponent[C1]()
	c2 := FactoryNewComponent[C2]()
	c3 := FactoryNewComponent[C3]()
	w.TickSystem(cfg, func(e EntityHandle) {
		fn(e, c1.GetFromEntity(e), c2.GetFromEntity(e), c3.GetFromEntity(e))
	}, c1.Mut(), c2.Mut(), c3.Mut())
}

// WorldStats contains statistics about a world.
type WorldStats struct {
	EntitySlots     int
	LiveEntities    int
	ComponentTypes  int
	TotalComponents int
}

// Stats returns statistics about the world.
func (w *World) Stats() WorldStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	stats := WorldStats{
		EntitySlots:  w.entities.size(),
		LiveEntities: w.entities.liveCount(),
	}
	for _, p := range w.pools {
		if p == nil {
			continue
		}
		stats.ComponentTypes++
		stats.TotalComponents += p.size()
	}
	return stats
}
