package pallet

import (
	"sync"

	"github.com/TheBitDrifter/mask"
)

// SystemConfig carries the two dispatch flags. Async runs the system on its
// own goroutine and returns immediately; Parallel spreads per-entity work
// across GOMAXPROCS workers inside whichever goroutine drives the iteration.
type SystemConfig struct {
	Async    bool
	Parallel bool
}

// ComponentAccess declares one component of a system's access set together
// with its access mode. Build values with AccessibleComponent.Read and
// AccessibleComponent.Mut.
type ComponentAccess struct {
	component Component
	writes    bool
}

// Component returns the accessed component.
func (a ComponentAccess) Component() Component {
	return a.component
}

// Writes reports whether the access is mutable.
func (a ComponentAccess) Writes() bool {
	return a.writes
}

// RunningSystem records one asynchronously dispatched system: the masks the
// scheduler conflicts against and the worker to join.
type RunningSystem struct {
	readMask  mask.Mask
	writeMask mask.Mask
	done      chan struct{}
	joined    bool
}

// dispatcher tracks not-yet-joined async systems. Only writes create
// conflicts: a dispatch waits for every running system whose write mask
// intersects its own full mask, and for nothing else.
type dispatcher struct {
	mu      sync.Mutex
	running []*RunningSystem
}

func (d *dispatcher) track(rs *RunningSystem) {
	d.mu.Lock()
	d.running = append(d.running, rs)
	d.mu.Unlock()
}

// joinConflicting blocks until every running system whose write mask
// intersects full has completed, then purges the joined entries.
func (d *dispatcher) joinConflicting(full mask.Mask) {
	d.mu.Lock()
	var conflicting []*RunningSystem
	for _, rs := range d.running {
		if !rs.joined && rs.writeMask.ContainsAny(full) {
			conflicting = append(conflicting, rs)
		}
	}
	d.mu.Unlock()

	for _, rs := range conflicting {
		<-rs.done
	}

	d.mu.Lock()
	for _, rs := range conflicting {
		rs.joined = true
	}
	d.purgeJoinedLocked()
	d.mu.Unlock()
}

// joinAll blocks until every running system has completed and empties the
// running list.
func (d *dispatcher) joinAll() {
	d.mu.Lock()
	pending := make([]*RunningSystem, 0, len(d.running))
	for _, rs := range d.running {
		if !rs.joined {
			pending = append(pending, rs)
		}
	}
	d.mu.Unlock()

	for _, rs := range pending {
		<-rs.done
	}

	d.mu.Lock()
	for _, rs := range pending {
		rs.joined = true
	}
	d.purgeJoinedLocked()
	d.mu.Unlock()
}

func (d *dispatcher) hasRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.running) > 0
}

func (d *dispatcher) purgeJoinedLocked() {
	remaining := d.running[:0]
	for _, rs := range d.running {
		if !rs.joined {
			remaining = append(remaining, rs)
		}
	}
	d.running = remaining
}
