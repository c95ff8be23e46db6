package pallet

import (
	"container/heap"

	"github.com/TheBitDrifter/mask"
)

// EntityID identifies an entity within a World. Ids are dense: registry
// arrays are indexed by id directly, and destroyed ids are recycled
// smallest-first so the arrays stay compact.
type EntityID uint32

// idHeap is a min-heap of recycled entity ids.
type idHeap []EntityID

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any)         { *h = append(*h, x.(EntityID)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	id := old[n-1]
	*h = old[:n-1]
	return id
}

// entityIndex holds per-entity metadata in parallel slices indexed by id: the
// component mask, the valid flag gating iteration visibility, and a recycled
// counter guarding deferred operations against id reuse.
type entityIndex struct {
	masks    []mask.Mask
	valid    []bool
	recycled []int
	free     idHeap
}

// create returns a fresh or recycled id with a zero mask. The entity starts
// invalid: iteration skips it until it is flushed.
func (ei *entityIndex) create() EntityID {
	if ei.free.Len() > 0 {
		id := heap.Pop(&ei.free).(EntityID)
		ei.masks[id] = mask.Mask{}
		ei.valid[id] = false
		return id
	}
	id := EntityID(len(ei.masks))
	ei.masks = append(ei.masks, mask.Mask{})
	ei.valid = append(ei.valid, false)
	ei.recycled = append(ei.recycled, 0)
	return id
}

// release zeroes the entity's slot and pushes its id on the free list. The
// entity becomes immediately invisible to iteration.
func (ei *entityIndex) release(id EntityID) {
	ei.masks[id] = mask.Mask{}
	ei.valid[id] = false
	ei.recycled[id]++
	heap.Push(&ei.free, id)
}

func (ei *entityIndex) mark(id EntityID, bit uint32) {
	ei.masks[id].Mark(bit)
}

func (ei *entityIndex) unmark(id EntityID, bit uint32) {
	ei.masks[id].Unmark(bit)
}

// maskOf returns the entity's component mask; ids outside the index report an
// empty mask, which is how stale handles read as dead.
func (ei *entityIndex) maskOf(id EntityID) mask.Mask {
	if !ei.inRange(id) {
		return mask.Mask{}
	}
	return ei.masks[id]
}

func (ei *entityIndex) inRange(id EntityID) bool {
	return int(id) < len(ei.masks)
}

func (ei *entityIndex) isValid(id EntityID) bool {
	return ei.inRange(id) && ei.valid[id]
}

func (ei *entityIndex) recycledOf(id EntityID) int {
	if !ei.inRange(id) {
		return 0
	}
	return ei.recycled[id]
}

// flush marks the entity valid, exposing it to iteration.
func (ei *entityIndex) flush(id EntityID) {
	ei.valid[id] = true
}

// flushAll marks every entity valid.
func (ei *entityIndex) flushAll() {
	for i := range ei.valid {
		ei.valid[i] = true
	}
}

func (ei *entityIndex) hasComponents(id EntityID, m mask.Mask) bool {
	return ei.inRange(id) && ei.masks[id].ContainsAll(m)
}

// matches reports whether id is visible to iteration and its mask covers m.
func (ei *entityIndex) matches(id EntityID, m mask.Mask) bool {
	return ei.valid[id] && ei.masks[id].ContainsAll(m)
}

// size returns the number of id slots, live or recycled.
func (ei *entityIndex) size() int {
	return len(ei.masks)
}

func (ei *entityIndex) liveCount() int {
	return len(ei.masks) - ei.free.Len()
}

func (ei *entityIndex) reset() {
	ei.masks = nil
	ei.valid = nil
	ei.recycled = nil
	ei.free = nil
}
