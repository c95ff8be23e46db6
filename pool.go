package pallet

import (
	"github.com/TheBitDrifter/bark"
)

// Ensure ComponentPool satisfies the type-erased pool surface
var _ pool = &ComponentPool[struct{}]{}

// block is one page of a pool: storage for blockSize slots plus a bit-packed
// occupancy set. Both are nil until the first slot is used and are released
// when the last slot empties; the block record itself stays so block indices
// remain stable.
type block[T any] struct {
	slots    []T
	occupied []uint64
	count    int
}

func (b *block[T]) isSet(off int) bool {
	return b.slots != nil && b.occupied[off/64]&(1<<uint(off%64)) != 0
}

// ComponentPool stores at most one T per entity id, in an ordered sequence of
// blocks. The slot for entity e is always at block e/blockSize, offset
// e%blockSize; no indirection table sits between an id and its component.
type ComponentPool[T any] struct {
	id        ComponentID
	blockSize int
	blocks    []block[T]
	count     int
}

func newComponentPool[T any](id ComponentID, blockSize int) *ComponentPool[T] {
	if blockSize <= 0 {
		blockSize = Config.DefaultBlockSize()
	}
	return &ComponentPool[T]{id: id, blockSize: blockSize}
}

func (p *ComponentPool[T]) locate(e EntityID) (int, int) {
	return int(e) / p.blockSize, int(e) % p.blockSize
}

// add constructs v in place in entity e's slot and returns the stored
// instance. The slot must be empty; block storage is allocated on first use.
func (p *ComponentPool[T]) add(e EntityID, v T) *T {
	bi, off := p.locate(e)
	for len(p.blocks) <= bi {
		p.blocks = append(p.blocks, block[T]{})
	}
	b := &p.blocks[bi]
	if b.slots == nil {
		b.slots = make([]T, p.blockSize)
		b.occupied = make([]uint64, (p.blockSize+63)/64)
	}
	word, bit := off/64, uint(off%64)
	if b.occupied[word]&(1<<bit) != 0 {
		panic(bark.AddTrace(ComponentExistsError{Name: ComponentName(p.id), Entity: e}))
	}
	b.occupied[word] |= 1 << bit
	b.count++
	p.count++
	b.slots[off] = v
	return &b.slots[off]
}

// has reports whether entity e's slot is occupied.
func (p *ComponentPool[T]) has(e EntityID) bool {
	bi, off := p.locate(e)
	if bi >= len(p.blocks) {
		return false
	}
	return p.blocks[bi].isSet(off)
}

// get returns the instance stored in entity e's slot. The slot must be
// occupied.
func (p *ComponentPool[T]) get(e EntityID) *T {
	bi, off := p.locate(e)
	if bi >= len(p.blocks) || !p.blocks[bi].isSet(off) {
		panic(bark.AddTrace(ComponentNotFoundError{Name: ComponentName(p.id), Entity: e}))
	}
	return &p.blocks[bi].slots[off]
}

// remove destroys the instance in entity e's slot. The slot must be occupied.
// An emptied block releases its storage.
func (p *ComponentPool[T]) remove(e EntityID) {
	bi, off := p.locate(e)
	if bi >= len(p.blocks) || !p.blocks[bi].isSet(off) {
		panic(bark.AddTrace(ComponentNotFoundError{Name: ComponentName(p.id), Entity: e}))
	}
	b := &p.blocks[bi]
	var zero T
	b.slots[off] = zero
	b.occupied[off/64] &^= 1 << uint(off%64)
	b.count--
	p.count--
	if b.count == 0 {
		b.slots = nil
		b.occupied = nil
	}
}

func (p *ComponentPool[T]) addZero(e EntityID) {
	var zero T
	p.add(e, zero)
}

func (p *ComponentPool[T]) componentID() ComponentID {
	return p.id
}

// size returns the number of entities carrying the component.
func (p *ComponentPool[T]) size() int {
	return p.count
}

func (p *ComponentPool[T]) clear() {
	p.blocks = nil
	p.count = 0
}

// blockAllocated reports whether block bi currently holds backing storage.
func (p *ComponentPool[T]) blockAllocated(bi int) bool {
	return bi < len(p.blocks) && p.blocks[bi].slots != nil
}

// blockCount returns the number of block records in the pool, allocated or
// not.
func (p *ComponentPool[T]) blockCount() int {
	return len(p.blocks)
}
