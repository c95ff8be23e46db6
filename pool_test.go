package pallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiny uses a deliberately small block to make page boundaries easy to hit.
type tiny struct {
	V int
}

func (tiny) BlockSize() int { return 4 }

type single struct {
	V int
}

func (single) BlockSize() int { return 1 }

type wide struct {
	V int
}

func (wide) BlockSize() int { return 4096 }

func TestPoolBlockLifecycle(t *testing.T) {
	cid := RegisterComponent[tiny]()
	p := newComponentPool[tiny](cid, 4)

	// Fill block 0
	for i := 0; i < 4; i++ {
		p.add(EntityID(i), tiny{V: i})
	}
	require.True(t, p.blockAllocated(0))
	require.Equal(t, 4, p.size())

	// A sparse add far past block 0 allocates only its own block
	p.add(7, tiny{V: 7})
	require.Equal(t, 2, p.blockCount())
	require.True(t, p.blockAllocated(1))

	// Emptying block 1 releases its storage but keeps the record
	p.remove(7)
	assert.False(t, p.blockAllocated(1))
	assert.Equal(t, 2, p.blockCount())
	assert.True(t, p.blockAllocated(0))

	// Draining block 0 releases it too
	for i := 0; i < 4; i++ {
		p.remove(EntityID(i))
	}
	assert.False(t, p.blockAllocated(0))
	assert.Equal(t, 0, p.size())
}

func TestPoolSlotLocation(t *testing.T) {
	cid := RegisterComponent[tiny]()
	p := newComponentPool[tiny](cid, 4)

	tests := []struct {
		entity    EntityID
		wantBlock int
		wantOff   int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{4, 1, 0},
		{7, 1, 3},
		{42, 10, 2},
	}
	for _, tt := range tests {
		block, off := p.locate(tt.entity)
		assert.Equal(t, tt.wantBlock, block, "block for entity %d", tt.entity)
		assert.Equal(t, tt.wantOff, off, "offset for entity %d", tt.entity)
	}
}

func TestPoolAddGetRemoveRoundTrip(t *testing.T) {
	cid := RegisterComponent[tiny]()
	p := newComponentPool[tiny](cid, 4)

	ptr := p.add(2, tiny{V: 11})
	require.Equal(t, 11, ptr.V)
	require.Same(t, ptr, p.get(2))

	ptr.V = 12
	assert.Equal(t, 12, p.get(2).V)

	p.remove(2)
	assert.False(t, p.has(2))

	replaced := p.add(2, tiny{V: 13})
	assert.Equal(t, 13, replaced.V)
}

func TestPoolPreconditionsPanic(t *testing.T) {
	cid := RegisterComponent[tiny]()
	p := newComponentPool[tiny](cid, 4)

	p.add(0, tiny{V: 1})
	assert.Panics(t, func() { p.add(0, tiny{V: 2}) }, "double add")
	assert.Panics(t, func() { p.get(1) }, "get absent")
	assert.Panics(t, func() { p.remove(1) }, "remove absent")
	assert.Panics(t, func() { p.remove(99) }, "remove past blocks")
}

func TestPoolExtremeBlockSizes(t *testing.T) {
	tests := []struct {
		name      string
		blockSize int
	}{
		{"block size one", 1},
		{"block size huge", 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cid := RegisterComponent[tiny]()
			p := newComponentPool[tiny](cid, tt.blockSize)

			ids := []EntityID{0, 1, 5, 63, 64, 100}
			for _, id := range ids {
				p.add(id, tiny{V: int(id)})
			}
			for _, id := range ids {
				require.True(t, p.has(id))
				require.Equal(t, int(id), p.get(id).V)
			}
			for _, id := range ids {
				p.remove(id)
				require.False(t, p.has(id))
			}
			require.Equal(t, 0, p.size())
			for bi := 0; bi < p.blockCount(); bi++ {
				require.False(t, p.blockAllocated(bi), "block %d still allocated", bi)
			}
		})
	}
}

func TestPoolBlockSizeFromComponentType(t *testing.T) {
	world := Factory.NewWorld()

	oneComp := FactoryNewComponent[single]()
	wideComp := FactoryNewComponent[wide]()

	entities, err := world.NewEntities(3, oneComp, wideComp)
	require.NoError(t, err)

	onePool := world.pools[oneComp.ID()].(*ComponentPool[single])
	widePool := world.pools[wideComp.ID()].(*ComponentPool[wide])
	assert.Equal(t, 1, onePool.blockSize)
	assert.Equal(t, 4096, widePool.blockSize)

	// One block per entity at size one, one shared block at size 4096
	assert.Equal(t, 3, onePool.blockCount())
	assert.Equal(t, 1, widePool.blockCount())

	for _, e := range entities {
		require.True(t, oneComp.Has(e))
		require.True(t, wideComp.Has(e))
	}
}

// Occupancy, mask bit, and pool storage must agree at every step.
func TestOccupancyMatchesMask(t *testing.T) {
	world := Factory.NewWorld()
	posComp := FactoryNewComponent[Position]()

	check := func(e EntityHandle, want bool) {
		t.Helper()
		assert.Equal(t, want, posComp.Has(e))
		assert.Equal(t, want, world.HasComponents(e.ID(), posComp))
		assert.Equal(t, want, HasComponent[Position](world, e.ID()))
	}

	e := world.CreateEntity()
	check(e, false)

	posComp.Add(e, Position{X: 1})
	check(e, true)

	posComp.Remove(e)
	check(e, false)
}
