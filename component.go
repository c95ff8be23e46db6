package pallet

import (
	"reflect"
	"sync"

	"github.com/TheBitDrifter/bark"
)

// ComponentID is the small integer assigned to a component type on first use.
type ComponentID uint32

// MaxComponents bounds the number of distinct component types per process so
// that a full component set fits in one 64-bit mask word.
const MaxComponents = 64

// Component represents the registered identity of a component type. Components
// are used to build entities, queries, and system access sets.
type Component interface {
	ID() ComponentID
	Type() reflect.Type
	newPool() pool
}

// BlockSizer lets a component type choose the block size of its pool. Small
// sizes minimise memory for sparse components, large sizes maximise cache
// density for common ones.
type BlockSizer interface {
	BlockSize() int
}

type registration struct {
	id        ComponentID
	blockSize int
}

// Component ids are process-global so a mask bit means the same thing in every
// world. Two worlds in one process share the MaxComponents ceiling.
var (
	registryMu      sync.Mutex
	registrations   = make(map[reflect.Type]registration, MaxComponents)
	blockSizes      [MaxComponents]int
	componentNames  = FactoryNewCache[string](MaxComponents)
	nextComponentID ComponentID
)

// RegisterComponent assigns T its component id, registering the type on first
// use. Registration is idempotent; read-only and mutable access to T map to
// the same id. Panics once the MaxComponents ceiling is reached.
func RegisterComponent[T any]() ComponentID {
	var zero T
	t := reflect.TypeOf(zero)

	registryMu.Lock()
	defer registryMu.Unlock()

	if reg, ok := registrations[t]; ok {
		return reg.id
	}

	blockSize := Config.DefaultBlockSize()
	if bs, ok := any(zero).(BlockSizer); ok {
		blockSize = bs.BlockSize()
	}
	return registerType(t, blockSize).id
}

// registerType performs the actual registration. Callers hold registryMu.
func registerType(t reflect.Type, blockSize int) registration {
	if int(nextComponentID) >= MaxComponents {
		panic(bark.AddTrace(TooManyComponentTypesError{Limit: MaxComponents}))
	}
	reg := registration{id: nextComponentID, blockSize: blockSize}
	registrations[t] = reg
	blockSizes[reg.id] = blockSize
	if _, err := componentNames.Register(t.String(), t.String()); err != nil {
		panic(bark.AddTrace(err))
	}
	nextComponentID++
	return reg
}

// ComponentName returns the type name registered for id.
func ComponentName(id ComponentID) string {
	registryMu.Lock()
	defer registryMu.Unlock()
	if id >= nextComponentID {
		return "unknown"
	}
	return *componentNames.GetItem(int(id))
}

// ComponentByName returns the id registered for a component type name.
func ComponentByName(name string) (ComponentID, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	idx, ok := componentNames.GetIndex(name)
	return ComponentID(idx), ok
}

// RegisteredComponentCount returns the number of component types registered so
// far in this process.
func RegisteredComponentCount() int {
	registryMu.Lock()
	defer registryMu.Unlock()
	return int(nextComponentID)
}

// ResetRegistry resets the global component registry. Worlds created before a
// reset hold pools keyed by the old ids and must be discarded; this is meant
// for tests and applications that re-initialise their ECS state wholesale.
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registrations = make(map[reflect.Type]registration, MaxComponents)
	blockSizes = [MaxComponents]int{}
	componentNames = FactoryNewCache[string](MaxComponents)
	nextComponentID = 0
}

func blockSizeFor(id ComponentID) int {
	registryMu.Lock()
	defer registryMu.Unlock()
	if id < nextComponentID && blockSizes[id] > 0 {
		return blockSizes[id]
	}
	return Config.DefaultBlockSize()
}
