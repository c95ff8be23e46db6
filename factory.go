package pallet

// factory implements the factory pattern for pallet components.
type factory struct{}

// Factory is the global factory instance for creating pallet values.
var Factory factory

// NewWorld creates a new empty World.
func (f factory) NewWorld() *World {
	return &World{}
}

// NewQuery creates a new Query instance.
func (f factory) NewQuery() Query {
	return newQuery()
}

// NewCursor creates a new Cursor with the specified query and world.
func (f factory) NewCursor(query QueryNode, world *World) *Cursor {
	return newCursor(query, world)
}

// FactoryNewComponent registers T on first use and returns its accessor.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{id: RegisterComponent[T]()}
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
