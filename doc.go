/*
Package pallet provides a paged Entity-Component-System (ECS) runtime for games
and simulations.

Pallet stores each component type in its own pool of fixed-size blocks, indexed
directly by entity id. Entities are plain integer ids; a 64-bit mask per entity
records which components it carries. Systems are plain functions dispatched over
the entities whose mask covers the system's component set, and the dispatcher
runs systems concurrently whenever their write sets do not overlap.

Core Concepts:

  - Entity: an integer id owning a set of components within one World.
  - Component: a plain value type, registered on first use.
  - Pool: paged storage for all instances of a single component type.
  - System: a function invoked once per matching entity per dispatch.
  - Tick: the span between two FinishTick calls; entities created during a
    tick stay invisible to iteration until flushed.

Basic Usage:

	// Create a world
	world := pallet.Factory.NewWorld()

	// Define components
	position := pallet.FactoryNewComponent[Position]()
	velocity := pallet.FactoryNewComponent[Velocity]()

	// Create entities
	entities, _ := world.NewEntities(100, position, velocity)
	_ = entities
	world.Flush()

	// Dispatch a system over entities with position and velocity
	world.TickSystem(pallet.SystemConfig{}, func(e pallet.EntityHandle) {
		pos := position.GetFromEntity(e)
		vel := velocity.GetFromEntity(e)
		pos.X += vel.X
		pos.Y += vel.Y
	}, position.Mut(), velocity.Read())

	world.FinishTick()

Systems dispatched with Async run on their own goroutine; a later dispatch that
reads or writes anything the running system writes blocks until that system
completes. Two systems that only read a component, or that write disjoint
components, run concurrently. Parallel additionally spreads per-entity work
across GOMAXPROCS workers.

Structural changes (create, destroy, add, remove) are serialised by the world.
Adding or removing component types a running system did not declare in its
access set, while that system iterates, is undefined behaviour; declare the
full access set or defer the change with the Enqueue variants, which drain at
FinishTick.
*/
package pallet
