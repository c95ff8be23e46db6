package pallet_test

import (
	"fmt"

	"github.com/TheBitDrifter/pallet"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// Example shows basic pallet usage with entity creation and queries
func Example_basic() {
	// Create a world
	world := pallet.Factory.NewWorld()

	// Define components
	position := pallet.FactoryNewComponent[Position]()
	velocity := pallet.FactoryNewComponent[Velocity]()
	name := pallet.FactoryNewComponent[Name]()

	// Create entities
	world.NewEntities(5, position)
	world.NewEntities(3, position, velocity)

	// Create one named entity
	entities, _ := world.NewEntities(1, position, velocity, name)
	player := entities[0]
	name.GetFromEntity(player).Value = "Player"

	// Set position and velocity
	pos := position.GetFromEntity(player)
	vel := velocity.GetFromEntity(player)
	pos.X, pos.Y = 10.0, 20.0
	vel.X, vel.Y = 1.0, 2.0

	// Expose the new entities to iteration
	world.Flush()

	// Query for all entities with position and velocity
	query := pallet.Factory.NewQuery()
	queryNode := query.And(position, velocity)
	cursor := pallet.Factory.NewCursor(queryNode, world)

	// Count matching entities
	matchCount := 0
	for cursor.Next() {
		matchCount++
	}
	fmt.Printf("Found %d entities with position and velocity\n", matchCount)

	// Dispatch a movement system over the named entity
	world.TickSystem(pallet.SystemConfig{}, func(e pallet.EntityHandle) {
		pos := position.GetFromEntity(e)
		vel := velocity.GetFromEntity(e)
		nme := name.GetFromEntity(e)

		pos.X += vel.X
		pos.Y += vel.Y

		fmt.Printf("Updated %s to position (%.1f, %.1f)\n", nme.Value, pos.X, pos.Y)
	}, position.Mut(), velocity.Read(), name.Read())

	world.FinishTick()

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (11.0, 22.0)
}

// Example_queries shows how to use different query operations
func Example_queries() {
	world := pallet.Factory.NewWorld()

	position := pallet.FactoryNewComponent[Position]()
	velocity := pallet.FactoryNewComponent[Velocity]()
	name := pallet.FactoryNewComponent[Name]()

	// Create different entity types
	world.NewEntities(3, position)
	world.NewEntities(3, position, velocity)
	world.NewEntities(3, position, name)
	world.NewEntities(3, position, velocity, name)
	world.Flush()

	// AND query: entities with position AND velocity
	query := pallet.Factory.NewQuery()
	andQuery := query.And(position, velocity)
	cursor := pallet.Factory.NewCursor(andQuery, world)
	fmt.Printf("AND query matched %d entities\n", cursor.TotalMatched())

	// OR query: entities with velocity OR name
	orQuery := query.Or(velocity, name)
	cursor = pallet.Factory.NewCursor(orQuery, world)
	fmt.Printf("OR query matched %d entities\n", cursor.TotalMatched())

	// NOT query: entities without velocity
	notQuery := query.Not(velocity)
	cursor = pallet.Factory.NewCursor(notQuery, world)
	fmt.Printf("NOT query matched %d entities\n", cursor.TotalMatched())

	// Output:
	// AND query matched 6 entities
	// OR query matched 9 entities
	// NOT query matched 6 entities
}

// Example_asyncSystems shows write-conflict scheduling between systems
func Example_asyncSystems() {
	world := pallet.Factory.NewWorld()

	position := pallet.FactoryNewComponent[Position]()
	velocity := pallet.FactoryNewComponent[Velocity]()

	entities, _ := world.NewEntities(1, position, velocity)
	velocity.GetFromEntity(entities[0]).X = 2
	world.Flush()

	// Writes position; runs on its own worker
	world.TickSystem(pallet.SystemConfig{Async: true}, func(e pallet.EntityHandle) {
		position.GetFromEntity(e).X += velocity.GetFromEntity(e).X
	}, position.Mut(), velocity.Read())

	// Reads position; the dispatcher joins the writer first
	world.TickSystem(pallet.SystemConfig{Async: true}, func(e pallet.EntityHandle) {
		fmt.Printf("position.X = %.0f\n", position.GetFromEntity(e).X)
	}, position.Read())

	world.FinishTick()

	// Output:
	// position.X = 2
}
