package pallet

import (
	"testing"
)

func BenchmarkCreateDestroy(b *testing.B) {
	world := Factory.NewWorld()
	pos := FactoryNewComponent[Position]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		entities, _ := world.NewEntities(100, pos)
		for _, e := range entities {
			world.DestroyEntity(e.ID())
		}
	}
}

func BenchmarkSequentialDispatch(b *testing.B) {
	world := Factory.NewWorld()
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()

	if _, err := world.NewEntities(10000, pos, vel); err != nil {
		b.Fatal(err)
	}
	world.Flush()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.TickSystem(SystemConfig{}, func(e EntityHandle) {
			p := pos.GetFromEntity(e)
			v := vel.GetFromEntity(e)
			p.X += v.X
			p.Y += v.Y
		}, pos.Mut(), vel.Read())
	}
}

func BenchmarkParallelDispatch(b *testing.B) {
	world := Factory.NewWorld()
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()

	if _, err := world.NewEntities(10000, pos, vel); err != nil {
		b.Fatal(err)
	}
	world.Flush()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.TickSystem(SystemConfig{Parallel: true}, func(e EntityHandle) {
			p := pos.GetFromEntity(e)
			v := vel.GetFromEntity(e)
			p.X += v.X
			p.Y += v.Y
		}, pos.Mut(), vel.Read())
	}
}

func BenchmarkCursorIteration(b *testing.B) {
	world := Factory.NewWorld()
	pos := FactoryNewComponent[Position]()

	if _, err := world.NewEntities(10000, pos); err != nil {
		b.Fatal(err)
	}
	world.Flush()

	query := Factory.NewQuery()
	node := query.And(pos)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cursor := Factory.NewCursor(node, world)
		for cursor.Next() {
			pos.GetFromCursor(cursor).X++
		}
	}
}
