// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/TheBitDrifter/pallet"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	c1 := pallet.FactoryNewComponent[comp1]()
	c2 := pallet.FactoryNewComponent[comp2]()

	for range rounds {
		world := pallet.Factory.NewWorld()

		for range iters {
			entities, err := world.NewEntities(numEntities, c1, c2)
			if err != nil {
				panic(err)
			}
			world.Flush()

			for e := range world.EntitiesWith(c1, c2) {
				a := c1.GetFromEntity(e)
				b := c2.GetFromEntity(e)
				a.V += b.V
				a.W += b.W
			}

			for _, e := range entities {
				world.DestroyEntity(e.ID())
			}
		}
		world.Close()
	}
}
