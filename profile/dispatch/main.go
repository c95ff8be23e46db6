// Profiling:
// go build ./profile/dispatch
// go tool pprof -http=":8000" -nodefraction=0.001 ./dispatch cpu.pprof

package main

import (
	"github.com/TheBitDrifter/pallet"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

func main() {
	ticks := 5000
	entities := 10000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(ticks, entities)
	p.Stop()
}

func run(ticks, numEntities int) {
	pos := pallet.FactoryNewComponent[position]()
	vel := pallet.FactoryNewComponent[velocity]()

	world := pallet.Factory.NewWorld()
	if _, err := world.NewEntities(numEntities, pos, vel); err != nil {
		panic(err)
	}
	world.Flush()

	for range ticks {
		world.TickSystem(pallet.SystemConfig{Async: true, Parallel: true}, func(e pallet.EntityHandle) {
			p := pos.GetFromEntity(e)
			v := vel.GetFromEntity(e)
			p.X += v.X
			p.Y += v.Y
		}, pos.Mut(), vel.Read())

		world.TickSystem(pallet.SystemConfig{Async: true}, func(e pallet.EntityHandle) {
			v := vel.GetFromEntity(e)
			v.X *= 0.99
			v.Y *= 0.99
		}, vel.Mut())

		world.FinishTick()
	}
	world.Close()
}
