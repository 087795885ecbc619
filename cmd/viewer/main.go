//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"wolfsheep/internal/app"
	"wolfsheep/internal/core"
	_ "wolfsheep/internal/sims/wolfsheep"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	sim, err := core.Build(cfg.Sim, cfg.Params)
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, *cfg)

	ebiten.SetWindowTitle("wolfsheep - " + sim.Name())
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
