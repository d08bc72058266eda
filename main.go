package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/wallkick/scene"
)

func main() {
	debug := flag.Bool("debug", false, "draw colliders, probes and controller state")
	airControl := flag.Bool("air-control", false, "allow steering while airborne")
	watch := flag.Bool("watch", false, "reload prefabs and hook scripts when they change on disk")
	mute := flag.Bool("mute", false, "disable audio cues")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("wallkick")
	// the simulation runs on its own fixed clock, so draw every frame
	ebiten.SetTPS(ebiten.SyncWithFPS)

	game, err := NewGame(scene.Options{
		Level:      *levelName,
		AirControl: *airControl,
		Audio:      !*mute,
		Hooks:      true,
		Watch:      *watch,
	}, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
