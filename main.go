package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	character := flag.String("character", "character.yaml", "character prefab in prefabs/")
	levelName := flag.String("level", "playground", "level in levels/ (.yaml or .tmx, .yaml optional)")
	scale := flag.Float64("scale", 24, "pixels per world unit")
	tickRate := flag.Float64("tick", 50, "fixed physics steps per second")
	watch := flag.Bool("watch", true, "reload prefabs and levels when they change on disk")
	debug := flag.Bool("debug", true, "draw rays, boxes and the HUD")
	mute := flag.Bool("mute", false, "disable sound effects")
	verbose := flag.Bool("v", false, "log controller events")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("kinematic sandbox")

	game, err := NewGame(Options{
		Character: *character,
		Level:     *levelName,
		Scale:     *scale,
		TickRate:  *tickRate,
		Watch:     *watch,
		Debug:     *debug,
		Mute:      *mute,
		Verbose:   *verbose,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
