package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/collide/scenario"
	"golang.design/x/clipboard"
)

func main() {
	sceneName := flag.String("scene", "playground", "scenario file with a scene section (path, or embedded name with .yaml optional)")
	watchDir := flag.String("watch", "", "directory (or scene file) to watch for scene changes")
	debug := flag.Bool("debug", false, "log moves and start with the chipmunk overlay on")
	flag.Parse()

	canClipboard := true
	if err := clipboard.Init(); err != nil {
		log.Printf("viewer: clipboard disabled: %v", err)
		canClipboard = false
	}

	var watcher *scenario.Watcher
	if *watchDir != "" {
		w, err := scenario.NewWatcher(*watchDir)
		if err != nil {
			log.Fatalf("viewer: watch %s: %v", *watchDir, err)
		}
		defer w.Close()
		watcher = w
	}

	game, err := NewGame(*sceneName, watcher, *debug, canClipboard)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("collide")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
