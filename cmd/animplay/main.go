package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/config"
	"github.com/milk9111/spriteanim/document"
	"github.com/milk9111/spriteanim/sequence"
)

func main() {
	docPath := flag.String("doc", "animations.json", "Animation document (.json, .yaml)")
	animName := flag.String("anim", "", "Animation to start with (default: first in the document)")
	scriptPath := flag.String("script", "", "Optional tengo script with on_start/on_complete hooks")
	sheetPath := flag.String("sheet", "", "Sprite sheet, overriding the document's spriteSheet")
	watch := flag.Bool("watch", true, "Reload the document when it changes on disk")
	configPath := flag.String("config", "", "Config file (default .spriteanim.yaml in the working or home directory)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	g, err := newPlayGame(cfg, *docPath, *sheetPath)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	if *scriptPath != "" {
		runner, err := sequence.LoadFile(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		runner.OnError = func(err error) {
			log.Printf("Script error: %v", err)
		}
		runner.Attach(g.player)
		g.runner = runner
	}

	start := *animName
	if start == "" {
		if names := g.player.Library().Names(); len(names) > 0 {
			start = names[0]
		}
	}
	if g.runner.HasStart() {
		if err := g.runner.Start(); err != nil {
			log.Printf("Script error: %v", err)
		}
	}
	if g.player.CurrentAnimation() == "" && start != "" {
		g.play(start, true)
	}

	if *watch {
		w, err := document.NewWatcher(cfg.WatchDebounce(), *docPath)
		if err != nil {
			log.Printf("Hot reload disabled: %v", err)
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width/2, cfg.Window.Height/2)
	ebiten.SetWindowTitle("Animation Player")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
