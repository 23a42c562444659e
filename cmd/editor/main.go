package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/config"
	"github.com/milk9111/spriteanim/document"
)

func main() {
	sheetPath := flag.String("sheet", "", "Sprite sheet image to open")
	docPath := flag.String("doc", "", "Animation document to import (.json, .yaml)")
	configPath := flag.String("config", "", "Config file (default .spriteanim.yaml in the working or home directory)")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store *document.Store
	if cfg.Autosave {
		store = document.NewStore(cfg.AutosavePath)
	}

	g := NewEditor(cfg, store)
	g.initClipboard()

	switch {
	case *docPath != "":
		doc, err := document.LoadFile(*docPath)
		if err != nil {
			log.Fatalf("Failed to load document: %v", err)
		}
		g.docInput.SetText(*docPath)
		g.loadDocument(doc)
	default:
		g.restore()
	}
	if *sheetPath != "" {
		g.openSheet(*sheetPath)
	}
	g.refresh()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Sprite Animation Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS())

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	g.flushAutosave(true)
}
