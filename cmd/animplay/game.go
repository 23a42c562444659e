package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/config"
	"github.com/milk9111/spriteanim/document"
	"github.com/milk9111/spriteanim/render"
	"github.com/milk9111/spriteanim/sequence"
)

// playGame plays one animation document, optionally steered by a script
// and reloaded when the document changes on disk.
type playGame struct {
	cfg       config.Config
	docPath   string
	sheetFlag string

	player  *anim.Player
	sprite  *render.Sprite
	runner  *sequence.Runner
	watcher *document.Watcher

	status string
}

func newPlayGame(cfg config.Config, docPath, sheetFlag string) (*playGame, error) {
	g := &playGame{
		cfg:       cfg,
		docPath:   docPath,
		sheetFlag: sheetFlag,
		player:    anim.NewPlayer(anim.NewLibrary()),
	}
	g.sprite = render.NewSprite(g.player, nil)
	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// resolveSheet finds the sheet named by a document. Inline data URLs and
// file:// references are left to the decoder. Relative paths are tried
// against the working directory first and then next to the document.
func resolveSheet(docPath, sheet string) string {
	if sheet == "" || filepath.IsAbs(sheet) || render.IsDataURL(sheet) || strings.HasPrefix(sheet, "file://") {
		return sheet
	}
	if _, err := os.Stat(sheet); err == nil {
		return sheet
	}
	return filepath.Join(filepath.Dir(docPath), sheet)
}

// nextName returns the name delta steps from current, wrapping around.
func nextName(names []string, current string, delta int) string {
	if len(names) == 0 {
		return ""
	}
	idx := 0
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(names) + len(names)) % len(names)
	return names[idx]
}

// reload reads the document and swaps the player's library. The current
// animation keeps playing from where it was when it still exists.
func (g *playGame) reload() error {
	doc, err := document.LoadFile(g.docPath)
	if err != nil {
		return err
	}
	if err := document.Validate(doc); err != nil {
		log.Printf("Document has malformed animations: %v", err)
	}

	sheet := g.sheetFlag
	if sheet == "" {
		sheet = resolveSheet(g.docPath, doc.Sheet())
	}
	if sheet != "" {
		render.ForgetImage(sheet)
		img, err := render.LoadImage(sheet)
		if err != nil {
			log.Printf("Failed to load sheet: %v", err)
		} else {
			g.sprite.Sheet = img
		}
	}

	wasPlaying := g.player.IsPlaying()
	g.player.SetLibrary(document.ToLibrary(doc))
	if cur := g.player.CurrentAnimation(); cur != "" {
		// Replay without restart to pick up a changed loop flag.
		_ = g.player.Play(cur, false)
		if !wasPlaying {
			g.player.Pause()
		}
	}
	return nil
}

func (g *playGame) play(name string, restart bool) {
	if err := g.player.Play(name, restart); err != nil {
		g.status = err.Error()
		log.Println(err)
		return
	}
	g.status = ""
}

func (g *playGame) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.reload(); err != nil {
				g.status = err.Error()
				log.Printf("Reload failed: %v", err)
				continue
			}
			g.status = "Reloaded " + filepath.Base(path)
			log.Println(g.status)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Watch error: %v", err)
		default:
			return
		}
	}
}

func (g *playGame) Update() error {
	g.pollWatcher()

	names := g.player.Library().Names()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.player.IsPlaying() {
			g.player.Pause()
		} else {
			g.player.Resume()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.play(g.player.CurrentAnimation(), true)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.player.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.play(nextName(names, g.player.CurrentAnimation(), 1), true)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.play(nextName(names, g.player.CurrentAnimation(), -1), true)
	}

	g.player.Advance(g.cfg.TickMS)
	return nil
}

func (g *playGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.sprite.Sheet != nil {
		g.sprite.DrawFit(screen, 0, 24, float64(w), float64(h-48), g.cfg.PreviewMaxScale*2)
	}

	info := fmt.Sprintf("%s  frame %d  %s", g.player.CurrentAnimation(), g.player.CurrentFrameIndex()+1, g.player.State())
	ebitenutil.DebugPrintAt(screen, info, 8, 4)
	ebitenutil.DebugPrintAt(screen, "Space pause  R restart  S stop  Left/Right switch", 8, h-20)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 8, h-36)
	}
}

func (g *playGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
