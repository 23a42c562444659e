package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/document"
	"github.com/milk9111/spriteanim/render"
	"golang.design/x/clipboard"
)

// openSheet decodes the sheet at path and makes it the canvas image.
func (g *Editor) openSheet(path string) {
	if path == "" {
		return
	}
	src, err := render.DecodeFile(path)
	if err != nil {
		g.setStatus(fmt.Sprintf("Failed to open sheet: %v", err))
		return
	}
	img := ebiten.NewImageFromImage(src)
	render.RegisterImage(path, img)
	g.sheet.set(src, img)
	g.session.SetSheet(path)
	g.camera.Reset()
	if render.IsDataURL(path) {
		// Embedded sheets are kept in the document, not shown in the input.
		g.sheetInput.SetText("")
		g.setStatus("Opened embedded sheet")
		return
	}
	g.sheetInput.SetText(path)
	g.setStatus("Opened " + path)
}

func (g *Editor) docPath() string {
	path := strings.TrimSpace(g.docInput.GetText())
	if path == "" {
		path = document.DefaultFileName
		g.docInput.SetText(path)
	}
	return path
}

func (g *Editor) exportDocument() {
	path := g.docPath()
	if err := document.SaveFile(path, g.session.Export()); err != nil {
		g.setStatus(fmt.Sprintf("Export failed: %v", err))
		return
	}
	g.setStatus("Exported " + path)
}

func (g *Editor) importDocument() {
	path := g.docPath()
	doc, err := document.LoadFile(path)
	if err != nil {
		g.setStatus(fmt.Sprintf("Import failed: %v", err))
		return
	}
	g.loadDocument(doc)
	g.setStatus("Imported " + path)
}

// loadDocument replaces the session with doc and opens its sheet.
func (g *Editor) loadDocument(doc *document.Document) {
	if err := g.session.Import(doc); err != nil {
		log.Printf("Document has malformed animations: %v", err)
	}
	// A sheet that is missing or fails to decode must not leave the
	// previous document's image on the canvas.
	g.sheet.clear()
	g.sheetInput.SetText("")
	if sheet := doc.Sheet(); sheet != "" {
		g.openSheet(sheet)
	}
	if names := g.session.Library().Names(); len(names) > 0 {
		_ = g.session.SelectAnimation(names[0])
	}
	g.refresh()
}

// copyCurrentAnimation puts the current animation record on the clipboard
// as JSON.
func (g *Editor) copyCurrentAnimation() {
	if !g.clipboardOK {
		return
	}
	a, ok := g.session.CurrentAnimation()
	if !ok {
		return
	}
	data, err := json.MarshalIndent(document.RecordOf(a), "", "  ")
	if err != nil {
		g.setStatus(err.Error())
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("Copied " + a.Name + " to clipboard")
}

func (g *Editor) initClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
		return
	}
	g.clipboardOK = true
}

func (g *Editor) scheduleAutosave() {
	if !g.cfg.Autosave || g.store == nil {
		return
	}
	g.saveAt = time.Now().Add(autosaveDelay)
}

// flushAutosave writes a pending autosave once it is due, or right away
// when force is set.
func (g *Editor) flushAutosave(force bool) {
	if g.saveAt.IsZero() || (!force && time.Now().Before(g.saveAt)) {
		return
	}
	g.saveAt = time.Time{}
	if err := g.store.Save(g.session.Export()); err != nil {
		log.Printf("Autosave failed: %v", err)
	}
}

// restore loads the autosaved document, if any.
func (g *Editor) restore() {
	if g.store == nil {
		return
	}
	doc, err := g.store.Load()
	if err != nil {
		log.Printf("Failed to restore autosave: %v", err)
		return
	}
	if doc.Animations.Len() == 0 && doc.Sheet() == "" {
		return
	}
	g.loadDocument(doc)
	g.saveAt = time.Time{}
	log.Printf("Restored %d animations from %s", doc.Animations.Len(), g.store.Path)
}
