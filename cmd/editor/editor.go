package main

import (
	"image"
	"math"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/config"
	"github.com/milk9111/spriteanim/document"
	"github.com/milk9111/spriteanim/editor"
)

// autosaveDelay batches bursts of edits, such as a resize drag, into one
// write.
const autosaveDelay = 500 * time.Millisecond

// Editor is the Ebiten game for the animation editor.
type Editor struct {
	cfg     config.Config
	session *editor.Session
	store   *document.Store
	camera  *editor.Camera

	ui            *ebitenui.UI
	nameDialog    *nameDialog
	animPanel     *listPanel
	framePanel    *listPanel
	fpsInput      *widget.TextInput
	durationInput *widget.TextInput
	sheetInput    *widget.TextInput
	docInput      *widget.TextInput
	loopBtn       *widget.Button
	playBtn       *widget.Button
	previewBox    *widget.Container
	previewInfo   *widget.Text

	sheet sheetView

	clipboardOK bool
	saveAt      time.Time

	// canvas drag state
	selecting    bool
	selStartX    float64
	selStartY    float64
	selEndX      float64
	selEndY      float64
	resizing     bool
	resizeIdx    int
	resizeHandle editor.Handle
	resizeOrig   anim.Frame
	resizeStartX float64
	resizeStartY float64
	isPanning    bool
	lastPanX     int
	lastPanY     int

	status  string
	screenW int
	screenH int
	pixel   *ebiten.Image
}

// NewEditor returns an editor over an empty session. Call buildUI before
// running.
func NewEditor(cfg config.Config, store *document.Store) *Editor {
	g := &Editor{
		cfg: cfg,
		session: editor.NewSession(editor.Options{
			DefaultFPS:   cfg.DefaultFPS,
			MinFrameSize: cfg.MinFrameSize,
		}),
		store:   store,
		camera:  editor.NewCamera(cfg.Zoom.Min, cfg.Zoom.Max, cfg.Zoom.Step),
		screenW: cfg.Window.Width,
		screenH: cfg.Window.Height,
	}
	g.session.OnChange = g.scheduleAutosave
	g.buildUI()
	return g
}

func (g *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// textFocused reports whether the user is typing into a UI text input.
func (g *Editor) textFocused() bool {
	if g.ui == nil {
		return false
	}
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return true
		}
	}
	return false
}

func (g *Editor) Update() error {
	g.session.Tick(g.cfg.TickMS)
	g.flushAutosave(false)

	if g.nameDialog.IsOpen() && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.nameDialog.Close()
	}

	g.ui.Update()
	g.updateLabels()

	if g.nameDialog.IsOpen() || g.textFocused() {
		return nil
	}

	g.handleHotkeys()
	g.handleCanvasMouse()
	return nil
}

func (g *Editor) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.exportDocument()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.importDocument()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyCurrentAnimation()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.promptNewAnimation()
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.openRename()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePreview()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reloadPreview()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.stopPreview()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		g.deleteSelectedFrame()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.moveSelectedFrame(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.moveSelectedFrame(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.detectUnderCursor()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.camera.Reset()
	}
}

// canvasBounds is the screen area between the two panels.
func (g *Editor) canvasBounds() image.Rectangle {
	return image.Rect(leftPanelWidth, 0, g.screenW-rightPanelWidth, g.screenH)
}

// cursorWorld returns the sheet-space position under the mouse.
func (g *Editor) cursorWorld() (float64, float64) {
	cx, cy := ebiten.CursorPosition()
	return g.camera.ScreenToWorld(float64(cx-leftPanelWidth), float64(cy))
}

func (g *Editor) handleCanvasMouse() {
	cx, cy := ebiten.CursorPosition()
	inCanvas := image.Pt(cx, cy).In(g.canvasBounds())

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) && inCanvas {
		g.isPanning = true
		g.lastPanX, g.lastPanY = cx, cy
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		g.camera.Pan(float64(cx-g.lastPanX), float64(cy-g.lastPanY))
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 && inCanvas {
		g.camera.ZoomAt(float64(cx-leftPanelWidth), float64(cy), wy)
	}

	if !g.sheet.loaded() {
		return
	}
	wx, wy := g.cursorWorld()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inCanvas {
		g.beginCanvasDrag(wx, wy)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		switch {
		case g.resizing:
			if err := g.session.ResizeFrame(g.resizeIdx, g.resizeOrig, g.resizeHandle, wx-g.resizeStartX, wy-g.resizeStartY); err != nil {
				g.resizing = false
			}
			g.refreshFrames()
		case g.selecting:
			g.selEndX, g.selEndY = wx, wy
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.selecting {
			g.finishSelection()
		}
		g.selecting = false
		g.resizing = false
	}
}

// beginCanvasDrag starts a resize when a handle of the selected frame is
// hit, selects the frame under the cursor, or starts a new selection.
func (g *Editor) beginCanvasDrag(wx, wy float64) {
	handleSize := editor.HandleSize / g.camera.Zoom
	if f, ok := g.session.SelectedFrame(); ok {
		if h := editor.HandleAt(f, wx, wy, handleSize); h != editor.HandleNone {
			g.resizing = true
			g.resizeIdx = g.session.Selected()
			g.resizeHandle = h
			g.resizeOrig = f
			g.resizeStartX, g.resizeStartY = wx, wy
			return
		}
	}
	if i := g.session.FrameAt(wx, wy); i >= 0 {
		g.selectFrame(i)
		return
	}
	if g.session.Current() == "" {
		g.setStatus("Create an animation before adding frames")
		return
	}
	g.selecting = true
	g.selStartX, g.selStartY = wx, wy
	g.selEndX, g.selEndY = wx, wy
}

func (g *Editor) finishSelection() {
	r := editor.SelectionRect(g.selStartX, g.selStartY, g.selEndX, g.selEndY)
	if err := g.session.AddFrame(r); err != nil {
		// A click without a drag is not worth reporting.
		if math.Abs(g.selEndX-g.selStartX) > 1 || math.Abs(g.selEndY-g.selStartY) > 1 {
			g.setStatus(err.Error())
		}
		return
	}
	g.refresh()
}
