package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// nameDialog is a modal overlay asking for a single name. It serves both
// new-animation and rename.
type nameDialog struct {
	Overlay  *widget.Container
	title    *widget.Text
	input    *widget.TextInput
	onSubmit func(string)
}

func newNameDialog(theme *widget.Theme, fontFace *text.Face) *nameDialog {
	d := &nameDialog{}
	d.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 140),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	d.title = widget.NewText(widget.TextOpts.Text("", fontFace, color.Black))
	d.input = newTextInput(fontFace, 260, d.submit)

	buttonsRow := newRow()
	buttonsRow.AddChild(newButton(theme, fontFace, "OK", func() { d.submit(d.input.GetText()) }))
	buttonsRow.AddChild(newButton(theme, fontFace, "Cancel", d.Close))

	dialog.AddChild(d.title)
	dialog.AddChild(d.input)
	dialog.AddChild(buttonsRow)
	d.Overlay.AddChild(dialog)
	return d
}

// Open shows the dialog with current prefilled. onSubmit receives the
// entered text and may reopen the dialog, e.g. after a name clash.
func (d *nameDialog) Open(title, current string, onSubmit func(string)) {
	d.title.Label = title
	d.onSubmit = onSubmit
	d.input.SetText(current)
	d.input.Focus(true)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Show
}

// Close hides the dialog without submitting.
func (d *nameDialog) Close() {
	d.onSubmit = nil
	d.input.Focus(false)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide
}

func (d *nameDialog) IsOpen() bool {
	return d.Overlay.GetWidget().Visibility == widget.Visibility_Show
}

func (d *nameDialog) submit(name string) {
	fn := d.onSubmit
	d.Close()
	if name != "" && fn != nil {
		fn(name)
	}
}
