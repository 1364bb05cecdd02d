package main

import (
	"image"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/mapski/terrain"
)

// TerrainModalView renders a terrain.Modal: a dimmed backdrop, the dialog
// with its form fields and the Submit/Cancel bar.
type TerrainModalView struct {
	Overlay *widget.Container
	dialog  *widget.Container

	title        *widget.Label
	preview      *widget.Graphic
	textureLabel *widget.Label
	typeInput    *widget.TextInput
	costInput    *widget.TextInput
	maskInput    *widget.TextInput

	previews *previewCache
	alpha    float64
	shown    bool
	// suppress keeps programmatic SetText calls from feeding back into the
	// modal.
	suppress bool
}

// buildTerrainModal builds the overlay shell. A click on the backdrop
// outside the dialog dismisses the modal.
func buildTerrainModal(theme *widget.Theme, fontFace, titleFace *text.Face, modal *terrain.Modal, previews *previewCache) *TerrainModalView {
	v := &TerrainModalView{previews: previews, alpha: -1}

	v.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
			widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
				if args.Button != ebiten.MouseButtonLeft {
					return
				}
				x, y := ebiten.CursorPosition()
				if image.Pt(x, y).In(v.dialog.GetWidget().Rect) {
					return
				}
				modal.Dismiss()
			}),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(backdropImage(0)),
	)
	v.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	v.dialog = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(360, 220),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(dialogColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			),
		),
	)

	v.title = widget.NewLabel(
		widget.LabelOpts.Text("Edit Terrain", titleFace, dialogLabelColor),
	)
	v.dialog.AddChild(v.title)
	v.dialog.AddChild(v.buildTerrainForm(fontFace, modal))
	v.dialog.AddChild(buildTerrainActions(theme, fontFace, modal))
	v.Overlay.AddChild(v.dialog)
	return v
}

// buildTerrainForm lays out the four fields. Texture is read-only; the
// other three forward every change to the modal without validation.
func (v *TerrainModalView) buildTerrainForm(fontFace *text.Face, modal *terrain.Modal) *widget.Container {
	form := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(2),
				widget.GridLayoutOpts.Spacing(12, 8),
				widget.GridLayoutOpts.Stretch([]bool{false, true}, nil),
			),
		),
	)

	v.preview = widget.NewGraphic(
		widget.GraphicOpts.Image(v.previews.Get("")),
		widget.GraphicOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(v.previews.size, v.previews.size),
		),
	)
	v.textureLabel = widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, dialogLabelColor),
	)
	textureCell := newRow(8)
	textureCell.AddChild(v.preview)
	textureCell.AddChild(v.textureLabel)

	v.typeInput = newTextInput(fontFace, 220,
		widget.TextInputOpts.Placeholder("TERRAIN_TYPE"),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if v.suppress {
				return
			}
			modal.SetType(args.InputText)
			if shown := modal.Edit().Type; shown != args.InputText {
				v.setText(args.TextInput, shown)
			}
		}),
	)
	v.costInput = newTextInput(fontFace, 220,
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if !v.suppress {
				modal.SetCost(args.InputText)
			}
		}),
	)
	v.maskInput = newTextInput(fontFace, 220,
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if !v.suppress {
				modal.SetMask(args.InputText)
			}
		}),
	)

	buildTerrainField(form, fontFace, "Texture", textureCell)
	buildTerrainField(form, fontFace, "Type", v.typeInput)
	buildTerrainField(form, fontFace, "Cost", v.costInput)
	buildTerrainField(form, fontFace, "Mask", v.maskInput)
	return form
}

func buildTerrainField(form *widget.Container, fontFace *text.Face, label string, field widget.PreferredSizeLocateableWidget) {
	form.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(label, fontFace, dialogLabelColor),
	))
	form.AddChild(field)
}

// buildTerrainActions is the Submit/Cancel bar.
func buildTerrainActions(theme *widget.Theme, fontFace *text.Face, modal *terrain.Modal) *widget.Container {
	row := newRow(8)
	row.GetWidget().LayoutData = widget.RowLayoutData{Position: widget.RowLayoutPositionEnd}
	row.AddChild(newButton(theme, fontFace, "Submit", modal.Submit))
	row.AddChild(newButton(theme, fontFace, "Cancel", modal.Cancel))
	return row
}

func (v *TerrainModalView) setText(input *widget.TextInput, s string) {
	v.suppress = true
	input.SetText(s)
	v.suppress = false
}

// Reset copies a freshly synced edit state into the widgets.
func (v *TerrainModalView) Reset(m *terrain.Modal) {
	e := m.Edit()
	v.title.Label = m.Title()
	v.setText(v.typeInput, e.Type)
	v.setText(v.costInput, e.Cost.String())
	v.setText(v.maskInput, e.Mask.String())

	tex := m.Merged().Texture
	v.preview.Image = v.previews.Get(tex)
	if tex == "" {
		v.textureLabel.Label = "(none)"
	} else {
		v.textureLabel.Label = tex
	}
	v.typeInput.Focus(true)
}

// Update follows the modal's transition: overlay visibility and backdrop
// fade.
func (v *TerrainModalView) Update(m *terrain.Modal) {
	visible := m.Visible()
	if visible != v.shown {
		v.shown = visible
		if visible {
			v.Overlay.GetWidget().Visibility = widget.Visibility_Show
		} else {
			v.Overlay.GetWidget().Visibility = widget.Visibility_Hide
		}
	}
	if !m.IsOpen() {
		v.blur()
	}
	if a := m.Alpha(); a != v.alpha {
		v.alpha = a
		v.Overlay.SetBackgroundImage(backdropImage(a))
	}
}

func (v *TerrainModalView) blur() {
	for _, in := range []*widget.TextInput{v.typeInput, v.costInput, v.maskInput} {
		if in.IsFocused() {
			in.Focus(false)
		}
	}
}
