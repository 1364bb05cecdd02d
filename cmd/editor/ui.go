package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/mapski/terrain"
	"github.com/milk9111/mapski/texture"
	"golang.org/x/image/font/gofont/goregular"
)

// EditorActions are the callbacks the panels invoke.
type EditorActions struct {
	OnTerrainSelected func(typ string)
	OnTextureSelected func(id string)
	OnEdit            func()
	OnAdd             func()
	OnDelete          func()
	OnSave            func()
	OnReload          func()
}

func BuildEditorUI(
	assets []texture.Asset,
	previews *previewCache,
	modal *terrain.Modal,
	actions EditorActions,
) (*ebitenui.UI, *CatalogPanel, *TexturePanel, *TerrainModalView, *widget.Label) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	var titleFace text.Face = &text.GoTextFace{Source: s, Size: 18}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	catalogPanel := buildCatalogPanel(ui.PrimaryTheme, &fontFace, actions)
	texturePanel := buildTexturePanel(assets, ui.PrimaryTheme, &fontFace, previews, actions)
	modalView := buildTerrainModal(ui.PrimaryTheme, &fontFace, &titleFace, modal, previews)

	statusBar := widget.NewLabel(
		widget.LabelOpts.Text("", &fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)

	// Root container: anchor layout
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{24, 24, 28, 255})),
	)
	catalogPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	texturePanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	statusBar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	root.AddChild(catalogPanel.Container)
	root.AddChild(texturePanel.Container)
	root.AddChild(statusBar)
	// The modal overlay goes last so it draws over both panels.
	root.AddChild(modalView.Overlay)

	ui.Container = root
	return ui, catalogPanel, texturePanel, modalView, statusBar
}
