package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/mapski/texture"
)

// TexturePanel is the right panel: texture list, a preview of the selected
// texture and the Add button.
type TexturePanel struct {
	Container *widget.Container
	preview   *widget.Graphic
	name      *widget.Label
}

func buildTexturePanel(
	assets []texture.Asset,
	theme *widget.Theme,
	fontFace *text.Face,
	previews *previewCache,
	actions EditorActions,
) *TexturePanel {
	p := &TexturePanel{}

	entries := make([]any, 0, len(assets))
	for _, a := range assets {
		entries = append(entries, a)
	}

	p.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			),
		),
	)

	p.Container.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Textures", fontFace, labelColor),
	))

	p.preview = widget.NewGraphic(
		widget.GraphicOpts.Image(previews.Get("")),
		widget.GraphicOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(previews.size, previews.size),
		),
	)
	p.name = widget.NewLabel(
		widget.LabelOpts.Text("(none)", fontFace, labelColor),
	)

	list := widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 300),
		)),
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if asset, ok := e.(texture.Asset); ok {
				return asset.ID
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			asset, ok := args.Entry.(texture.Asset)
			if !ok {
				return
			}
			p.preview.Image = previews.Get(asset.ID)
			p.name.Label = asset.Name
			if actions.OnTextureSelected != nil {
				actions.OnTextureSelected(asset.ID)
			}
		}),
	)
	p.Container.AddChild(list)
	p.Container.AddChild(p.preview)
	p.Container.AddChild(p.name)
	p.Container.AddChild(newButton(theme, fontFace, "Add", actions.OnAdd))

	return p
}
