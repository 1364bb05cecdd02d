package main

import (
	"fmt"
	"path/filepath"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/mapski/terrain"
)

// CatalogEntry is a list row. It only carries comparable fields so the list
// can match entries by value.
type CatalogEntry struct {
	Index   int
	Type    string
	Texture string
	Cost    terrain.Numeric
	Mask    terrain.Numeric
}

func (e CatalogEntry) label() string {
	return fmt.Sprintf("%s  cost %s  mask %s", displayType(e.Type), e.Cost, e.Mask)
}

// CatalogPanel is the left panel: file name, terrain list and actions.
type CatalogPanel struct {
	Container *widget.Container
	list      *widget.List
	fileLabel *widget.Label

	onSelected func(typ string)
	// suppressEvents keeps programmatic selection from reaching onSelected.
	suppressEvents bool
}

func buildCatalogPanel(theme *widget.Theme, fontFace *text.Face, actions EditorActions) *CatalogPanel {
	p := &CatalogPanel{onSelected: actions.OnTerrainSelected}

	p.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 400),
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

	p.fileLabel = widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, labelColor),
	)
	p.Container.AddChild(p.fileLabel)
	p.Container.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Terrains", fontFace, labelColor),
	))

	p.list = widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(300, 360),
		)),
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(CatalogEntry); ok {
				return entry.label()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(CatalogEntry)
			if !ok || p.suppressEvents || p.onSelected == nil {
				return
			}
			p.onSelected(entry.Type)
		}),
	)
	p.Container.AddChild(p.list)

	editRow := newRow(6)
	editRow.AddChild(newButton(theme, fontFace, "Edit", actions.OnEdit))
	editRow.AddChild(newButton(theme, fontFace, "Delete", actions.OnDelete))
	p.Container.AddChild(editRow)

	fileRow := newRow(6)
	fileRow.AddChild(newButton(theme, fontFace, "Save", actions.OnSave))
	fileRow.AddChild(newButton(theme, fontFace, "Reload", actions.OnReload))
	p.Container.AddChild(fileRow)

	return p
}

// SetTerrains replaces the list rows and selects the row with the given
// type, if any.
func (p *CatalogPanel) SetTerrains(ts []terrain.Terrain, selected string) {
	if p == nil || p.list == nil {
		return
	}
	p.suppressEvents = true
	defer func() { p.suppressEvents = false }()

	entries := make([]any, len(ts))
	var sel any
	for i, t := range ts {
		e := CatalogEntry{Index: i, Type: t.Type, Texture: t.Texture, Cost: t.Cost, Mask: t.Mask}
		entries[i] = e
		if sel == nil && selected != "" && t.Type == selected {
			sel = e
		}
	}
	p.list.SetEntries(entries)
	if sel != nil {
		p.list.SetSelectedEntry(sel)
	}
}

// SetFile shows the catalog file name, marked when there are unsaved edits.
func (p *CatalogPanel) SetFile(path string, dirty bool) {
	if p == nil || p.fileLabel == nil {
		return
	}
	name := filepath.Base(path)
	if dirty {
		name += " *"
	}
	p.fileLabel.Label = "File: " + name
}
