package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mapski/settings"
	"github.com/milk9111/mapski/terrain"
	"github.com/milk9111/mapski/texture"
)

// EditorGame is the Ebiten game for the terrain editor. It owns the modal's
// open flag and source entry; the modal reports back through setOpen and
// applyTerrain.
type EditorGame struct {
	ui       *ebitenui.UI
	session  *terrain.Session
	resolver *texture.Resolver
	assets   []texture.Asset
	watcher  *terrain.Watcher
	clip     *Clipboard
	prefs    *settings.Manager
	previews *previewCache
	prompt   *Prompt

	modal       *terrain.Modal
	modalOpen   bool
	modalSource *terrain.Terrain

	catalogPanel *CatalogPanel
	texturePanel *TexturePanel
	modalView    *TerrainModalView
	statusBar    *widget.Label

	selectedType    string
	selectedTexture string
	reloadPending   bool
}

func NewEditorGame(
	session *terrain.Session,
	resolver *texture.Resolver,
	assets []texture.Asset,
	watcher *terrain.Watcher,
	clip *Clipboard,
	prefs *settings.Manager,
) *EditorGame {
	p := prefs.Preferences()
	g := &EditorGame{
		session:      session,
		resolver:     resolver,
		assets:       assets,
		watcher:      watcher,
		clip:         clip,
		prefs:        prefs,
		previews:     newPreviewCache(resolver, p.PreviewSize),
		prompt:       NewPrompt(),
		selectedType: p.LastType,
	}
	g.modal = terrain.NewModal(g.setModalOpen, g.applyTerrain)

	g.ui, g.catalogPanel, g.texturePanel, g.modalView, g.statusBar = BuildEditorUI(
		assets,
		g.previews,
		g.modal,
		EditorActions{
			OnTerrainSelected: func(typ string) { g.selectedType = typ },
			OnTextureSelected: func(id string) { g.selectedTexture = id },
			OnEdit:            g.EditSelected,
			OnAdd:             g.AddWithTexture,
			OnDelete:          g.DeleteSelected,
			OnSave:            g.Save,
			OnReload:          func() { g.Reload(true) },
		},
	)
	g.refreshCatalog()
	g.setStatus(g.sessionSummary())
	return g
}

func (g *EditorGame) setModalOpen(open bool) {
	g.modalOpen = open
}

// openModal shows the dialog for a private copy of src. A nil src opens it
// for an empty entry.
func (g *EditorGame) openModal(src *terrain.Terrain) {
	if g.modal.IsOpen() {
		return
	}
	if src != nil {
		c := src.Clone()
		src = &c
	}
	g.modalSource = src
	g.modalOpen = true
}

// applyTerrain stores a submitted entry in the catalog.
func (g *EditorGame) applyTerrain(t terrain.Terrain) {
	original := ""
	if g.modalSource != nil {
		original = g.modalSource.Type
	}
	g.session.Apply(original, t)
	g.selectedType = t.Type
	g.refreshCatalog()

	g.prefs.SetLastType(t.Type)
	if err := g.prefs.Save(); err != nil {
		log.Printf("[Settings] Warning: %v", err)
	}
	log.Printf("Terrain %s applied", displayType(t.Type))
	g.setStatus(fmt.Sprintf("%s applied (unsaved)", displayType(t.Type)))
}

// EditSelected opens the dialog for the terrain selected in the list.
func (g *EditorGame) EditSelected() {
	idx, ok := g.session.Catalog.Find(g.selectedType)
	if !ok {
		g.setStatus("Select a terrain to edit")
		return
	}
	g.openModal(&g.session.Catalog.Terrains[idx])
}

// AddWithTexture opens the dialog for a new terrain using the selected
// texture.
func (g *EditorGame) AddWithTexture() {
	g.openModal(&terrain.Terrain{Texture: g.selectedTexture})
}

func (g *EditorGame) DeleteSelected() {
	if g.modal.IsOpen() {
		return
	}
	if !g.session.Delete(g.selectedType) {
		g.setStatus("Select a terrain to delete")
		return
	}
	log.Printf("Terrain %s deleted", displayType(g.selectedType))
	g.setStatus(fmt.Sprintf("%s deleted (unsaved)", displayType(g.selectedType)))
	g.selectedType = ""
	g.refreshCatalog()
}

func (g *EditorGame) Save() {
	g.saveAs(g.session.Path)
}

func (g *EditorGame) saveAs(path string) {
	if g.modal.IsOpen() {
		return
	}
	if err := g.session.SaveAs(path); err != nil {
		log.Printf("Save failed: %v", err)
		g.setStatus("Save failed: " + err.Error())
		return
	}
	g.prefs.SetCatalogPath(path)
	if err := g.prefs.Save(); err != nil {
		log.Printf("[Settings] Warning: %v", err)
	}
	log.Printf("Catalog saved to %s", path)
	g.setStatus("Saved " + path)
	g.refreshCatalog()
}

// Reload reads the catalog from disk. Without force it keeps unsaved edits.
func (g *EditorGame) Reload(force bool) {
	if g.modal.IsOpen() {
		return
	}
	err := g.session.Reload(force)
	switch {
	case errors.Is(err, terrain.ErrUnsavedChanges):
		g.setStatus("Catalog changed on disk; Ctrl+R discards local edits and reloads")
		return
	case err != nil:
		log.Printf("Reload failed: %v", err)
		g.setStatus("Reload failed: " + err.Error())
		return
	}
	for _, t := range g.session.Catalog.Terrains {
		g.previews.Forget(t.Texture)
	}
	log.Printf("Catalog reloaded from %s", g.session.Path)
	g.setStatus("Reloaded " + g.session.Path)
	g.refreshCatalog()
}

func (g *EditorGame) copySelected() {
	idx, ok := g.session.Catalog.Find(g.selectedType)
	if !ok {
		g.setStatus("Select a terrain to copy")
		return
	}
	t := g.session.Catalog.Terrains[idx]
	if err := g.clip.CopyTerrain(t); err != nil {
		g.setStatus("Copy failed: " + err.Error())
		return
	}
	g.setStatus(fmt.Sprintf("%s copied", displayType(t.Type)))
}

func (g *EditorGame) pasteTerrain() {
	t, err := g.clip.PasteTerrain()
	if err != nil {
		g.setStatus("Paste failed: " + err.Error())
		return
	}
	g.openModal(&t)
}

// drainWatcher handles pending catalog file events without blocking.
func (g *EditorGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if !g.session.ChangedOnDisk() {
				continue
			}
			log.Printf("Catalog %s changed on disk", name)
			if g.modal.IsOpen() {
				g.reloadPending = true
				continue
			}
			g.Reload(false)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("Catalog watch error: %v", err)
			}
		default:
			return
		}
	}
}

func (g *EditorGame) typing() bool {
	if g.ui == nil {
		return false
	}
	_, ok := g.ui.GetFocusedWidget().(*widget.TextInput)
	return ok
}

func (g *EditorGame) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if !ctrl {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.EditSelected()
		}
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS) && shift:
		g.prompt.Open("Save catalog as:", g.session.Path, func(path string) {
			if path != "" {
				g.saveAs(path)
			}
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Save()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Reload(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copySelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteTerrain()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.AddWithTexture()
	}
}

func (g *EditorGame) Update() error {
	g.drainWatcher()

	if g.prompt.Update() {
		return nil
	}

	if g.modal.IsOpen() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.modal.Dismiss()
		}
	} else if !g.typing() {
		if g.reloadPending {
			g.reloadPending = false
			g.Reload(false)
		}
		g.handleHotkeys()
	}

	if g.modal.Sync(g.modalSource, g.modalOpen) && g.modalOpen {
		g.modalView.Reset(g.modal)
	}
	g.modal.Update()
	g.modalView.Update(g.modal)

	g.ui.Update()
	return nil
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	g.ui.Draw(screen)
	g.prompt.Draw(screen)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *EditorGame) refreshCatalog() {
	g.catalogPanel.SetTerrains(g.session.Catalog.Terrains, g.selectedType)
	g.catalogPanel.SetFile(g.session.Path, g.session.Dirty())
}

func (g *EditorGame) setStatus(msg string) {
	if g.statusBar != nil {
		g.statusBar.Label = msg
	}
}

func (g *EditorGame) sessionSummary() string {
	msg := fmt.Sprintf("%d terrains from %s", len(g.session.Catalog.Terrains), g.session.Path)
	if g.session.FromDefaults {
		msg = fmt.Sprintf("%d built-in terrains (%s not found)", len(g.session.Catalog.Terrains), g.session.Path)
	}
	if !g.prefs.Persistent() {
		msg += "; preferences will not be kept"
	}
	return msg
}

func displayType(typ string) string {
	if typ == "" {
		return "(untyped)"
	}
	return typ
}
