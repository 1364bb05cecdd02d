package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/mapski/settings"
	"github.com/milk9111/mapski/terrain"
	"github.com/milk9111/mapski/texture"
)

func main() {
	storage, err := settings.Open(settings.AppName)
	if err != nil {
		log.Printf("[Settings] Warning: %v (preferences will not persist)", err)
	}
	prefs := settings.NewManager(storage)
	p := prefs.Preferences()

	catalogPath := flag.String("catalog", p.CatalogPath, "Terrain catalog YAML file")
	assetsDir := flag.String("assets", p.AssetsDir, "Directory containing texture images")
	watch := flag.Bool("watch", true, "Reload the catalog when it changes on disk")
	windowed := flag.Bool("window", p.Windowed, "Run in a window instead of fullscreen")
	previewSize := flag.Int("preview-size", p.PreviewSize, "Texture preview edge in pixels (16-256)")
	flag.Parse()

	log.Println("Editor starting...")
	session, err := terrain.OpenSession(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	if session.FromDefaults {
		log.Printf("Catalog %s not found, starting from built-in terrains", *catalogPath)
	}

	resolver := texture.NewResolver(*assetsDir)
	assets, err := resolver.List()
	if err != nil {
		log.Printf("Failed to list textures: %v", err)
	}

	var watcher *terrain.Watcher
	if *watch {
		watcher, err = terrain.NewWatcher(*catalogPath)
		if err != nil {
			log.Printf("Catalog watch disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	prefs.SetCatalogPath(*catalogPath)
	prefs.SetAssetsDir(*assetsDir)
	prefs.SetWindowed(*windowed)
	prefs.SetPreviewSize(*previewSize)
	if err := prefs.Save(); err != nil {
		log.Printf("[Settings] Warning: %v", err)
	}

	game := NewEditorGame(session, resolver, assets, watcher, newClipboard(), prefs)

	ebiten.SetWindowTitle("Terrain Editor")
	if *windowed {
		ebiten.SetWindowSize(1280, 800)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetFullscreen(true)
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
