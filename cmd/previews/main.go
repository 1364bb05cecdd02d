package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/mapski/settings"
	"github.com/milk9111/mapski/terrain"
	"github.com/milk9111/mapski/texture"
)

func main() {
	storage, err := settings.Open(settings.AppName)
	if err != nil {
		log.Printf("[Settings] Warning: %v", err)
	}
	p := settings.NewManager(storage).Preferences()

	catalogPath := flag.String("catalog", p.CatalogPath, "Terrain catalog YAML file")
	assetsDir := flag.String("assets", p.AssetsDir, "Directory containing texture images")
	outDir := flag.String("out", "previews", "Directory to write WebP previews into")
	size := flag.Int("size", p.PreviewSize, "Preview edge length in pixels")
	flag.Parse()

	if *size <= 0 {
		log.Fatalf("Invalid size %d", *size)
	}

	catalog, fallback, err := terrain.LoadCatalogOrDefault(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if fallback {
		log.Printf("Catalog %s not found, using built-in terrains", *catalogPath)
	}

	results, err := texture.ExportPreviews(catalog, texture.NewResolver(*assetsDir), *outDir, *size)
	if err != nil {
		log.Fatalf("Failed to export previews: %v", err)
	}

	failed := 0
	for _, r := range results {
		switch {
		case r.Error != "":
			failed++
			log.Printf("%s: %s", r.Type, r.Error)
		case r.Placeholder:
			log.Printf("%s: texture %q not found, wrote placeholder %s", r.Type, r.Texture, r.Path)
		default:
			log.Printf("%s: wrote %s", r.Type, r.Path)
		}
	}
	log.Printf("Exported %d of %d previews to %s", len(results)-failed, len(results), *outDir)
	if failed > 0 {
		os.Exit(1)
	}
}
