package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/mapski/texture"
)

// previewCache holds square ebiten thumbnails keyed by texture id.
// Unresolvable ids get a placeholder swatch.
type previewCache struct {
	resolver *texture.Resolver
	size     int
	images   map[string]*ebiten.Image
}

func newPreviewCache(resolver *texture.Resolver, size int) *previewCache {
	if size <= 0 {
		size = 64
	}
	return &previewCache{resolver: resolver, size: size, images: make(map[string]*ebiten.Image)}
}

func (p *previewCache) Get(id string) *ebiten.Image {
	key := texture.CleanID(id)
	if img, ok := p.images[key]; ok {
		return img
	}

	src, err := p.resolver.Resolve(key)
	var img *ebiten.Image
	if err != nil {
		if !errors.Is(err, texture.ErrNotFound) {
			log.Printf("Failed to load texture %s: %v", id, err)
		}
		img = ebiten.NewImageFromImage(texture.Placeholder(key, p.size))
	} else {
		img = ebiten.NewImageFromImage(texture.Thumbnail(src, p.size))
	}
	p.images[key] = img
	return img
}

// Forget drops the cached thumbnail and the decoded source.
func (p *previewCache) Forget(id string) {
	key := texture.CleanID(id)
	if img, ok := p.images[key]; ok {
		img.Deallocate()
		delete(p.images, key)
	}
	p.resolver.Forget(key)
}
