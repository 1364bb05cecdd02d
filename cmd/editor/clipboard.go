package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/mapski/terrain"
	"golang.design/x/clipboard"
)

var (
	errClipboardUnavailable = errors.New("clipboard unavailable")
	errClipboardEmpty       = errors.New("clipboard is empty")
)

// Clipboard copies terrains to and from the system clipboard as YAML.
type Clipboard struct {
	ok bool
}

// newClipboard initializes the system clipboard. Without one, copy and
// paste report errClipboardUnavailable.
func newClipboard() *Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("[Clipboard] Warning: %v (copy and paste disabled)", err)
		return &Clipboard{}
	}
	return &Clipboard{ok: true}
}

func (c *Clipboard) CopyTerrain(t terrain.Terrain) error {
	if c == nil || !c.ok {
		return errClipboardUnavailable
	}
	data, err := terrain.MarshalTerrain(t)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (c *Clipboard) PasteTerrain() (terrain.Terrain, error) {
	if c == nil || !c.ok {
		return terrain.Terrain{}, errClipboardUnavailable
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return terrain.Terrain{}, errClipboardEmpty
	}
	t, err := terrain.ParseTerrain(data)
	if err != nil {
		return terrain.Terrain{}, fmt.Errorf("clipboard does not hold a terrain: %w", err)
	}
	return t, nil
}
