package terrain

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

//go:embed defaults.yaml
var DefaultsFS embed.FS

const defaultsFile = "defaults.yaml"

// DefaultCatalog returns the catalog shipped with the editor.
func DefaultCatalog() (*Catalog, error) {
	data, err := DefaultsFS.ReadFile(defaultsFile)
	if err != nil {
		return nil, fmt.Errorf("terrain: load %s: %w", defaultsFile, err)
	}
	return ParseCatalog(data)
}

// LoadCatalogOrDefault reads path from disk and falls back to the shipped
// catalog when the file does not exist. The bool reports whether the
// fallback was used.
func LoadCatalogOrDefault(path string) (*Catalog, bool, error) {
	if path != "" {
		c, err := LoadCatalog(path)
		if err == nil {
			return c, false, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
	}
	c, err := DefaultCatalog()
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// ModTime returns the modification time of the catalog file.
func ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
