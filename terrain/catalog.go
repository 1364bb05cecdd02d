package terrain

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog is the ordered list of terrains a map can use.
type Catalog struct {
	Terrains []Terrain `yaml:"terrains"`
}

// ParseCatalog decodes a catalog document. Types are normalized on load.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("terrain: unmarshal catalog: %w", err)
	}
	for i := range c.Terrains {
		c.Terrains[i].Type = NormalizeType(c.Terrains[i].Type)
	}
	return &c, nil
}

// LoadCatalog reads a catalog file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: load catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("terrain: load catalog %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("terrain: marshal catalog: %w", err)
	}
	return data, nil
}

// Save writes the catalog to path, creating parent directories. Entries
// whose cost or mask are not numbers are saved as typed and reported in
// the log.
func (c *Catalog) Save(path string) error {
	if path == "" {
		return fmt.Errorf("terrain: empty catalog path")
	}
	for _, t := range c.Terrains {
		if !t.Cost.IsNumber() {
			log.Printf("[Catalog] %s: cost %q is not a number", t.Type, t.Cost)
		}
		if !t.Mask.IsNumber() {
			log.Printf("[Catalog] %s: mask %q is not a number", t.Type, t.Mask)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("terrain: save catalog %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("terrain: save catalog %s: %w", path, err)
	}
	return nil
}

// Find returns the index of the entry with the given type.
func (c *Catalog) Find(typ string) (int, bool) {
	for i := range c.Terrains {
		if c.Terrains[i].Type == typ {
			return i, true
		}
	}
	return -1, false
}

// Upsert stores t in place of the entry whose type was originalType. When
// there is no such entry, t replaces the entry with its own type, or is
// appended. Any other entry already using t's type is dropped so types stay
// unique. It returns t's index.
func (c *Catalog) Upsert(originalType string, t Terrain) int {
	idx := -1
	if originalType != "" {
		idx, _ = c.Find(originalType)
	}
	if idx < 0 {
		idx, _ = c.Find(t.Type)
	}
	if idx < 0 {
		c.Terrains = append(c.Terrains, t.Clone())
		return len(c.Terrains) - 1
	}
	c.Terrains[idx] = t.Clone()
	for i := len(c.Terrains) - 1; i >= 0; i-- {
		if i != idx && c.Terrains[i].Type == t.Type {
			c.Terrains = append(c.Terrains[:i], c.Terrains[i+1:]...)
			if i < idx {
				idx--
			}
		}
	}
	return idx
}

// Remove deletes the entry with the given type.
func (c *Catalog) Remove(typ string) bool {
	idx, ok := c.Find(typ)
	if !ok {
		return false
	}
	c.Terrains = append(c.Terrains[:idx], c.Terrains[idx+1:]...)
	return true
}

func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.Terrains))
	for _, t := range c.Terrains {
		out = append(out, t.Type)
	}
	return out
}

// Clone returns a deep copy.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{Terrains: make([]Terrain, len(c.Terrains))}
	for i, t := range c.Terrains {
		out.Terrains[i] = t.Clone()
	}
	return out
}
