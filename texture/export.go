package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/milk9111/mapski/terrain"
)

// EncodeWebP writes img as a lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("texture: webp encode: %w", err)
	}
	return nil
}

// WriteWebP encodes img into the file at path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("texture: create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("texture: create %s: %w", path, err)
	}
	if err := EncodeWebP(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PreviewResult describes one exported preview.
type PreviewResult struct {
	Type        string
	Texture     string
	Path        string
	Placeholder bool
	Error       string
}

// ExportPreviews writes one size×size WebP thumbnail per catalog entry into
// outDir, named after the entry's type. Entries whose texture cannot be
// resolved get a placeholder swatch. Two types whose preview names collide
// keep the first file; the later entry records an error. Failures are
// recorded per entry; the returned error is only set when outDir cannot be
// created.
func ExportPreviews(c *terrain.Catalog, r *Resolver, outDir string, size int) ([]PreviewResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("texture: create %s: %w", outDir, err)
	}
	results := make([]PreviewResult, 0, len(c.Terrains))
	owners := make(map[string]string, len(c.Terrains))
	for _, t := range c.Terrains {
		res := PreviewResult{Type: t.Type, Texture: t.Texture}
		name := PreviewName(t.Type)
		if owner, taken := owners[name]; taken {
			res.Error = fmt.Sprintf("texture: preview %s already written for type %q", name, owner)
			results = append(results, res)
			continue
		}
		owners[name] = t.Type
		var thumb *image.NRGBA
		src, err := r.Resolve(t.Texture)
		switch {
		case err == nil:
			thumb = Thumbnail(src, size)
		case errors.Is(err, ErrNotFound):
			thumb = Placeholder(t.Texture, size)
			res.Placeholder = true
		default:
			res.Error = err.Error()
			results = append(results, res)
			continue
		}
		res.Path = filepath.Join(outDir, name)
		if err := WriteWebP(res.Path, thumb); err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results, nil
}

// PreviewName is the file name of a type's preview.
func PreviewName(typ string) string {
	if typ == "" {
		typ = "untyped"
	}
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, strings.ToLower(typ))
	return name + ".webp"
}
