package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// ErrNotFound is returned for an empty texture id or a missing file.
var ErrNotFound = errors.New("texture: not found")

// Asset is an image file under the textures directory. ID is the
// slash-separated path relative to that directory, the value a terrain's
// texture field holds.
type Asset struct {
	Name string
	ID   string
}

// Resolver maps texture ids to decoded images. Decoded images are cached.
type Resolver struct {
	Dir   string
	cache map[string]*image.NRGBA
}

func NewResolver(dir string) *Resolver {
	return &Resolver{Dir: dir, cache: make(map[string]*image.NRGBA)}
}

// Resolve loads the texture with the given id.
func (r *Resolver) Resolve(id string) (*image.NRGBA, error) {
	clean := CleanID(id)
	if clean == "" {
		return nil, ErrNotFound
	}
	if img, ok := r.cache[clean]; ok {
		return img, nil
	}
	img, err := Load(filepath.Join(r.Dir, filepath.FromSlash(clean)))
	if err != nil {
		return nil, err
	}
	if r.cache == nil {
		r.cache = make(map[string]*image.NRGBA)
	}
	r.cache[clean] = img
	return img, nil
}

// Forget drops a cached texture so the next Resolve reads it again.
func (r *Resolver) Forget(id string) {
	delete(r.cache, CleanID(id))
}

// List scans the textures directory for supported images, sorted by id.
func (r *Resolver) List() ([]Asset, error) {
	var assets []Asset
	err := filepath.WalkDir(r.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !Supported(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(r.Dir, path)
		if err != nil {
			return err
		}
		assets = append(assets, Asset{Name: d.Name(), ID: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("texture: list %s: %w", r.Dir, err)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

// Supported reports whether the file extension is one Load can decode.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".tga":
		return true
	}
	return false
}

// CleanID turns a path into a texture id: slash-separated, no leading
// "assets/" or "./", and never pointing outside the textures directory.
func CleanID(id string) string {
	if id == "" {
		return ""
	}
	s := filepath.ToSlash(filepath.Clean(filepath.FromSlash(id)))
	s = strings.TrimPrefix(s, "./")
	s = strings.TrimPrefix(s, "assets/")
	if s == "." || s == ".." || strings.HasPrefix(s, "../") || strings.HasPrefix(s, "/") {
		return ""
	}
	return s
}

const tgaMinSize = 26

// Load reads and decodes an image file, picking the decoder by extension.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err = png.Decode(bytes.NewReader(raw))
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(raw))
	case ".tga":
		// The decoder reads the 26-byte TGA 2.0 footer position from the
		// end of the file.
		if len(raw) < tgaMinSize {
			return nil, fmt.Errorf("texture: decode %s: %d bytes is too short for a TGA file", path, len(raw))
		}
		img, err = tga.Decode(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("texture: unknown extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// fill paints r with c.
func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
