package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/milk9111/mapski/terrain"
	"golang.org/x/image/webp"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeTGA writes an uncompressed 24-bit, single-row TGA. Files under 26
// bytes (fewer than three pixels) cannot be decoded.
func writeTGA(t *testing.T, path string, pixels []color.NRGBA) {
	t.Helper()
	header := []byte{
		0, 0, 2, // id length, no color map, true-color
		0, 0, 0, 0, 0, // no color map
		0, 0, 0, 0, // x, y origin
		byte(len(pixels)), 0, 1, 0, // width, height
		24, 0x20, // bits per pixel, top-left origin
	}
	data := append([]byte{}, header...)
	for _, p := range pixels {
		data = append(data, p.B, p.G, p.R)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolverPNG(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "tiles", "grass.png"), 4, 2, color.NRGBA{G: 200, A: 255})

	r := NewResolver(dir)
	img, err := r.Resolve("tiles/grass.png")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.NRGBAAt(1, 1); got.G != 200 || got.A != 255 {
		t.Fatalf("pixel = %v", got)
	}

	again, err := r.Resolve("assets/tiles/grass.png")
	if err != nil || again != img {
		t.Fatalf("expected cached image, err=%v", err)
	}

	r.Forget("tiles/grass.png")
	fresh, err := r.Resolve("tiles/grass.png")
	if err != nil || fresh == img {
		t.Fatalf("expected reload after Forget, err=%v", err)
	}
}

func TestResolverTGA(t *testing.T) {
	dir := t.TempDir()
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	writeTGA(t, filepath.Join(dir, "lava.tga"), []color.NRGBA{red, blue, green, red})

	img, err := NewResolver(dir).Resolve("lava.tga")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 1 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.NRGBAAt(2, 0); got.G != 255 || got.R != 0 || got.B != 0 {
		t.Fatalf("third pixel = %v", got)
	}
	if got := img.NRGBAAt(0, 0); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Fatalf("first pixel = %v", got)
	}
	if got := img.NRGBAAt(1, 0); got.B != 255 || got.R != 0 {
		t.Fatalf("second pixel = %v", got)
	}
}

func TestResolverErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(dir)

	cases := []struct {
		name     string
		id       string
		notFound bool
	}{
		{"empty", "", true},
		{"missing", "missing.png", true},
		{"escape", "../outside.png", true},
		{"corrupt", "broken.png", false},
		{"unknown_ext", "notes.txt", false},
		{"short_tga", "tiny.tga", false},
	}
	writeTGA(t, filepath.Join(dir, "tiny.tga"), []color.NRGBA{{A: 255}})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := r.Resolve(c.id)
			if err == nil {
				t.Fatalf("expected error")
			}
			if errors.Is(err, ErrNotFound) != c.notFound {
				t.Fatalf("errors.Is(ErrNotFound) = %v for %v", !c.notFound, err)
			}
		})
	}
}

func TestResolverList(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 1, 1, color.White)
	writePNG(t, filepath.Join(dir, "sub", "a.png"), 1, 1, color.White)
	writeTGA(t, filepath.Join(dir, "c.tga"), make([]color.NRGBA, 4))
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	assets, err := NewResolver(dir).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	if want := []string{"b.png", "c.tga", "sub/a.png"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	if assets[2].Name != "a.png" {
		t.Fatalf("name = %q", assets[2].Name)
	}
}

func TestToNRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 7, 8, 9))
	src.Set(5, 7, color.RGBA{R: 255, A: 255})
	src.Set(7, 8, color.RGBA{B: 128, A: 128})

	dst := toNRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if got := dst.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("origin pixel = %v", got)
	}
	if got := dst.NRGBAAt(2, 1); got.B != 255 || got.A != 128 {
		t.Fatalf("premultiplied pixel not converted: %v", got)
	}
}

func TestCleanID(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"grass.png":       "grass.png",
		"./grass.png":     "grass.png",
		"assets/a/b.png":  "a/b.png",
		"a/../b.png":      "b.png",
		"../x.png":        "",
		"/etc/passwd.png": "",
		".":               "",
	}
	for in, want := range cases {
		if got := CleanID(in); got != want {
			t.Fatalf("CleanID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestThumbnail(t *testing.T) {
	cases := []struct {
		name       string
		w, h, size int
		inside     image.Point
		outside    *image.Point
	}{
		{"square_up", 4, 4, 16, image.Pt(8, 8), nil},
		{"wide_down", 64, 32, 16, image.Pt(8, 8), &image.Point{X: 8, Y: 1}},
		{"tall_down", 32, 64, 16, image.Pt(8, 8), &image.Point{X: 1, Y: 8}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, c.w, c.h))
			for y := 0; y < c.h; y++ {
				for x := 0; x < c.w; x++ {
					src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
				}
			}
			thumb := Thumbnail(src, c.size)
			if thumb.Bounds() != image.Rect(0, 0, c.size, c.size) {
				t.Fatalf("bounds = %v", thumb.Bounds())
			}
			if got := thumb.NRGBAAt(c.inside.X, c.inside.Y); got.A == 0 {
				t.Fatalf("center pixel transparent")
			}
			if c.outside != nil {
				if got := thumb.NRGBAAt(c.outside.X, c.outside.Y); got.A != 0 {
					t.Fatalf("letterbox pixel %v not transparent: %v", *c.outside, got)
				}
			}
		})
	}

	if got := Thumbnail(nil, 8); got.Bounds().Dx() != 8 {
		t.Fatalf("nil source bounds = %v", got.Bounds())
	}
}

func TestPlaceholder(t *testing.T) {
	a := Placeholder("water.png", 8)
	b := Placeholder("water.png", 8)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("placeholder not deterministic")
	}
	if PlaceholderColor("water.png") == PlaceholderColor("grass.png") {
		t.Fatalf("different ids share a color")
	}
	if got := PlaceholderColor(""); got.R != got.G || got.G != got.B {
		t.Fatalf("empty id should be gray, got %v", got)
	}
	if a.NRGBAAt(4, 4) != PlaceholderColor("water.png") {
		t.Fatalf("center pixel = %v", a.NRGBAAt(4, 4))
	}
}

func isWebP(data []byte) bool {
	return len(data) > 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeWebP(&buf, Placeholder("x", 16)); err != nil {
		t.Fatalf("EncodeWebP: %v", err)
	}
	if !isWebP(buf.Bytes()) {
		t.Fatalf("output is not a WebP container: % x", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestExportPreviews(t *testing.T) {
	assetsDir := t.TempDir()
	writePNG(t, filepath.Join(assetsDir, "grass.png"), 32, 32, color.NRGBA{G: 255, A: 255})
	if err := os.WriteFile(filepath.Join(assetsDir, "broken.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &terrain.Catalog{Terrains: []terrain.Terrain{
		{Type: "GRASS", Texture: "grass.png"},
		{Type: "VOID", Texture: "missing.png"},
		{Type: "BROKEN", Texture: "broken.png"},
	}}
	out := filepath.Join(t.TempDir(), "previews")
	results, err := ExportPreviews(c, NewResolver(assetsDir), out, 16)
	if err != nil {
		t.Fatalf("ExportPreviews: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %+v", results)
	}

	grass := results[0]
	if grass.Error != "" || grass.Placeholder {
		t.Fatalf("grass result = %+v", grass)
	}
	data, err := os.ReadFile(filepath.Join(out, "grass.webp"))
	if err != nil || !isWebP(data) {
		t.Fatalf("grass preview missing or invalid: %v", err)
	}

	if v := results[1]; !v.Placeholder || v.Error != "" {
		t.Fatalf("void result = %+v", v)
	}
	if _, err := os.Stat(filepath.Join(out, "void.webp")); err != nil {
		t.Fatalf("placeholder preview not written: %v", err)
	}

	if b := results[2]; b.Error == "" {
		t.Fatalf("broken texture should report an error: %+v", b)
	}
}

func TestExportPreviewsNameClash(t *testing.T) {
	assetsDir := t.TempDir()
	writePNG(t, filepath.Join(assetsDir, "a.png"), 4, 4, color.NRGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(assetsDir, "b.png"), 4, 4, color.NRGBA{B: 255, A: 255})

	c := &terrain.Catalog{Terrains: []terrain.Terrain{
		{Type: "A/B", Texture: "a.png"},
		{Type: "A_B", Texture: "b.png"},
	}}
	out := t.TempDir()
	results, err := ExportPreviews(c, NewResolver(assetsDir), out, 4)
	if err != nil {
		t.Fatalf("ExportPreviews: %v", err)
	}
	if results[0].Error != "" {
		t.Fatalf("first entry = %+v", results[0])
	}
	if results[1].Error == "" || results[1].Path != "" {
		t.Fatalf("clashing entry should fail without a path: %+v", results[1])
	}

	f, err := os.Open(filepath.Join(out, "a_b.webp"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if r, _, b, _ := img.At(2, 2).RGBA(); r == 0 || b != 0 {
		t.Fatalf("preview was overwritten by the second type")
	}
}

func TestPreviewName(t *testing.T) {
	cases := map[string]string{
		"GRASS":     "grass.webp",
		"":          "untyped.webp",
		"A/B":       "a_b.webp",
		"DEEP_LAVA": "deep_lava.webp",
	}
	for in, want := range cases {
		if got := PreviewName(in); got != want {
			t.Fatalf("PreviewName(%q) = %q, want %q", in, got, want)
		}
	}
}
