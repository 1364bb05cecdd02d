package texture

import (
	"hash/fnv"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Thumbnail scales src to fit a size×size square, keeping its aspect ratio
// and centering it on a transparent background.
func Thumbnail(src image.Image, size int) *image.NRGBA {
	if size <= 0 {
		size = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if src == nil {
		return dst
	}
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}

	w, h := size, size
	if sw > sh {
		h = max(1, size*sh/sw)
	} else if sh > sw {
		w = max(1, size*sw/sh)
	}
	x0 := (size - w) / 2
	y0 := (size - h) / 2
	target := image.Rect(x0, y0, x0+w, y0+h)

	scaler := draw.Scaler(draw.ApproxBiLinear)
	if sw <= size && sh <= size {
		// Pixel art stays crisp when blown up.
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, target, src, sb, draw.Src, nil)
	return dst
}

// Placeholder is a solid swatch standing in for a texture that cannot be
// resolved. The color is derived from id so the same id always looks the
// same; an empty id gives a neutral gray.
func Placeholder(id string, size int) *image.NRGBA {
	if size <= 0 {
		size = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	fill(dst, dst.Bounds(), PlaceholderColor(id))
	border := color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	for i := 0; i < size; i++ {
		dst.SetNRGBA(i, 0, border)
		dst.SetNRGBA(i, size-1, border)
		dst.SetNRGBA(0, i, border)
		dst.SetNRGBA(size-1, i, border)
	}
	return dst
}

func PlaceholderColor(id string) color.NRGBA {
	if id == "" {
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum32()
	// Keep channels in the middle range so the border stays visible.
	return color.NRGBA{
		R: uint8(0x40 + sum&0x7f),
		G: uint8(0x40 + (sum>>8)&0x7f),
		B: uint8(0x40 + (sum>>16)&0x7f),
		A: 0xff,
	}
}
