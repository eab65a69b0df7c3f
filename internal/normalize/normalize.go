// Package normalize turns arbitrary PNG/JPEG bytes into the single-
// channel grayscale PNG the builder core expects, within the dimension
// range the editor will load (longer edge at most 2048, shorter edge at
// least 32).
package normalize

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// MaxDimension and MinDimension bound the longer and shorter edge of a
// normalized brush-tip image, per spec.md §2's image normalizer entry.
const (
	MaxDimension = 2048
	MinDimension = 32
)

// Image is a normalized brush-tip image ready for the CLYA/MaterialFile
// encoders.
type Image struct {
	Width  uint32
	Height uint32
	PNG    []byte
}

// Normalize decodes raw (PNG or JPEG), converts to grayscale, downscales
// if the longer edge exceeds MaxDimension, and re-encodes as PNG. It
// rejects images whose shorter edge is below MinDimension; upscaling a
// too-small tip image would only introduce blur the editor doesn't
// expect.
func Normalize(raw []byte) (Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Image{}, fmt.Errorf("normalize: decode: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return Image{}, fmt.Errorf("normalize: empty image")
	}
	if minInt(w, h) < MinDimension {
		return Image{}, fmt.Errorf("normalize: shorter edge %d below minimum %d", minInt(w, h), MinDimension)
	}

	gray := toGray(src)

	if maxInt(w, h) > MaxDimension {
		gray = downscale(gray, MaxDimension)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return Image{}, fmt.Errorf("normalize: encode png: %w", err)
	}

	b := gray.Bounds()
	return Image{Width: uint32(b.Dx()), Height: uint32(b.Dy()), PNG: buf.Bytes()}, nil
}

func toGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// downscale shrinks img so its longer edge equals maxEdge, preserving
// aspect ratio, using a CatmullRom resampler for quality.
func downscale(img *image.Gray, maxEdge int) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var newW, newH int
	if w >= h {
		newW = maxEdge
		newH = int(float64(h) * float64(maxEdge) / float64(w))
	} else {
		newH = maxEdge
		newW = int(float64(w) * float64(maxEdge) / float64(h))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewGray(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
