package chart

import (
	"fmt"
	"image"
)

// Grid is a read-only surface of exact pixel colors. ColorAt must fail with
// an error wrapping ErrBoundsExceeded for any coordinate outside
// [0,Width)×[0,Height).
type Grid interface {
	Width() int
	Height() int
	ColorAt(x, y int) (Color, error)
}

// ImageGrid adapts a decoded image to a Grid. Coordinates are relative to
// the image bounds so (0, 0) is always the top-left pixel.
type ImageGrid struct {
	m image.Image
	r image.Rectangle
}

// NewImageGrid returns a Grid backed by m
func NewImageGrid(m image.Image) *ImageGrid {
	return &ImageGrid{
		m: m,
		r: m.Bounds(),
	}
}

// Width returns the number of columns
func (g *ImageGrid) Width() int {
	return g.r.Dx()
}

// Height returns the number of rows
func (g *ImageGrid) Height() int {
	return g.r.Dy()
}

// ColorAt returns the exact color of the pixel at (x, y)
func (g *ImageGrid) ColorAt(x, y int) (Color, error) {
	if !inside(g, x, y) {
		return Color{}, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrBoundsExceeded, x, y, g.Width(), g.Height())
	}
	return FromColor(g.m.At(g.r.Min.X+x, g.r.Min.Y+y)), nil
}

func inside(g Grid, x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width() && y < g.Height()
}
