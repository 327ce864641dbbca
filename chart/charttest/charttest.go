/*
Package charttest draws synthetic chart images for tests.

Images follow chart.DefaultTemplate: the first track of every row has its
left edge at column Left, further tracks follow every TrackPitch pixels, and
each row starts with a separator line crossing the search column.
*/
package charttest

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/bodgit/popn/chart"
)

const (
	// Left is the left edge of the first track in each row
	Left = 40
	// Top is the separator row of the first row of tracks
	Top = 10
	// TrackWidth is the width of the lines of a track
	TrackWidth = 121
	// Gap is the empty space between two rows of tracks
	Gap = 16

	step  = 8
	pitch = 130
)

// Track lists the mask of each line of a track, bottom line first. An empty
// Track leaves its slot blank.
type Track []chart.Mask

// Row is a row of tracks drawn left to right
type Row []Track

// Lines returns how many lines each track of r has at most
func (r Row) Lines() int {
	n := 0
	for _, t := range r {
		if len(t) > n {
			n = len(t)
		}
	}
	return n
}

// Size returns the dimensions of the image Build draws for rows
func Size(rows ...Row) (int, int) {
	tracks, y := 1, Top
	for _, r := range rows {
		if len(r) > tracks {
			tracks = len(r)
		}
		y += step*r.Lines() + step + Gap
	}
	return Left + pitch*tracks, y
}

func fill(m draw.Image, r image.Rectangle, c chart.Color) {
	draw.Draw(m, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// Build draws rows onto a white image
func Build(rows ...Row) *image.RGBA {
	w, h := Size(rows...)
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(m, m.Bounds(), chart.Background)

	sep := Top
	for _, r := range rows {
		fill(m, image.Rect(0, sep, Left, sep+1), chart.Separator)

		for j, t := range r {
			if len(t) == 0 {
				continue
			}
			left := Left + pitch*j
			bottom := sep + step*len(t)

			// Left edge runs from the separator to the bottom line
			fill(m, image.Rect(left, sep, left+1, bottom+1), chart.Mark)

			for i, mask := range t {
				y := bottom - step*i
				fill(m, image.Rect(left, y, left+TrackWidth, y+1), chart.Mark)

				for lane, p := range chart.LaneLayout(image.Pt(left, y)) {
					if mask.Has(lane) {
						fill(m, image.Rect(p.X, y+2, p.X+4, y+6), chart.Mark)
					}
				}
			}
		}

		sep += step*r.Lines() + step + Gap
	}

	return m
}

// Bottom returns the row of the bottom line of the first track of the first
// row drawn by Build.
func Bottom(r Row) int {
	if len(r) == 0 {
		return Top
	}
	return Top + step*len(r[0])
}

// PNG encodes m losslessly
func PNG(m image.Image) []byte {
	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		panic(err)
	}
	return b.Bytes()
}
