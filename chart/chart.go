/*
Package chart extracts notes from a pop'n music chart image.

A chart is drawn as rows of tracks. Each track is a box of horizontal black
lines spaced 8 pixels apart, topped by a grey separator line, and is split
into 9 lanes. A note in a lane is a black mark drawn just below a line. The
scanner reads each track from its bottom line upwards and produces one 9-bit
Mask per line, so the resulting sequence is ordered by row of tracks from
the top of the image, then by track from left to right, then by line from
the bottom of the track to the top.

Colors are matched exactly; the image must be lossless and unscaled.
*/
package chart

import (
	"image"
	"strings"
)

// Lanes is the number of note lanes in every track
const Lanes = 9

// MaxMask is the largest valid Mask value
const MaxMask = 1<<Lanes - 1

// Mask records which lanes hold a note on one line of a track. Bit i is set
// if lane i is marked.
type Mask uint16

// Has reports whether the given lane is marked
func (m Mask) Has(lane int) bool {
	return lane >= 0 && lane < Lanes && m&(1<<uint(lane)) != 0
}

// Valid reports whether only the low Lanes bits are used
func (m Mask) Valid() bool {
	return m <= MaxMask
}

// String renders the mask as one character per lane, lane 0 first
func (m Mask) String() string {
	var b strings.Builder
	for i := 0; i < Lanes; i++ {
		if m.Has(i) {
			b.WriteByte('o')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Template holds the pixel geometry of a chart image. The values are
// specific to one chart style.
type Template struct {
	// SearchColumn is the column scanned for the separator of each row
	SearchColumn int
	// LineStep is the vertical distance between two lines of a track
	LineStep int
	// FirstLane is the offset of lane 0 from the left edge of a track
	FirstLane int
	// LanePitch is the distance between two adjacent lanes
	LanePitch int
	// TrackPitch is the distance between two tracks in the same row
	TrackPitch int
	// Probe is the offset from a lane position to the pixel tested for a note
	Probe image.Point
}

// DefaultTemplate matches the standard pop'n music chart image layout
var DefaultTemplate = Template{
	SearchColumn: 30,
	LineStep:     8,
	FirstLane:    8,
	LanePitch:    13,
	TrackPitch:   130,
	Probe:        image.Point{X: 1, Y: 3},
}

// DefaultMaxSteps bounds every directional scan unless overridden
const DefaultMaxSteps = 1 << 16

// Config controls a Scanner
type Config struct {
	Template Template
	// MaxSteps is the most pixels any single scan loop may visit before
	// giving up with ErrUnboundedScan. Zero means DefaultMaxSteps.
	MaxSteps int
}

// DefaultConfig returns the configuration for standard chart images
func DefaultConfig() Config {
	return Config{
		Template: DefaultTemplate,
		MaxSteps: DefaultMaxSteps,
	}
}
