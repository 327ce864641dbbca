package chart

import "image/color"

// Color is an exact RGB triple. A color read from a pixel that is not fully
// opaque is marked translucent and never equals a palette color.
type Color struct {
	R, G, B uint8

	translucent bool
}

// The three colors a chart image is drawn with
var (
	Separator  = Color{R: 195, G: 195, B: 195}
	Mark       = Color{R: 0, G: 0, B: 0}
	Background = Color{R: 255, G: 255, B: 255}
)

// RGBA implements color.Color so a Color can be drawn directly
func (c Color) RGBA() (r, g, b, a uint32) {
	if c.translucent {
		return color.NRGBA{c.R, c.G, c.B, 0}.RGBA()
	}
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// Translucent reports whether the color came from a pixel that was not
// fully opaque
func (c Color) Translucent() bool {
	return c.translucent
}

// FromColor converts any color.Color to a Color. Any alpha other than fully
// opaque marks the result translucent.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, translucent: n.A != 0xff}
}

// Class is the role of a pixel in a chart
type Class int

const (
	// Other is any color that is not part of the chart palette
	Other Class = iota
	SeparatorClass
	MarkClass
	BackgroundClass
)

func (c Class) String() string {
	switch c {
	case SeparatorClass:
		return "separator"
	case MarkClass:
		return "mark"
	case BackgroundClass:
		return "background"
	default:
		return "other"
	}
}

// Classify maps a color to its role. There is no tolerance; anything but an
// exact match is Other.
func Classify(c Color) Class {
	switch c {
	case Separator:
		return SeparatorClass
	case Mark:
		return MarkClass
	case Background:
		return BackgroundClass
	default:
		return Other
	}
}
