package chart

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridOf builds a grid from rows of characters: '#' mark, '-' separator,
// ' ' background and anything else a foreign color.
func gridOf(rows ...string) Grid {
	m := image.NewRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '#':
				m.Set(x, y, Mark)
			case '-':
				m.Set(x, y, Separator)
			case ' ':
				m.Set(x, y, Background)
			default:
				m.Set(x, y, color.RGBA{0x12, 0x34, 0x56, 0xff})
			}
		}
	}
	return NewImageGrid(m)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, SeparatorClass, Classify(Color{R: 195, G: 195, B: 195}))
	assert.Equal(t, MarkClass, Classify(Color{R: 0, G: 0, B: 0}))
	assert.Equal(t, BackgroundClass, Classify(Color{R: 255, G: 255, B: 255}))
	assert.Equal(t, Other, Classify(Color{R: 194, G: 195, B: 195}))
	assert.Equal(t, Other, Classify(Color{R: 1, G: 0, B: 0}))
	assert.Equal(t, "mark", MarkClass.String())

	// Transparent pixels never match the palette
	for _, c := range []color.Color{
		color.NRGBA{255, 255, 255, 0},
		color.NRGBA{0, 0, 0, 0},
		color.NRGBA{195, 195, 195, 0},
		color.NRGBA{0, 0, 0, 0xfe},
		color.Transparent,
	} {
		assert.Equal(t, Other, Classify(FromColor(c)), "%v", c)
	}
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, Separator, FromColor(color.RGBA{195, 195, 195, 0xff}))
	assert.Equal(t, Mark, FromColor(color.Gray{0}))
	assert.Equal(t, Background, FromColor(color.NRGBA{255, 255, 255, 0xff}))

	c := FromColor(color.NRGBA{255, 255, 255, 0})
	assert.True(t, c.Translucent())
	assert.NotEqual(t, Background, c)
	assert.NotEqual(t, Mark, FromColor(color.NRGBA{0, 0, 0, 0}))
	assert.False(t, Mark.Translucent())
}

func TestFindBottomTransparent(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	s := NewScanner(NewImageGrid(m), DefaultConfig())

	_, err := s.FindBottom(image.Pt(1, 0))
	assert.ErrorIs(t, err, ErrMalformedTrack)
}

func TestMask(t *testing.T) {
	m := Mask(0x105)
	assert.True(t, m.Has(0))
	assert.False(t, m.Has(1))
	assert.True(t, m.Has(2))
	assert.True(t, m.Has(8))
	assert.False(t, m.Has(9))
	assert.Equal(t, "o.o.....o", m.String())
	assert.True(t, Mask(MaxMask).Valid())
	assert.False(t, Mask(512).Valid())
}

func TestLaneLayout(t *testing.T) {
	for _, x0 := range []int{0, 17, 40, 1000} {
		lanes := LaneLayout(image.Pt(x0, 33))
		require.Len(t, lanes, Lanes)

		want := []int{x0 + 8, x0 + 21, x0 + 34, x0 + 47, x0 + 60, x0 + 73, x0 + 86, x0 + 99, x0 + 112}
		for i, p := range lanes {
			assert.Equal(t, want[i], p.X)
			assert.Equal(t, 33, p.Y)
		}
	}
}

func TestImageGridBounds(t *testing.T) {
	g := gridOf(
		"# ",
		" -",
	)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 2, g.Height())

	c, err := g.ColorAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Separator, c)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := g.ColorAt(p.X, p.Y)
		assert.ErrorIs(t, err, ErrBoundsExceeded, "%v", p)
	}
}

func TestScanTrackLaneCount(t *testing.T) {
	s := NewScanner(gridOf("#"), DefaultConfig())
	for _, n := range []int{0, 8, 10} {
		_, err := s.ScanTrack(make([]image.Point, n))
		assert.ErrorIs(t, err, ErrMalformedTrack, "%d lanes", n)
	}
}

func TestFindBottom(t *testing.T) {
	g := gridOf(
		" # ",
		" # ",
		" # ",
		"   ",
		" # ",
	)
	s := NewScanner(g, DefaultConfig())

	p, err := s.FindBottom(image.Pt(1, 0))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1, 2), p)

	// The bottom edge of the grid ends a run
	p, err = s.FindBottom(image.Pt(1, 4))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1, 4), p)

	_, err = s.FindBottom(image.Pt(0, 0))
	assert.ErrorIs(t, err, ErrMalformedTrack)

	_, err = s.FindBottom(image.Pt(3, 0))
	assert.ErrorIs(t, err, ErrBoundsExceeded)
}

func TestFindBottomStepLimit(t *testing.T) {
	g := gridOf("#", "#", "#", "#", "#", "#")
	s := NewScanner(g, Config{MaxSteps: 3})

	_, err := s.FindBottom(image.Pt(0, 0))
	assert.ErrorIs(t, err, ErrUnboundedScan)
}

func TestFindLowerLine(t *testing.T) {
	g := gridOf(
		"# ",
		"  ",
		"-#",
		"# ",
	)
	s := NewScanner(g, DefaultConfig())

	p, ok, err := s.FindLowerLine(image.Pt(0, 0))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, image.Pt(0, 3), p)

	_, ok, err = s.FindLowerLine(image.Pt(1, 2))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.FindLowerLine(image.Pt(0, 3))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocate(t *testing.T) {
	tmpl := Template{
		SearchColumn: 1,
		LineStep:     2,
		FirstLane:    1,
		LanePitch:    1,
		TrackPitch:   10,
		Probe:        image.Point{X: 0, Y: 1},
	}
	g := gridOf(
		"       ",
		"----#  ",
		"    #  ",
		"  ###  ",
		"       ",
		"       ",
	)
	s := NewScanner(g, Config{Template: tmpl})

	tr, err := s.Locate(image.Pt(1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Top)
	assert.Equal(t, image.Pt(2, 3), tr.Corner)
}

func TestLocateNoTrack(t *testing.T) {
	g := gridOf(
		"     ",
		"-----",
		"     ",
	)
	s := NewScanner(g, DefaultConfig())

	_, err := s.Locate(image.Pt(1, 0))
	assert.ErrorIs(t, err, ErrInvalidImage)
}
