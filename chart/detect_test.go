package chart_test

import (
	"image"
	"testing"

	"github.com/bodgit/popn/chart"
	"github.com/bodgit/popn/chart/charttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detect(t *testing.T, rows ...charttest.Row) []chart.Mask {
	t.Helper()
	masks, err := chart.DetectImage(charttest.Build(rows...), chart.DefaultConfig())
	require.NoError(t, err)
	return masks
}

func TestDetectSingleTrack(t *testing.T) {
	masks := detect(t, charttest.Row{{chart.MaxMask, 1}})
	assert.Equal(t, []chart.Mask{511, 1}, masks)
}

func TestDetectAdjacentTracks(t *testing.T) {
	masks := detect(t, charttest.Row{{chart.MaxMask}, {chart.MaxMask}})
	assert.Equal(t, []chart.Mask{511, 511}, masks)
}

func TestDetectOrder(t *testing.T) {
	rows := []charttest.Row{
		{{1, 2, 4}, {8, 16}, {32, 64, 128, 256}},
		{{3}, {5, 6}},
		{{0, 0, 7}},
	}
	want := []chart.Mask{1, 2, 4, 8, 16, 32, 64, 128, 256, 3, 5, 6, 0, 0, 7}

	masks := detect(t, rows...)
	assert.Equal(t, want, masks)
}

func TestDetectLength(t *testing.T) {
	rows := []charttest.Row{
		{{1, 1, 1, 1}, {2, 2}, {4, 4, 4, 4, 4, 4}},
		{{8, 8, 8}},
		{{16}, {32, 32, 32, 32, 32, 32, 32}},
	}

	total := 0
	for _, r := range rows {
		for _, tr := range r {
			total += len(tr)
		}
	}

	masks := detect(t, rows...)
	assert.Len(t, masks, total)
	for _, m := range masks {
		assert.True(t, m.Valid())
	}
}

func TestDetectIdempotent(t *testing.T) {
	g := chart.NewImageGrid(charttest.Build(
		charttest.Row{{0x1ff, 0x0f0, 0x00f}, {0x111}},
		charttest.Row{{0x155, 0x0aa}},
	))
	s := chart.NewScanner(g, chart.DefaultConfig())

	first, err := s.Detect()
	require.NoError(t, err)
	second, err := s.Detect()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := chart.Detect(g)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestDetectSubImage(t *testing.T) {
	m := charttest.Build(charttest.Row{{0x101, 0x010}})
	b := m.Bounds()

	// Pad the chart so its bounds no longer start at the origin
	padded := image.NewRGBA(image.Rect(-5, -7, b.Dx()-5, b.Dy()-7))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			padded.Set(x-5, y-7, m.At(x, y))
		}
	}

	masks, err := chart.DetectImage(padded, chart.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []chart.Mask{0x101, 0x010}, masks)
}

func TestDetectNoSeparator(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			m.Set(x, y, chart.Background)
		}
	}

	_, err := chart.DetectImage(m, chart.DefaultConfig())
	assert.ErrorIs(t, err, chart.ErrInvalidImage)

	_, err = chart.DetectImage(m, chart.Config{MaxSteps: 50})
	assert.ErrorIs(t, err, chart.ErrUnboundedScan)
}

func TestDetectTrackTooShort(t *testing.T) {
	row := charttest.Row{{1, 2}}
	m := charttest.Build(row)

	// Cut the image off just below the bottom line of the track
	bottom := charttest.Bottom(row)
	cropped := m.SubImage(image.Rect(0, 0, m.Bounds().Dx(), bottom+5))

	_, err := chart.DetectImage(cropped, chart.DefaultConfig())
	assert.ErrorIs(t, err, chart.ErrInvalidImage)

	var se *chart.ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "locate", se.Op)
}

func TestDetectMissingTrackEdge(t *testing.T) {
	m := charttest.Build(charttest.Row{{1}, {2}})

	// Paint a foreign color where the second track's edge meets the baseline
	bottom := charttest.Bottom(charttest.Row{{1}})
	m.Set(charttest.Left+130, bottom, chart.Color{R: 10, G: 20, B: 30})

	_, err := chart.DetectImage(m, chart.DefaultConfig())
	assert.ErrorIs(t, err, chart.ErrMalformedTrack)
}
