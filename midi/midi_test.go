package midi

import (
	"bytes"
	"testing"

	"github.com/bodgit/popn/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestEncode(t *testing.T) {
	masks := []chart.Mask{chart.MaxMask, 0, 1, 0, 0}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, masks, DefaultOptions))

	s, err := smf.ReadFrom(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	var ons int
	var bpm float64
	for _, ev := range s.Tracks[0] {
		var channel, key, velocity uint8
		if ev.Message.GetNoteOn(&channel, &key, &velocity) {
			assert.Equal(t, DefaultOptions.Velocity, velocity)
			ons++
		}
		ev.Message.GetMetaTempo(&bpm)
	}
	assert.Equal(t, 10, ons)
	assert.Equal(t, 120.0, bpm)

	decoded, err := Decode(bytes.NewReader(b.Bytes()), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, masks, decoded)
}

func TestEncodeOptions(t *testing.T) {
	o := DefaultOptions
	o.Resolution = 90
	assert.Equal(t, errBadResolution, Encode(new(bytes.Buffer), nil, o))

	o = DefaultOptions
	o.Channel = 16
	assert.Error(t, Encode(new(bytes.Buffer), nil, o))

	assert.Error(t, Encode(new(bytes.Buffer), []chart.Mask{1024}, DefaultOptions))
}

func TestDecodeUnmappedKey(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, []chart.Mask{1}, DefaultOptions))

	o := DefaultOptions
	o.Keys[0] = 40
	_, err := Decode(bytes.NewReader(b.Bytes()), o)
	assert.Error(t, err)
}
