// Package midi converts detected chart notes to and from Standard MIDI Files.
// Each mask becomes one sixteenth note slot and each lane a fixed key.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/bodgit/popn/chart"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Options controls how notes are written
type Options struct {
	// BPM is the tempo written at the start of the track
	BPM float64
	// Resolution is the number of ticks per quarter note
	Resolution uint16
	// Channel is the MIDI channel, 0-15
	Channel uint8
	// Velocity is used for every note on
	Velocity uint8
	// Keys maps each lane to a MIDI key
	Keys [chart.Lanes]uint8
}

// DefaultOptions places the lanes on the white keys from middle C upwards
var DefaultOptions = Options{
	BPM:        120,
	Resolution: 96,
	Channel:    0,
	Velocity:   100,
	Keys:       [chart.Lanes]uint8{60, 62, 64, 65, 67, 69, 71, 72, 74},
}

var (
	errNoTracks      = errors.New("midi: no tracks")
	errTimeFormat    = errors.New("midi: unsupported time format")
	errBadResolution = errors.New("midi: resolution must be a multiple of 4")
)

func (o Options) validate() error {
	if o.Resolution == 0 || o.Resolution%4 != 0 {
		return errBadResolution
	}
	if o.Channel > 15 {
		return fmt.Errorf("midi: invalid channel %d", o.Channel)
	}
	if o.BPM <= 0 {
		return fmt.Errorf("midi: invalid tempo %v", o.BPM)
	}
	return nil
}

// Encode writes masks to w as a single track Standard MIDI File
func Encode(w io.Writer, masks []chart.Mask, o Options) error {
	if err := o.validate(); err != nil {
		return err
	}

	clock := smf.MetricTicks(o.Resolution)
	slot := clock.Ticks16th()

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(o.BPM))

	var delta uint32
	for _, m := range masks {
		if !m.Valid() {
			return fmt.Errorf("midi: mask out of range: %d", m)
		}

		var keys []uint8
		for i := 0; i < chart.Lanes; i++ {
			if m.Has(i) {
				keys = append(keys, o.Keys[i])
			}
		}
		if len(keys) == 0 {
			delta += slot
			continue
		}

		for i, k := range keys {
			if i == 0 {
				tr.Add(delta, gomidi.NoteOn(o.Channel, k, o.Velocity))
			} else {
				tr.Add(0, gomidi.NoteOn(o.Channel, k, o.Velocity))
			}
		}
		// Every note lasts exactly one slot
		for i, k := range keys {
			if i == 0 {
				tr.Add(slot, gomidi.NoteOff(o.Channel, k))
			} else {
				tr.Add(0, gomidi.NoteOff(o.Channel, k))
			}
		}
		delta = 0
	}
	// Keep trailing empty slots so the length survives
	tr.Close(delta)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return err
	}

	_, err := s.WriteTo(w)
	return err
}

// Decode reads a file written by Encode with the same options back into
// masks. Note on events for keys not in o.Keys are an error.
func Decode(r io.Reader, o Options) ([]chart.Mask, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s, err := smf.ReadFrom(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if len(s.Tracks) == 0 {
		return nil, errNoTracks
	}

	clock, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || clock.Ticks16th() == 0 {
		return nil, errTimeFormat
	}
	slot := uint64(clock.Ticks16th())

	lanes := make(map[uint8]int, chart.Lanes)
	for i, k := range o.Keys {
		lanes[k] = i
	}

	var masks []chart.Mask
	var abs uint64
	for _, ev := range s.Tracks[0] {
		abs += uint64(ev.Delta)

		var channel, key, velocity uint8
		if !ev.Message.GetNoteOn(&channel, &key, &velocity) || velocity == 0 {
			continue
		}
		lane, ok := lanes[key]
		if !ok {
			return nil, fmt.Errorf("midi: key %d is not mapped to a lane", key)
		}

		i := int(abs / slot)
		for len(masks) <= i {
			masks = append(masks, 0)
		}
		masks[i] |= 1 << uint(lane)
	}

	// The end of track marks the end of the last slot
	for uint64(len(masks)) < abs/slot {
		masks = append(masks, 0)
	}

	return masks, nil
}
