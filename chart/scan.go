package chart

import (
	"fmt"
	"image"
)

// ScanTrack reads every line of a track, starting with the bottom line whose
// lane positions are given and moving up one line at a time until lane 0 no
// longer sits on a line. One Mask is returned per line, bottom line first.
func (s *Scanner) ScanTrack(lanes []image.Point) ([]Mask, error) {
	const op = "scan track"

	if len(lanes) != Lanes {
		return nil, &ScanError{Op: op, Err: fmt.Errorf("%w: %d lanes, want %d", ErrMalformedTrack, len(lanes), Lanes)}
	}

	var masks []Mask

	line := lanes[0].Y
	st := s.counter()
	for {
		p := image.Pt(lanes[0].X, line)
		ok, err := s.is(p, MarkClass)
		if err != nil {
			return nil, scanError(op, p, err)
		}
		if !ok {
			break
		}

		var m Mask
		for i, lane := range lanes {
			probe := image.Pt(lane.X, line).Add(s.t.Probe)
			marked, err := s.is(probe, MarkClass)
			if err != nil {
				return nil, scanError(op, probe, err)
			}
			if marked {
				m |= 1 << uint(i)
			}
		}
		masks = append(masks, m)

		if err := st.next(); err != nil {
			return nil, scanError(op, p, err)
		}
		// Lines further up the image are later in the track
		line -= s.t.LineStep
	}

	return masks, nil
}
