package chart

import (
	"image"
)

// Detect returns every note in the grid using the default configuration
func Detect(g Grid) ([]Mask, error) {
	return NewScanner(g, DefaultConfig()).Detect()
}

// DetectImage is a convenience wrapper around Detect for a decoded image
func DetectImage(m image.Image, c Config) ([]Mask, error) {
	return NewScanner(NewImageGrid(m), c).Detect()
}

// Detect scans the whole grid, row of tracks by row of tracks, and returns
// the concatenated masks of every track in reading order.
func (s *Scanner) Detect() ([]Mask, error) {
	var masks []Mask

	start := image.Pt(s.t.SearchColumn, 0)
	rows := s.counter()
	for {
		track, err := s.Locate(start)
		if err != nil {
			return nil, err
		}

		row, err := s.scanRow(track)
		if err != nil {
			return nil, err
		}
		masks = append(masks, row...)

		// next only tells whether anything lies below this row. It sits in
		// the corner's column, possibly inside the next row's track, so the
		// next search restarts from the search column instead.
		next, ok, err := s.FindLowerLine(track.Corner)
		if err != nil {
			return nil, err
		}
		if !ok || next.X <= 0 {
			break
		}
		if err := rows.next(); err != nil {
			return nil, scanError("detect", next, err)
		}
		start = image.Pt(s.t.SearchColumn, track.Corner.Y+1)
	}

	return masks, nil
}

// scanRow reads each track in a row, left to right, starting with the one
// whose bottom line begins at track.Corner. Subsequent tracks are probed
// TrackPitch pixels apart on the same baseline; a track shorter than the
// first is found by looking up from the baseline, a taller one by following
// its edge down.
func (s *Scanner) scanRow(track Track) ([]Mask, error) {
	const op = "scan row"

	var masks []Mask

	base := track.Corner
	for x := base.X; x < s.grid.Width(); x += s.t.TrackPitch {
		p := image.Pt(x, base.Y)

		bg, err := s.is(p, BackgroundClass)
		if err != nil {
			return nil, scanError(op, p, err)
		}
		if bg {
			st := s.counter()
			for bg && p.Y > track.Top {
				if err := st.next(); err != nil {
					return nil, scanError(op, p, err)
				}
				p.Y--
				if bg, err = s.is(p, BackgroundClass); err != nil {
					return nil, scanError(op, p, err)
				}
			}
			if p.Y <= track.Top {
				// Nothing between the baseline and the separator
				break
			}
		}

		bottom, err := s.FindBottom(p)
		if err != nil {
			return nil, err
		}

		tm, err := s.ScanTrack(s.t.Lanes(bottom))
		if err != nil {
			return nil, err
		}
		masks = append(masks, tm...)
	}

	return masks, nil
}
