package chart

import (
	"fmt"
	"image"
)

// FindBottom follows a vertical run of mark pixels down from edge and
// returns the lowest pixel of the run. The run also ends at the bottom edge
// of the grid.
func (s *Scanner) FindBottom(edge image.Point) (image.Point, error) {
	const op = "find bottom"

	ok, err := s.is(edge, MarkClass)
	if err != nil {
		return image.Point{}, scanError(op, edge, err)
	}
	if !ok {
		return image.Point{}, scanError(op, edge, fmt.Errorf("%w: adjacent track not found", ErrMalformedTrack))
	}

	p := edge
	st := s.counter()
	for p.Y+1 < s.grid.Height() {
		ok, err := s.is(image.Pt(p.X, p.Y+1), MarkClass)
		if err != nil {
			return image.Point{}, scanError(op, p, err)
		}
		if !ok {
			break
		}
		if err := st.next(); err != nil {
			return image.Point{}, scanError(op, p, err)
		}
		p.Y++
	}
	return p, nil
}

// FindLowerLine looks down the column of start for the next mark pixel below
// it. The boolean is false if the bottom of the grid is reached first.
func (s *Scanner) FindLowerLine(start image.Point) (image.Point, bool, error) {
	const op = "find lower line"

	st := s.counter()
	for p := image.Pt(start.X, start.Y+1); p.Y < s.grid.Height(); p.Y++ {
		ok, err := s.is(p, MarkClass)
		if err != nil {
			return image.Point{}, false, scanError(op, p, err)
		}
		if ok {
			return p, true, nil
		}
		if err := st.next(); err != nil {
			return image.Point{}, false, scanError(op, p, err)
		}
	}
	return image.Point{}, false, nil
}
