package chart

import (
	"fmt"
	"image"
)

// Track is the geometry of the first track found in a row
type Track struct {
	// Top is the row of the separator line above the track
	Top int
	// Corner is the left end of the bottom line of the track
	Corner image.Point
}

func (s *Scanner) isSeparatorLine(x, y int) (bool, error) {
	for _, dx := range []int{-1, 0, 1} {
		ok, err := s.is(image.Pt(x+dx, y), SeparatorClass)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Locate finds the first track at or below start. It looks down the start
// column for a three pixel wide separator, follows the separator right to the
// first mark, steps down the track line by line to its last line and then
// left to where that line begins.
func (s *Scanner) Locate(start image.Point) (Track, error) {
	const op = "locate"

	height, width := s.grid.Height(), s.grid.Width()
	step := s.t.LineStep

	// Find a horizontal separator line
	p := start
	st := s.counter()
	for {
		if p.Y >= height {
			return Track{}, scanError(op, p, fmt.Errorf("%w: no separator below %v", ErrInvalidImage, start))
		}
		ok, err := s.isSeparatorLine(p.X, p.Y)
		if err != nil {
			return Track{}, scanError(op, p, err)
		}
		if ok {
			break
		}
		if err := st.next(); err != nil {
			return Track{}, scanError(op, p, err)
		}
		p.Y++
	}
	top := p.Y

	// Go right until the track edge is found
	st = s.counter()
	for {
		if p.X >= width {
			return Track{}, scanError(op, p, fmt.Errorf("%w: no track right of separator", ErrInvalidImage))
		}
		ok, err := s.is(p, MarkClass)
		if err != nil {
			return Track{}, scanError(op, p, err)
		}
		if ok {
			break
		}
		if err := st.next(); err != nil {
			return Track{}, scanError(op, p, err)
		}
		p.X++
	}

	// Go down until the last line is found
	st = s.counter()
	for p.Y+step < height {
		bg, err := s.is(image.Pt(p.X, p.Y+step), BackgroundClass)
		if err != nil {
			return Track{}, scanError(op, p, err)
		}
		if bg {
			break
		}
		if err := st.next(); err != nil {
			return Track{}, scanError(op, p, err)
		}
		p.Y += step
	}

	if p.Y > height-step {
		return Track{}, scanError(op, p, fmt.Errorf("%w: track ends too close to the bottom edge", ErrInvalidImage))
	}

	// Go left until the start of the line is found
	st = s.counter()
	for {
		ok, err := s.is(image.Pt(p.X-1, p.Y), MarkClass)
		if err != nil {
			return Track{}, scanError(op, p, err)
		}
		if !ok {
			break
		}
		if err := st.next(); err != nil {
			return Track{}, scanError(op, p, err)
		}
		p.X--
	}

	return Track{Top: top, Corner: p}, nil
}
