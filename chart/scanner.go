package chart

import "image"

// Scanner reads notes from a single Grid. It holds no state beyond its
// configuration so it may be reused for repeated scans of the same grid.
type Scanner struct {
	grid     Grid
	t        Template
	maxSteps int
}

// NewScanner returns a Scanner over g
func NewScanner(g Grid, c Config) *Scanner {
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	if c.Template == (Template{}) {
		c.Template = DefaultTemplate
	}
	return &Scanner{
		grid:     g,
		t:        c.Template,
		maxSteps: c.MaxSteps,
	}
}

func (s *Scanner) classAt(p image.Point) (Class, error) {
	c, err := s.grid.ColorAt(p.X, p.Y)
	if err != nil {
		return Other, err
	}
	return Classify(c), nil
}

func (s *Scanner) is(p image.Point, class Class) (bool, error) {
	c, err := s.classAt(p)
	if err != nil {
		return false, err
	}
	return c == class, nil
}

// steps counts iterations of a single scan loop
type steps struct {
	n, max int
}

func (s *Scanner) counter() *steps {
	return &steps{max: s.maxSteps}
}

func (st *steps) next() error {
	st.n++
	if st.n > st.max {
		return ErrUnboundedScan
	}
	return nil
}
