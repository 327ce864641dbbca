package chart

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidImage means no track geometry could be found
	ErrInvalidImage = errors.New("chart: invalid image")
	// ErrMalformedTrack means a track did not have the expected shape
	ErrMalformedTrack = errors.New("chart: malformed track")
	// ErrBoundsExceeded means a scan stepped outside the image
	ErrBoundsExceeded = errors.New("chart: coordinate out of bounds")
	// ErrUnboundedScan means a scan ran past Config.MaxSteps
	ErrUnboundedScan = errors.New("chart: scan exceeded step limit")
)

// ScanError records the operation and position at which a scan failed
type ScanError struct {
	Op    string
	Point image.Point
	Err   error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at %v: %v", e.Op, e.Point, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

func scanError(op string, p image.Point, err error) error {
	var se *ScanError
	if errors.As(err, &se) {
		return err
	}
	return &ScanError{Op: op, Point: p, Err: err}
}
