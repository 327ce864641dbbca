/*
Package popn is a library for extracting the notes from pop'n music chart
images and keeping a catalogue of the results.
*/
package popn

import (
	"errors"
	"io"
	"log"

	"github.com/bodgit/popn/chart"
)

var errNotFound = errors.New("chart not found")

// Popn ties the chart scanner to a catalogue and a logger
type Popn struct {
	db     *ChartDB
	logger *log.Logger
	config chart.Config
}

// New opens the catalogue in file. Charts are scanned with c.
func New(file string, logger *log.Logger, c chart.Config) (*Popn, error) {
	db, err := NewChartDB(file)
	if err != nil {
		return nil, err
	}

	return &Popn{
		db:     db,
		logger: logger,
		config: c,
	}, nil
}

// Close closes the catalogue
func (p *Popn) Close() error {
	return p.db.Close()
}

// Import detects and stores a single chart image
func (p *Popn) Import(file string) (*Chart, error) {
	ch, err := p.db.AddChart(file, p.config)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("Imported \"%s\" as %s with %d lines and %d notes\n", file, ch.SHA1, ch.Notes.Len(), ch.Notes.Count())
	return ch, nil
}

// Detect detects and stores a chart image read from r
func (p *Popn) Detect(name string, r io.Reader) (*Chart, error) {
	return p.db.addChart(name, r, p.config)
}

// Chart returns the stored chart for the given image SHA-1 or nil
func (p *Popn) Chart(sha string) (*Chart, error) {
	return p.db.FindChartBySHA1(sha)
}

// Charts returns every stored chart
func (p *Popn) Charts() ([]Chart, error) {
	return p.db.Charts()
}
