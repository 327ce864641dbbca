package popn

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/popn/chart"
	"github.com/bodgit/popn/notes"
	"golang.org/x/exp/slices"
)

// Extensions lists the image file extensions treated as charts. Only
// lossless formats are listed as colors must match exactly.
var Extensions = []string{".png", ".gif"}

const workers = 10

func isChart(file string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(file)))
}

// Errors that mean the image is not a usable chart rather than a failure
// of the scan itself
func isChartError(err error) bool {
	for _, target := range []error{errDecode, chart.ErrInvalidImage, chart.ErrMalformedTrack, chart.ErrBoundsExceeded, chart.ErrUnboundedScan} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (p *Popn) findCharts(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !isChart(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *Popn) chartWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			ch, err := p.db.AddChart(file, p.config)
			if err != nil {
				if isChartError(err) {
					p.logger.Printf("Skipping \"%s\": %s\n", file, err)
					continue
				}
				errc <- err
				return
			}

			if err := notes.WriteFile(notes.Filename(file), ch.Notes); err != nil {
				errc <- err
				return
			}
			p.logger.Printf("Detected %d lines in \"%s\"\n", ch.Notes.Len(), file)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path looking for chart images, detects the notes in each one,
// writes them to a notes file alongside the image and records the chart in
// the catalogue. Images that are not valid charts are logged and skipped.
func (p *Popn) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := p.findCharts(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := p.chartWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
