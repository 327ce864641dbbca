package main

import (
	"bytes"
	"testing"

	"github.com/bodgit/popn/chart"
	"github.com/stretchr/testify/assert"
)

func TestPrintMasks(t *testing.T) {
	b := new(bytes.Buffer)
	printMasks(b, []chart.Mask{chart.MaxMask, 1, 0x100})

	assert.Equal(t, "    0 ooooooooo 511\n    1 o........   1\n    2 ........o 256\n", b.String())
}
