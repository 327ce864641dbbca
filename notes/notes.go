/*
Package notes implements the small binary file written next to each chart
image once its notes have been detected.

The file starts with the four byte magic "POPN" and a 16-bit version,
followed by a 32-bit count of masks, the masks themselves as 16-bit values
and finally a CRC-32 of the mask bytes. All values are little endian.
*/
package notes

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/popn/chart"
)

const (
	// Extension is the file extension used when writing to disk
	Extension = ".notes"

	// Version is the current file format version
	Version = 1

	magic = "POPN"
)

var (
	errBadMagic    = errors.New("notes: bad magic")
	errBadVersion  = errors.New("notes: unsupported version")
	errBadChecksum = errors.New("notes: checksum mismatch")
	errTooMuch     = errors.New("notes: trailing data")
)

// Sequence is an ordered list of masks as produced by chart.Detect. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Sequence []chart.Mask

// Len returns the number of masks
func (s Sequence) Len() int {
	return len(s)
}

// Count returns how many notes are in the sequence across all lanes
func (s Sequence) Count() int {
	n := 0
	for _, m := range s {
		for i := 0; i < chart.Lanes; i++ {
			if m.Has(i) {
				n++
			}
		}
	}
	return n
}

// MarshalBinary encodes the sequence into binary form and returns the result
func (s Sequence) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteString(magic)

	header := struct {
		Version uint16
		Count   uint32
	}{Version, uint32(len(s))}
	if err := binary.Write(b, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	masks := make([]uint16, len(s))
	for i, m := range s {
		if !m.Valid() {
			return nil, fmt.Errorf("notes: mask %d out of range: %d", i, m)
		}
		masks[i] = uint16(m)
	}

	// Write out masks, checksumming as we go
	h := crc32.NewIEEE()
	if err := binary.Write(io.MultiWriter(b, h), binary.LittleEndian, masks); err != nil {
		return nil, err
	}

	if err := binary.Write(b, binary.LittleEndian, h.Sum32()); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the sequence from binary form
func (s *Sequence) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var m [len(magic)]byte
	if _, err := io.ReadFull(r, m[:]); err != nil || string(m[:]) != magic {
		return errBadMagic
	}

	var header struct {
		Version uint16
		Count   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return err
	}
	if header.Version != Version {
		return errBadVersion
	}

	// Each mask takes two bytes and the checksum four more
	if int64(header.Count)*2+4 != int64(r.Len()) {
		if int64(header.Count)*2+4 < int64(r.Len()) {
			return errTooMuch
		}
		return io.ErrUnexpectedEOF
	}

	masks := make([]uint16, header.Count)
	h := crc32.NewIEEE()
	if err := binary.Read(io.TeeReader(r, h), binary.LittleEndian, masks); err != nil {
		return err
	}

	var sum uint32
	if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
		return err
	}
	if sum != h.Sum32() {
		return errBadChecksum
	}

	seq := make(Sequence, len(masks))
	for i, v := range masks {
		seq[i] = chart.Mask(v)
		if !seq[i].Valid() {
			return fmt.Errorf("notes: mask %d out of range: %d", i, v)
		}
	}
	*s = seq

	return nil
}

// Filename returns the notes filename that belongs next to the chart image
// at path
func Filename(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + Extension
}

// WriteFile writes s to file
func WriteFile(file string, s Sequence) error {
	b, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	return ioutil.WriteFile(file, b, 0644)
}

// ReadFile reads a sequence previously written with WriteFile
func ReadFile(file string) (Sequence, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var s Sequence
	if err := s.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return s, nil
}
