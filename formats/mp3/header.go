// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var errNoFrame = errors.New("mp3: no frame header found")

// frameHeader is the 32 bit header word that starts every MPEG audio frame.
type frameHeader uint32

func (h frameHeader) version() uint32 { return uint32(h>>19) & 0b11 }
func (h frameHeader) layer() uint32   { return uint32(h>>17) & 0b11 }
func (h frameHeader) mode() uint32    { return uint32(h>>6) & 0b11 }

// valid accepts the same headers go-mp3 syncs on.
func (h frameHeader) valid() bool {
	const sync = 0xffe00000

	return uint32(h)&sync == sync &&
		h.version() != 0b01 &&
		h.layer() != 0b00 &&
		(h>>12)&0xf != 0xf &&
		(h>>10)&0b11 != 0b11 &&
		h&0b11 != 0b10
}

func (h frameHeader) channels() int {
	if h.mode() == 0b11 {
		return 1
	}
	return 2
}

// samplesPerFrame is the Layer III frame length: MPEG-2 and 2.5 carry a
// single granule.
func (h frameHeader) samplesPerFrame() int {
	if h.version() == 0b11 {
		return 1152
	}
	return 576
}

// readHeader finds the first frame header after an optional ID3v2 tag and
// rewinds r to the start.
func readHeader(r io.ReadSeeker) (frameHeader, error) {
	var tag [10]byte
	n, err := io.ReadFull(r, tag[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, fmt.Errorf("%w: %w", errNoFrame, err)
	}

	var skip int64
	if n == len(tag) && string(tag[:3]) == "ID3" {
		size := int64(tag[6])<<21 | int64(tag[7])<<14 | int64(tag[8])<<7 | int64(tag[9])
		skip = int64(len(tag)) + size
	}

	if _, err := r.Seek(skip, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	br := bufio.NewReader(r)

	var word [4]byte
	if _, err := io.ReadFull(br, word[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", errNoFrame, err)
	}

	h := frameHeader(binary.BigEndian.Uint32(word[:]))
	for !h.valid() {
		b, err := br.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errNoFrame, err)
		}
		h = h<<8 | frameHeader(b)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return h, nil
}
