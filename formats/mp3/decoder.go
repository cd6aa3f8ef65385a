// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/utils"
)

// go-mp3 always produces 16-bit little-endian stereo, mono streams get
// the same sample in both slots
const (
	bytesPerSample = 2
	bytesPerFrame  = 2 * bytesPerSample
)

// prerollFrames is how many MPEG frames are decoded and dropped ahead of a
// seek target. go-mp3 restarts from the frame before the target with an
// empty bit reservoir and synthesis state; both are rebuilt after this many.
const prerollFrames = 4

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	io.ReadSeeker
	SampleRate() int
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	frameBytes int64 // decoded bytes per MPEG frame
	seekable   bool
	length     int64 // interleaved samples, 0 when unknown
	atEnd      bool
	buf        []byte
}

func newSource(dec mp3Reader, h frameHeader, seekable bool) *source {
	s := &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   h.channels(),
		frameBytes: int64(h.samplesPerFrame()) * bytesPerFrame,
		seekable:   seekable,
		buf:        make([]byte, 8192),
	}

	// Length is -1 unless the decoder was able to scan every frame
	if l := dec.Length(); l > 0 {
		s.length = l / bytesPerFrame * int64(s.channels)
	}

	return s
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) Length() int64   { return s.length }

// settle decodes the last indexed frames once and shortens length to what
// they actually produce. go-mp3 indexes a frame as soon as its header
// reads, so a stream cut inside its final frame claims audio it never
// delivers.
func (s *source) settle() error {
	indexed := s.length / int64(s.channels) * bytesPerFrame

	pos := max(indexed-2*s.frameBytes, 0)
	if _, err := s.dec.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("checking last frame: %w", err)
	}

	n, err := io.Copy(io.Discard, s.dec)
	if err != nil {
		return fmt.Errorf("checking last frame: %w", err)
	}

	if decoded := pos + n; decoded < indexed {
		s.length = decoded / bytesPerFrame * int64(s.channels)
	}

	if _, err := s.dec.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *source) SeekSample(sample int64) (int64, error) {
	if !s.seekable {
		return 0, audio.ErrNotSeekable
	}

	if sample < 0 || sample > s.length {
		return 0, fmt.Errorf("%w: %d of %d", audio.ErrSeekOutOfRange, sample, s.length)
	}

	frame := sample / int64(s.channels)
	sample = frame * int64(s.channels)

	// go-mp3 cannot seek onto the end of its own frame index
	if sample == s.length {
		s.atEnd = true
		return sample, nil
	}

	target := frame * bytesPerFrame
	start := max(target/s.frameBytes-prerollFrames, 0) * s.frameBytes

	if _, err := s.dec.Seek(start, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	if _, err := io.CopyN(io.Discard, s.dec, target-start); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	s.atEnd = false

	return sample, nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.atEnd {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, nil
	}

	bytesNeeded := frames * bytesPerFrame
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	n -= n % bytesPerFrame
	if n == 0 {
		return 0, err
	}

	if s.channels == 2 {
		return utils.Int16LEToFloat32(dst, s.buf[:n]), err
	}

	// mono: keep the left slot of every decoded frame
	got := n / bytesPerFrame
	for i := range got {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerFrame:])))
	}

	return got, err
}

// Decoder decodes MPEG audio with go-mp3.
//
// In audio.ModeScan the whole input is walked once to index every frame,
// which gives an exact Length and constant time seeking. In
// audio.ModeSkipScan the input is consumed as a plain stream; there is no
// length and seeking has to decode forward.
//
// Single channel streams are reported as mono even though go-mp3 itself
// always emits stereo.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker, mode audio.Mode) (audio.Source, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var in io.Reader = r
	if mode == audio.ModeSkipScan {
		in = audio.NoSeek(r)
	}

	dec, err := gomp3.NewDecoder(in)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s := newSource(dec, h, mode == audio.ModeScan)
	if s.length > 0 {
		if err := s.settle(); err != nil {
			return nil, err
		}
	}

	return s, nil
}
