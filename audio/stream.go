// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// discardFrames is the scratch size, in frames, used when skipping forward.
const discardFrames = 1024

// Stream is an opened decoder handle addressed in interleaved samples.
//
// Read never returns an error. After a short read, LastError tells a clean
// end of stream (CodeNone) apart from a decoder failure, and Err holds the
// underlying cause. A Stream is not safe for concurrent use.
type Stream struct {
	dec  Decoder
	r    io.ReadSeeker
	mode Mode
	src  Source

	channels   int
	sampleRate int
	length     int64
	pos        int64

	lastErr ErrorCode
	err     error
	broken  error
	closed  bool
	scratch []float32
}

// Open decodes the head of r with dec and returns a Stream positioned at
// sample 0. The Stream does not take ownership of r.
func Open(dec Decoder, r io.ReadSeeker, mode Mode) (*Stream, error) {
	src, err := dec.Decode(r, mode)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		dec:        dec,
		r:          r,
		mode:       mode,
		src:        src,
		channels:   src.Channels(),
		sampleRate: src.SampleRate(),
	}

	if l, ok := src.(Lengther); ok {
		s.length = max(l.Length(), 0)
	}

	return s, nil
}

func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) SampleRate() int { return s.sampleRate }

// Length is the total number of interleaved samples, 0 when unknown.
func (s *Stream) Length() int64 { return s.length }

// Position is the interleaved sample offset of the next Read.
func (s *Stream) Position() int64 { return s.pos }

// LastError is the status of the most recent Read or Seek.
func (s *Stream) LastError() ErrorCode { return s.lastErr }

// Err is the error behind LastError, nil after a clean read.
func (s *Stream) Err() error { return s.err }

// Read fills dst until it is full, the stream ends, or decoding fails, and
// returns the number of samples written.
func (s *Stream) Read(dst []float32) int {
	s.lastErr, s.err = CodeNone, nil

	switch {
	case s.closed:
		s.fail(ErrStreamClosed)
		return 0
	case s.broken != nil:
		s.fail(s.broken)
		return 0
	}

	n := 0
	for n < len(dst) {
		m, err := s.src.ReadSamples(dst[n:])
		n += m

		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.fail(err)
			}
			break
		}

		// no progress without an error is treated as the end of stream
		if m == 0 {
			break
		}
	}

	s.pos += int64(n)

	return n
}

// Seek moves to the interleaved sample offset sample.
func (s *Stream) Seek(sample int64) error {
	s.lastErr, s.err = CodeNone, nil

	if s.closed {
		return ErrStreamClosed
	}

	if sample < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrSeekOutOfRange, sample)
	}

	if s.mode == ModeScan && s.length > 0 && sample > s.length {
		return fmt.Errorf("%w: %d > %d", ErrSeekOutOfRange, sample, s.length)
	}

	if sk, ok := s.src.(Seeker); ok && s.broken == nil {
		landed, err := sk.SeekSample(sample)
		switch {
		case err == nil:
			s.pos = landed
			return s.discard(sample - landed)
		case !errors.Is(err, ErrNotSeekable):
			s.fail(err)
			return fmt.Errorf("seek to %d: %w", sample, err)
		}
	}

	if sample < s.pos || s.broken != nil {
		if err := s.rewind(); err != nil {
			return err
		}
	}

	return s.discard(sample - s.pos)
}

// Close releases the decoder. Closing twice is a no-op.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *Stream) fail(err error) {
	s.err = err
	s.lastErr = Classify(err)
	if s.lastErr == CodeNone {
		s.lastErr = CodeDecode
	}
}

// rewind re-opens the decoder from the first byte of the input.
func (s *Stream) rewind() error {
	if err := s.src.Close(); err != nil {
		s.broken = err
		s.fail(err)
		return fmt.Errorf("rewind: closing decoder: %w", err)
	}

	if _, err := s.r.Seek(0, io.SeekStart); err != nil {
		s.broken = err
		s.fail(err)
		return fmt.Errorf("rewind: %w", err)
	}

	src, err := s.dec.Decode(s.r, s.mode)
	if err != nil {
		s.broken = err
		s.fail(err)
		return fmt.Errorf("rewind: %w", err)
	}

	s.src = src
	s.pos = 0
	s.broken = nil

	return nil
}

// discard decodes and drops n samples.
func (s *Stream) discard(n int64) error {
	if n <= 0 {
		return nil
	}

	if s.scratch == nil {
		s.scratch = make([]float32, discardFrames*max(s.channels, 1))
	}

	for n > 0 {
		chunk := s.scratch[:min(n, int64(len(s.scratch)))]
		got := s.Read(chunk)
		n -= int64(got)

		if got < len(chunk) {
			if s.lastErr != CodeNone {
				return fmt.Errorf("seek: %w", s.err)
			}
			if n > 0 {
				return fmt.Errorf("%w: stream ended %d samples early", ErrSeekOutOfRange, n)
			}
		}
	}

	return nil
}
