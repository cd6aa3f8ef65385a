// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/mp3slice/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	SetPosition(frame int64) error
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	seekable   bool
}

func newSource(dec oggReader, seekable bool) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		seekable:   seekable,
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// Length in interleaved samples. oggvorbis counts frames and reports 0 when
// the last page could not be located.
func (s *source) Length() int64 { return s.dec.Length() * int64(s.channels) }

func (s *source) SeekSample(sample int64) (int64, error) {
	if !s.seekable {
		return 0, audio.ErrNotSeekable
	}

	frame := sample / int64(s.channels)
	if frame < 0 || frame > s.dec.Length() {
		return 0, fmt.Errorf("%w: frame %d of %d", audio.ErrSeekOutOfRange, frame, s.dec.Length())
	}

	if err := s.dec.SetPosition(frame); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return frame * int64(s.channels), nil
}

// ReadSamples reads whole frames only; oggvorbis drops a trailing partial
// frame from the request.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) < s.channels {
		return 0, nil
	}

	return s.dec.Read(dst)
}

// Decoder decodes Ogg Vorbis with oggvorbis. In audio.ModeScan the last
// Ogg page is located up front, which gives an exact Length and page-level
// seeking. audio.ModeSkipScan hides the seeker, so neither is available.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker, mode audio.Mode) (audio.Source, error) {
	var in io.Reader = r
	if mode == audio.ModeSkipScan {
		in = audio.NoSeek(r)
	}

	dec, err := oggvorbis.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec, mode == audio.ModeScan), nil
}
