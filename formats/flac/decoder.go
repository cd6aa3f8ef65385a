// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacStream is an interface for flac.Stream to allow testing
type flacStream interface {
	ParseNext() (*frame.Frame, error)
	Seek(sampleNum uint64) (uint64, error)
	Close() error
}

type source struct {
	stream     flacStream
	sampleRate int
	channels   int
	length     int64 // interleaved samples, 0 when the stream info has none
	seekable   bool
	atEnd      bool

	// decoded but not yet returned samples of the current frame
	pending []float32
}

func newSource(stream flacStream, sampleRate, channels int, frames uint64, seekable bool) *source {
	return &source{
		stream:     stream,
		sampleRate: sampleRate,
		channels:   channels,
		length:     int64(frames) * int64(channels),
		seekable:   seekable,
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Length() int64   { return s.length }

func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// SeekSample lands on the first sample of the FLAC frame holding sample.
func (s *source) SeekSample(sample int64) (int64, error) {
	if !s.seekable {
		return 0, audio.ErrNotSeekable
	}

	if sample < 0 || (s.length > 0 && sample > s.length) {
		return 0, fmt.Errorf("%w: %d of %d", audio.ErrSeekOutOfRange, sample, s.length)
	}

	s.pending = s.pending[:0]

	if sample == s.length {
		s.atEnd = true
		return sample, nil
	}

	start, err := s.stream.Seek(uint64(sample / int64(s.channels)))
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	s.atEnd = false

	return int64(start) * int64(s.channels), nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.atEnd {
		return 0, io.EOF
	}

	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			f, err := s.stream.ParseNext()
			if err != nil {
				return n, err
			}
			s.interleave(f)
			continue
		}

		m := copy(dst[n:], s.pending)
		s.pending = s.pending[m:]
		n += m
	}

	return n, nil
}

// interleave replaces pending with the normalised samples of f.
func (s *source) interleave(f *frame.Frame) {
	if len(f.Subframes) == 0 {
		return
	}

	frames := len(f.Subframes[0].Samples)
	need := frames * s.channels
	if cap(s.pending) < need {
		s.pending = make([]float32, need)
	}
	s.pending = s.pending[:need]

	bits := int(f.BitsPerSample)
	for ch, sub := range f.Subframes {
		if ch >= s.channels {
			break
		}
		for i, v := range sub.Samples[:frames] {
			s.pending[i*s.channels+ch] = utils.IntToFloat32(int(v), bits)
		}
	}
}

// noClose keeps flac.Stream.Close away from the caller's reader.
type noClose struct{ io.ReadSeeker }

// Decoder decodes FLAC with mewkiz/flac. In audio.ModeScan all metadata
// blocks are parsed and seeking uses the seek table, or a frame search when
// there is none. audio.ModeSkipScan only reads the stream info, so seeking
// decodes forward.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker, mode audio.Mode) (audio.Source, error) {
	var (
		stream *flac.Stream
		err    error
	)

	if mode == audio.ModeScan {
		stream, err = flac.NewSeek(noClose{r})
	} else {
		stream, err = flac.New(audio.NoSeek(r))
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info

	return newSource(stream, int(info.SampleRate), int(info.NChannels), info.NSamples, mode == audio.ModeScan), nil
}
