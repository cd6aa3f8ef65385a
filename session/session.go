// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/source"
)

// Info describes a decoded stream. Frames counts sample-per-channel groups,
// not interleaved samples.
type Info struct {
	Channels   uint32
	SampleRate uint32
	Frames     uint64
}

// Duration of Frames at SampleRate.
func (i Info) Duration() time.Duration {
	if i.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(i.Frames) / float64(i.SampleRate) * float64(time.Second))
}

// Result of a successful Read.
type Result struct {
	Frames uint64
	Info   Info
}

type Config struct {
	// SkipScan opens without establishing the exact length. Info.Frames is
	// then advisory and may be 0.
	SkipScan bool
	// Log receives debug and warning messages. Nil discards them.
	Log audio.Logger
}

type state uint8

const (
	stateReady state = iota
	stateInvalid
	stateFailed
	stateClosed
)

// Session is one decoding pass over one source. It is not safe for
// concurrent use; distinct sessions share nothing and may run in parallel.
type Session struct {
	handle source.Handle
	stream *audio.Stream
	log    audio.Logger

	info   Info
	cursor uint64
	fresh  bool
	state  state
	err    error
}

// Open opens src with dec for streaming reads, positioned at frame 0.
func Open(dec audio.Decoder, src source.Source, cfg Config) (*Session, error) {
	log := cfg.Log
	if log == nil {
		log = &audio.NullLogger{}
	}
	log = log.WithField("source", src.String())

	h, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	mode := audio.ModeScan
	if cfg.SkipScan {
		mode = audio.ModeSkipScan
	}

	stream, err := audio.Open(dec, h, mode)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	// the decoder accepted the input but found no audio in it
	channels, rate := stream.Channels(), stream.SampleRate()
	if channels <= 0 || rate <= 0 {
		stream.Close()
		h.Close()
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrFormat, channels, rate)
	}

	s := &Session{
		handle: h,
		stream: stream,
		log:    log,
		info: Info{
			Channels:   uint32(channels),
			SampleRate: uint32(rate),
			Frames:     uint64(stream.Length()) / uint64(channels),
		},
		fresh: true,
	}

	log.WithField("mode", mode.String()).
		WithField("channels", channels).
		WithField("rate", rate).
		WithField("frames", s.info.Frames).
		Debugf("opened")

	return s, nil
}

// Probe scans src to learn its exact length, channel count and sample rate.
// No session is retained.
func Probe(dec audio.Decoder, src source.Source) (Info, error) {
	s, err := Open(dec, src, Config{})
	if err != nil {
		return Info{}, err
	}
	defer s.Close()

	return s.info, nil
}

func (s *Session) Info() Info { return s.info }

// Cursor is the frame offset of the next Read. It is meaningless after a
// failed Seek until the next successful one.
func (s *Session) Cursor() uint64 { return s.cursor }

// Seek moves the cursor to frame. Seeking to 0 on a session that has not
// moved yet does nothing; otherwise 0 means the true start of the stream.
func (s *Session) Seek(frame uint64) error {
	switch s.state {
	case stateClosed:
		return ErrClosed
	case stateFailed:
		return s.err
	}

	if frame == 0 && s.fresh {
		return nil
	}

	ch := uint64(s.info.Channels)
	if frame > math.MaxInt64/ch {
		return s.invalidate(frame, fmt.Errorf("%w: frame offset overflows", audio.ErrSeekOutOfRange))
	}

	if err := s.stream.Seek(int64(frame * ch)); err != nil {
		return s.invalidate(frame, err)
	}

	s.log.WithField("cursor", frame).Debugf("seek")

	s.cursor = frame
	s.fresh = false
	s.state = stateReady
	s.err = nil

	return nil
}

func (s *Session) invalidate(frame uint64, err error) error {
	s.state = stateInvalid
	s.fresh = false
	s.err = fmt.Errorf("%w: frame %d: %w", ErrSeek, frame, err)
	s.log.WithError(err).WithField("frame", frame).Debugf("seek failed")

	return s.err
}

// Read decodes into dst and stops at the first of: the end of the stream,
// len(dst)/channels frames, or maxFrames frames when maxFrames is nonzero.
// Reaching the end of the stream early is not an error; a decoder failure
// is reported as a *DecodeError and the session should then be closed.
func (s *Session) Read(dst []float32, maxFrames uint64) (Result, error) {
	switch s.state {
	case stateClosed:
		return Result{}, ErrClosed
	case stateInvalid, stateFailed:
		return Result{}, s.err
	}

	ch := uint64(s.info.Channels)
	bound := uint64(len(dst)) / ch
	if maxFrames != 0 && maxFrames < bound {
		bound = maxFrames
	}

	res := Result{Info: s.info}
	if bound == 0 {
		return res, nil
	}

	want := bound * ch
	n := uint64(s.stream.Read(dst[:want]))
	s.fresh = false

	if n != want && s.stream.LastError() != audio.CodeNone {
		derr := &DecodeError{
			Code:   s.stream.LastError(),
			Frames: n / ch,
			Err:    s.stream.Err(),
		}
		s.state = stateFailed
		s.err = derr
		s.log.WithError(derr).WithField("cursor", s.cursor+n/ch).Warnf("read failed")

		return Result{}, derr
	}

	res.Frames = n / ch
	s.cursor += res.Frames

	s.log.WithField("frames", res.Frames).WithField("cursor", s.cursor).Debugf("read %d of %d frames", res.Frames, bound)

	return res, nil
}

// Close releases the decoder and the source handle. Later calls are no-ops.
func (s *Session) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed

	return errors.Join(s.stream.Close(), s.handle.Close())
}
