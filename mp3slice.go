// SPDX-License-Identifier: EPL-2.0

package mp3slice

import (
	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/formats/mp3"
	"github.com/ik5/mp3slice/session"
	"github.com/ik5/mp3slice/source"
)

type (
	Info        = session.Info
	Result      = session.Result
	DecodeError = session.DecodeError
)

var (
	ErrSourceUnavailable = session.ErrSourceUnavailable
	ErrFormat            = session.ErrFormat
	ErrSeek              = session.ErrSeek
	ErrDecode            = session.ErrDecode
)

// ProbeFile reports the exact frame count, channels and sample rate of the
// MP3 file at path.
func ProbeFile(path string) (Info, error) {
	return Probe(mp3.Decoder{}, source.File(path))
}

// ProbeBuffer is ProbeFile for MP3 data already in memory.
func ProbeBuffer(data []byte) (Info, error) {
	return Probe(mp3.Decoder{}, source.Buffer(data))
}

// ReadFile decodes up to maxFrames frames of the MP3 file at path into out,
// starting at frame start. A zero start reads from the beginning and a zero
// maxFrames leaves len(out) and the end of the stream as the only bounds.
func ReadFile(path string, start, maxFrames uint64, out []float32) (Result, error) {
	return Read(mp3.Decoder{}, source.File(path), start, maxFrames, out)
}

// ReadBuffer is ReadFile for MP3 data already in memory.
func ReadBuffer(data []byte, start, maxFrames uint64, out []float32) (Result, error) {
	return Read(mp3.Decoder{}, source.Buffer(data), start, maxFrames, out)
}

// Probe scans src with dec.
func Probe(dec audio.Decoder, src source.Source) (Info, error) {
	return session.Probe(dec, src)
}

// Read opens src without a length scan, seeks to start when it is nonzero
// and performs a single bounded read into out.
func Read(dec audio.Decoder, src source.Source, start, maxFrames uint64, out []float32) (Result, error) {
	s, err := session.Open(dec, src, session.Config{SkipScan: true})
	if err != nil {
		return Result{}, err
	}
	defer s.Close()

	if start != 0 {
		if err := s.Seek(start); err != nil {
			return Result{}, err
		}
	}

	return s.Read(out, maxFrames)
}

// Decode reads an MP3 window into a newly allocated slice. The source is
// probed first to size the slice, so it is scanned twice. The returned
// slice holds exactly the frames decoded.
func Decode(src source.Source, start, maxFrames uint64) ([]float32, Info, error) {
	return DecodeWith(mp3.Decoder{}, src, start, maxFrames)
}

// DecodeWith is Decode for any format.
func DecodeWith(dec audio.Decoder, src source.Source, start, maxFrames uint64) ([]float32, Info, error) {
	info, err := Probe(dec, src)
	if err != nil {
		return nil, Info{}, err
	}

	var frames uint64
	if start < info.Frames {
		frames = info.Frames - start
	}
	if maxFrames != 0 && maxFrames < frames {
		frames = maxFrames
	}

	ch := uint64(info.Channels)
	out := make([]float32, frames*ch)

	// a window past the end still goes through Read so the seek fails
	res, err := Read(dec, src, start, maxFrames, out)
	if err != nil {
		return nil, Info{}, err
	}

	return out[:res.Frames*ch], info, nil
}
