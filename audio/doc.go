// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoding engine contract used by sessions.
//
// The package contains:
//   - Source, the forward PCM reader every format produces
//   - Decoder, which opens a Source over a seekable byte stream
//   - Stream, a sample-addressed handle with seek and last-error reporting
//   - Registry for looking decoders up by format key or file extension
//
// # Source Interface
//
// Every format package returns a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples returns
// io.EOF once the stream is finished. Sources that can reposition cheaply
// also implement Seeker, and sources that know their length implement
// Lengther.
//
// # Modes
//
// Decoders are opened in one of two modes. ModeScan establishes the exact
// length up front, which may mean walking the whole input. ModeSkipScan only
// reads what it needs to learn the channel count and sample rate; the length
// can then be 0 or approximate.
//
// # Streams
//
// A Stream wraps a Source and speaks interleaved sample offsets:
//
//	s, err := audio.Open(mp3.Decoder{}, handle, audio.ModeSkipScan)
//	if err != nil {
//	    // not a decodable stream
//	}
//	defer s.Close()
//
//	if err := s.Seek(48000 * int64(s.Channels())); err != nil {
//	    // offset could not be resolved
//	}
//
//	buf := make([]float32, 4096)
//	n := s.Read(buf)
//	if n < len(buf) && s.LastError() != audio.CodeNone {
//	    // decoder failure, see s.Err()
//	}
//
// Seek uses the Source's native seeking when available and otherwise decodes
// forward, rewinding the input first when moving backwards.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("mp3", mp3.Decoder{})
//	decoder, err := registry.Lookup("song.mp3")
package audio
