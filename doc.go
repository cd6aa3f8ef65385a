// SPDX-License-Identifier: EPL-2.0

// Package mp3slice reads windows of decoded PCM out of MP3 streams without
// decoding the whole stream.
//
// A window is a start frame and an optional frame count. Samples come back
// as interleaved float32 values in [-1.0, 1.0] in a buffer the caller owns.
//
// # Probing
//
// ProbeFile and ProbeBuffer scan the stream once and report its exact
// length, channel count and sample rate:
//
//	info, err := mp3slice.ProbeFile("podcast.mp3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Frames, info.Channels, info.SampleRate, info.Duration())
//
// # Reading a Window
//
// ReadFile and ReadBuffer open the stream without a length scan, seek to
// the start frame and fill the buffer once:
//
//	out := make([]float32, 44100*2) // one second of stereo
//	res, err := mp3slice.ReadFile("podcast.mp3", 10*44100, 0, out)
//	if err != nil {
//	    return err
//	}
//	window := out[:res.Frames*uint64(res.Info.Channels)]
//
// The read stops at whichever comes first: the end of the buffer, maxFrames
// frames when nonzero, or the end of the stream. Reaching the end of the
// stream early is not an error.
//
// Decode allocates the buffer itself, probing first to size it.
//
// # Errors
//
// Failures match one of:
//   - ErrSourceUnavailable: the file could not be opened
//   - ErrFormat: not a decodable stream, including zero channels or sample rate
//   - ErrSeek: the start frame is outside the stream
//   - ErrDecode: the stream is corrupt mid-way; errors.As gives a *DecodeError
//
// # Other Formats
//
// Probe, Read and DecodeWith take any audio.Decoder, so the same windowed
// reads work for the engines under formats/:
//
//	res, err := mp3slice.Read(flac.Decoder{}, source.File("take.flac"), 0, 0, out)
//
// The session package exposes the underlying Open/Seek/Read/Close session
// for callers that need several reads from one stream.
package mp3slice
