// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MPEG audio decoding for sessions.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 streams
// into interleaved float32 samples in [-1.0, 1.0].
//
// # Modes
//
// In audio.ModeScan the decoder walks every frame header once, so Length is
// exact and SeekSample jumps to a few frames before the target and decodes
// forward, so the samples match a sequential read:
//
//	src, err := mp3.Decoder{}.Decode(f, audio.ModeScan)
//	if err != nil {
//	    // not an MP3 stream
//	}
//	total := src.(audio.Lengther).Length()
//
// In audio.ModeSkipScan the input is read as a plain stream. Opening is
// cheap, Length reports 0 and SeekSample returns audio.ErrNotSeekable, so
// an audio.Stream positions itself by decoding forward.
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: 1 or 2, taken from the channel mode of the first frame
//   - MPEG-1 and MPEG-2 Layer III (go-mp3 does not decode MPEG-2.5)
//   - Sample rate: as encoded (typically 44.1kHz or 48kHz)
//
// # Limitations
//
//   - Decoding only
//   - No gapless trimming: encoder delay and padding are returned as samples
//   - ID3v2 tags are skipped, other metadata is ignored
package mp3
