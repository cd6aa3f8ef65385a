// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC decoding for sessions using
// github.com/mewkiz/flac.
//
// Samples of every bit depth FLAC allows are normalised to float32 in
// [-1.0, 1.0] and interleaved. The frame count comes from the STREAMINFO
// block; encoders that leave it empty produce a Length of 0.
//
// In audio.ModeScan the decoder is opened with flac.NewSeek and SeekSample
// lands on the start of the frame holding the target. An audio.Stream then
// decodes the rest of the way.
package flac
