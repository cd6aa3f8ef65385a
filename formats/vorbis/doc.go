// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding for sessions.
//
// This package uses github.com/jfreymuth/oggvorbis. Samples come out
// interleaved as float32 in [-1.0, 1.0]:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// In audio.ModeScan the reader locates the last Ogg page when opening, so
// Length is exact and SeekSample lands on the requested frame by seeking to
// the preceding page and decoding forward inside oggvorbis. In
// audio.ModeSkipScan neither is available and an audio.Stream falls back to
// decoding forward from the current position.
package vorbis
