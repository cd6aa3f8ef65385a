// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff. Uncompressed PCM at 8, 16, 24
// and 32 bits is decoded to interleaved float32 samples in [-1.0, 1.0].
// AIFF-C files are rejected.
//
// The COMM chunk carries the frame count, so Length is exact whichever
// audio.Mode is requested. The source cannot seek natively; an
// audio.Stream reaches an offset by decoding forward.
//
//	src, err := aiff.Decoder{}.Decode(f, audio.ModeScan)
//	switch {
//	case errors.Is(err, aiff.ErrNotAiffFile):
//	    // not FORM/AIFF
//	case errors.Is(err, aiff.ErrUnsupportedBitDepth):
//	    // e.g. 12-bit samples
//	}
package aiff
