// SPDX-License-Identifier: EPL-2.0

// Package source represents the bytes of a candidate audio stream.
//
// A Source is either a file on disk or a caller-owned byte slice:
//
//	src := source.File("track.mp3")
//	src := source.Buffer(data)
//
// Open returns a Handle, a seekable reader over those bytes. The package does
// not interpret the bytes in any way; decoders in formats/* do that. A file
// that cannot be opened for reading yields an error wrapping ErrUnavailable.
//
// Buffer never copies data. The slice must remain valid and unmodified for as
// long as a Handle opened from it is in use.
package source
