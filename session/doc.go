// SPDX-License-Identifier: EPL-2.0

// Package session implements a bounded decoding session over a single
// source: open, optionally seek to a frame, read a bounded number of frames
// into a caller buffer, close.
//
// All positions and counts are in frames. A frame is one sample for each
// channel, so a buffer of n float32 values holds n/Channels frames.
//
// A session moves through a small set of states. After Open it is ready.
// A failed Seek leaves it invalid: reads return the seek error until a later
// Seek succeeds. A decoder failure during Read leaves it failed: the same
// *DecodeError is returned from every later Read or Seek, and the session
// should be closed. Close releases everything and is safe to call twice.
//
// Errors fall into five kinds that callers can tell apart with errors.Is:
// ErrSourceUnavailable, ErrFormat, ErrSeek, ErrDecode and ErrClosed.
package session
