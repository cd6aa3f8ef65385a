// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"

	"github.com/ik5/mp3slice/audio"
)

var (
	// ErrSourceUnavailable means the byte source could not be accessed at all.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrFormat means the source was readable but is not a decodable stream.
	ErrFormat = errors.New("source could not be opened or understood")
	// ErrSeek means a position could not be resolved within the stream.
	ErrSeek = errors.New("could not seek to position")
	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("decoding error")
	// ErrClosed is returned by any operation on a closed session.
	ErrClosed = errors.New("session closed")
)

// DecodeError reports a read that stopped short because the decoder failed.
type DecodeError struct {
	// Code is the decoder status after the short read.
	Code audio.ErrorCode
	// Frames decoded into the destination before the failure.
	Frames uint64
	// Err is the decoder's own error, if it reported one.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decoding error %d", e.Code)
	}
	return fmt.Sprintf("decoding error %d: %v", e.Code, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}
