// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"io/fs"
	"strconv"
)

var (
	ErrNotSeekable    = errors.New("source cannot seek")
	ErrSeekOutOfRange = errors.New("seek offset out of range")
	ErrStreamClosed   = errors.New("stream closed")
	ErrUnknownFormat  = errors.New("unknown audio format")
)

// ErrorCode is the decoder status left behind by a short read.
// Values follow the minimp3 MP3D_E_* numbering.
type ErrorCode int

const (
	CodeNone   ErrorCode = 0
	CodeParam  ErrorCode = -1
	CodeMemory ErrorCode = -2
	CodeIO     ErrorCode = -3
	CodeUser   ErrorCode = -4
	CodeDecode ErrorCode = -5
)

func (c ErrorCode) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeParam:
		return "param"
	case CodeMemory:
		return "memory"
	case CodeIO:
		return "io"
	case CodeUser:
		return "user"
	case CodeDecode:
		return "decode"
	default:
		return "code(" + strconv.Itoa(int(c)) + ")"
	}
}

// Classify maps a source error onto an ErrorCode. io.EOF is not an error.
func Classify(err error) ErrorCode {
	var pathErr *fs.PathError

	switch {
	case err == nil, errors.Is(err, io.EOF):
		return CodeNone
	case errors.Is(err, ErrStreamClosed), errors.Is(err, fs.ErrClosed):
		return CodeParam
	case errors.Is(err, io.ErrShortBuffer):
		return CodeMemory
	case errors.As(err, &pathErr), errors.Is(err, io.ErrClosedPipe):
		return CodeIO
	default:
		return CodeDecode
	}
}
