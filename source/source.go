// SPDX-License-Identifier: EPL-2.0

package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Kind tells which variant a Source holds.
type Kind uint8

const (
	KindNone Kind = iota
	KindFile
	KindBuffer
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindBuffer:
		return "buffer"
	default:
		return "none"
	}
}

// Handle is a seekable view over the bytes of a Source.
type Handle interface {
	io.ReadSeeker
	io.Closer
}

// Source is either a named file or a borrowed in-memory block.
// The zero value holds neither and cannot be opened.
type Source struct {
	kind Kind
	path string
	data []byte
}

// File returns a Source backed by the file at path.
func File(path string) Source {
	return Source{kind: KindFile, path: path}
}

// Buffer returns a Source backed by data. The slice is not copied; it must
// stay unmodified while any session opened from this Source is in use.
func Buffer(data []byte) Source {
	return Source{kind: KindBuffer, data: data}
}

func (s Source) Kind() Kind { return s.kind }

func (s Source) String() string {
	switch s.kind {
	case KindFile:
		return s.path
	case KindBuffer:
		return fmt.Sprintf("buffer(%d bytes)", len(s.data))
	default:
		return "<none>"
	}
}

// Open yields a Handle over the source bytes. Failures wrap ErrUnavailable.
func (s Source) Open() (Handle, error) {
	switch s.kind {
	case KindFile:
		return openFile(s.path)
	case KindBuffer:
		return &bufferHandle{Reader: bytes.NewReader(s.data)}, nil
	default:
		return nil, ErrEmptySource
	}
}

func openFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUnavailable)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}

	return f, nil
}

// bufferHandle never owns the bytes, so Close has nothing to release.
type bufferHandle struct {
	*bytes.Reader
}

func (h *bufferHandle) Close() error { return nil }
