package audio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"testing"
)

func TestErrors_Uniqueness(t *testing.T) {
	t.Parallel()

	allErrors := []error{
		ErrNotSeekable,
		ErrSeekOutOfRange,
		ErrStreamClosed,
		ErrUnknownFormat,
	}

	for i := range allErrors {
		for j := range allErrors {
			if i != j && errors.Is(allErrors[i], allErrors[j]) {
				t.Errorf("errors[%d] matches errors[%d]", i, j)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, CodeNone},
		{"eof", io.EOF, CodeNone},
		{"wrapped eof", fmt.Errorf("frame: %w", io.EOF), CodeNone},
		{"closed stream", ErrStreamClosed, CodeParam},
		{"closed file", fs.ErrClosed, CodeParam},
		{"short buffer", io.ErrShortBuffer, CodeMemory},
		{"path error", &fs.PathError{Op: "read", Path: "x.mp3", Err: os.ErrPermission}, CodeIO},
		{"unexpected eof", io.ErrUnexpectedEOF, CodeDecode},
		{"anything else", errors.New("mp3: bad huffman table"), CodeDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorCode_String(t *testing.T) {
	t.Parallel()

	if CodeDecode.String() != "decode" {
		t.Errorf("CodeDecode.String() = %q", CodeDecode.String())
	}
	if ErrorCode(-42).String() != "code(-42)" {
		t.Errorf("ErrorCode(-42).String() = %q", ErrorCode(-42).String())
	}
	if int(CodeDecode) != -5 {
		t.Errorf("CodeDecode = %d, want -5", int(CodeDecode))
	}
}
