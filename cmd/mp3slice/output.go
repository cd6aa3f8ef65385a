// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/mp3slice/formats/wav"
	"github.com/orcaman/writerseeker"
)

// sink receives decoded windows in order. Close flushes and publishes the
// output; Abort drops it so a failed read leaves no partial file behind.
type sink interface {
	Write(samples []float32) error
	Close() error
	Abort() error
}

func newSink(format, path string, stdout io.Writer, sampleRate, channels int) (sink, error) {
	switch format {
	case "raw":
		if path == stdinPath {
			return &rawSink{w: bufio.NewWriter(stdout)}, nil
		}

		// written next to path and renamed over it on Close
		f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
		if err != nil {
			return nil, fmt.Errorf("failed creating output: %w", err)
		}
		if err := f.Chmod(0o644); err != nil {
			return nil, errors.Join(fmt.Errorf("failed creating output: %w", err), f.Close(), os.Remove(f.Name()))
		}
		return &rawSink{w: bufio.NewWriter(f), f: f, path: path}, nil

	case "wav":
		return &wavSink{
			path:       path,
			stdout:     stdout,
			sampleRate: sampleRate,
			channels:   channels,
		}, nil

	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// rawSink streams interleaved little-endian float32. With a file it fills a
// temporary sibling of path.
type rawSink struct {
	w    *bufio.Writer
	f    *os.File
	path string
}

func (s *rawSink) Write(samples []float32) error {
	return binary.Write(s.w, binary.LittleEndian, samples)
}

func (s *rawSink) Close() error {
	if s.f == nil {
		return s.w.Flush()
	}

	if err := errors.Join(s.w.Flush(), s.f.Close()); err != nil {
		return errors.Join(err, os.Remove(s.f.Name()))
	}

	if err := os.Rename(s.f.Name(), s.path); err != nil {
		return errors.Join(fmt.Errorf("failed writing output: %w", err), os.Remove(s.f.Name()))
	}

	return nil
}

func (s *rawSink) Abort() error {
	if s.f == nil {
		return s.w.Flush()
	}

	return errors.Join(s.f.Close(), os.Remove(s.f.Name()))
}

// wavSink keeps the window in memory; the WAV header needs the final size.
type wavSink struct {
	path       string
	stdout     io.Writer
	sampleRate int
	channels   int
	samples    []float32
}

func (s *wavSink) Write(samples []float32) error {
	s.samples = append(s.samples, samples...)
	return nil
}

// Abort discards the buffered window; nothing was written yet.
func (s *wavSink) Abort() error {
	s.samples = nil
	return nil
}

func (s *wavSink) Close() error {
	if s.path == stdinPath {
		// stdout cannot seek back to patch the header
		ws := &writerseeker.WriterSeeker{}
		if err := wav.Write(ws, s.sampleRate, s.channels, s.samples); err != nil {
			return err
		}
		_, err := io.Copy(s.stdout, ws.Reader())
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed creating output: %w", err)
	}

	if err := wav.Write(f, s.sampleRate, s.channels, s.samples); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
