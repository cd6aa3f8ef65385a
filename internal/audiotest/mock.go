// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mp3slice/audio"
)

// ErrInjected is returned by a MockSource configured with FailAt.
var ErrInjected = errors.New("audiotest: injected decode failure")

// SampleIndex is the default waveform: every sample holds its own
// interleaved index, so a window read from anywhere can be checked exactly.
func SampleIndex(channels int) func(frame, channel int) float32 {
	return func(frame, channel int) float32 {
		return float32(frame*channels + channel)
	}
}

// MockSource is a test helper that generates audio data for testing.
// It implements audio.Source, audio.Seeker and audio.Lengther.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int // Total frames to generate
	generated   int // Frames generated so far
	waveform    func(frame int, channel int) float32

	// FailAt makes ReadSamples return ErrInjected once this frame is reached. Negative disables.
	FailAt int
	// Seekable enables SeekSample; otherwise it returns audio.ErrNotSeekable.
	Seekable bool
	// SeekErr is returned by SeekSample when set.
	SeekErr error
	// HideLength makes Length report 0.
	HideLength bool
	// MaxChunk caps the samples returned per ReadSamples call. Zero means no cap.
	MaxChunk int
	// CloseErr is returned by every Close call.
	CloseErr error

	Closed int
}

// NewMockSource creates a new mock audio source.
// waveform is a function that generates sample values given frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	if waveform == nil {
		waveform = SampleIndex(channels)
	}

	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
		FailAt:      -1,
	}
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.Closed++
	return m.CloseErr
}

// Position is the frame that the next ReadSamples call starts at.
func (m *MockSource) Position() int { return m.generated }

func (m *MockSource) Length() int64 {
	if m.HideLength {
		return 0
	}
	return int64(m.totalFrames * m.channels)
}

func (m *MockSource) SeekSample(sample int64) (int64, error) {
	if m.SeekErr != nil {
		return 0, m.SeekErr
	}
	if !m.Seekable {
		return 0, audio.ErrNotSeekable
	}
	if m.channels == 0 || sample%int64(m.channels) != 0 {
		return 0, fmt.Errorf("audiotest: unaligned offset %d", sample)
	}

	frame := int(sample / int64(m.channels))
	if frame > m.totalFrames {
		return 0, fmt.Errorf("audiotest: frame %d past end %d", frame, m.totalFrames)
	}
	m.generated = frame

	return sample, nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.FailAt >= 0 && m.generated >= m.FailAt {
		return 0, ErrInjected
	}

	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	// Calculate how many frames we can write
	framesRequested := len(dst) / m.channels
	if m.MaxChunk > 0 {
		framesRequested = min(framesRequested, m.MaxChunk/m.channels)
	}
	framesAvailable := m.totalFrames - m.generated
	if m.FailAt >= 0 {
		framesAvailable = min(framesAvailable, m.FailAt-m.generated)
	}
	framesToWrite := min(framesRequested, framesAvailable)

	for frame := range framesToWrite {
		index := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(index, ch)
		}
	}

	m.generated += framesToWrite

	return framesToWrite * m.channels, nil
}

// MockDecoder hands out fresh MockSources built by New. It records the
// modes it was asked for and how often it decoded.
type MockDecoder struct {
	New func(mode audio.Mode) *MockSource
	Err error

	Modes   []audio.Mode
	Sources []*MockSource
}

func (d *MockDecoder) Decode(_ io.ReadSeeker, mode audio.Mode) (audio.Source, error) {
	d.Modes = append(d.Modes, mode)
	if d.Err != nil {
		return nil, d.Err
	}

	src := d.New(mode)
	d.Sources = append(d.Sources, src)

	return src, nil
}

// Calls is the number of Decode calls so far.
func (d *MockDecoder) Calls() int { return len(d.Modes) }

// Last is the most recently decoded source.
func (d *MockDecoder) Last() *MockSource {
	if len(d.Sources) == 0 {
		return nil
	}
	return d.Sources[len(d.Sources)-1]
}

// NewDecoder returns a MockDecoder producing sources of the given shape. In
// skip-scan mode the length is hidden, the way a streaming decoder reports it.
func NewDecoder(sampleRate, channels, totalFrames int, seekable bool) *MockDecoder {
	return &MockDecoder{
		New: func(mode audio.Mode) *MockSource {
			src := NewMockSource(sampleRate, channels, totalFrames, nil)
			src.Seekable = seekable
			src.HideLength = mode == audio.ModeSkipScan
			return src
		},
	}
}
