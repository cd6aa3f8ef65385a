package audio_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStream(t *testing.T, dec *audiotest.MockDecoder, mode audio.Mode) *audio.Stream {
	t.Helper()

	s, err := audio.Open(dec, bytes.NewReader(nil), mode)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStream_OpenReportsShape(t *testing.T) {
	dec := audiotest.NewDecoder(44100, 2, 1000, true)
	s := openStream(t, dec, audio.ModeScan)

	assert.Equal(t, 2, s.Channels())
	assert.Equal(t, 44100, s.SampleRate())
	assert.Equal(t, int64(2000), s.Length())
	assert.Equal(t, []audio.Mode{audio.ModeScan}, dec.Modes)
}

func TestStream_OpenError(t *testing.T) {
	dec := &audiotest.MockDecoder{Err: errors.New("not audio")}

	_, err := audio.Open(dec, bytes.NewReader(nil), audio.ModeScan)
	require.Error(t, err)
}

func TestStream_ReadFillsAcrossChunks(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 2, 100, true)
	dec.New = func(audio.Mode) *audiotest.MockSource {
		src := audiotest.NewMockSource(8000, 2, 100, nil)
		src.MaxChunk = 6
		return src
	}
	s := openStream(t, dec, audio.ModeScan)

	dst := make([]float32, 40)
	n := s.Read(dst)

	require.Equal(t, 40, n)
	assert.Equal(t, audio.CodeNone, s.LastError())
	for i := range n {
		assert.Equal(t, float32(i), dst[i])
	}
	assert.Equal(t, int64(40), s.Position())
}

func TestStream_ShortReadAtEnd(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 2, 10, true)
	s := openStream(t, dec, audio.ModeScan)

	n := s.Read(make([]float32, 64))

	assert.Equal(t, 20, n)
	assert.Equal(t, audio.CodeNone, s.LastError())
	assert.NoError(t, s.Err())

	// nothing left
	assert.Equal(t, 0, s.Read(make([]float32, 4)))
	assert.Equal(t, audio.CodeNone, s.LastError())
}

func TestStream_ShortReadWithFailure(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 1, 100, true)
	dec.New = func(audio.Mode) *audiotest.MockSource {
		src := audiotest.NewMockSource(8000, 1, 100, nil)
		src.FailAt = 30
		return src
	}
	s := openStream(t, dec, audio.ModeScan)

	n := s.Read(make([]float32, 50))

	assert.Equal(t, 30, n)
	assert.Equal(t, audio.CodeDecode, s.LastError())
	assert.ErrorIs(t, s.Err(), audiotest.ErrInjected)
}

func TestStream_NativeSeek(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 2, 100, true)
	s := openStream(t, dec, audio.ModeScan)

	require.NoError(t, s.Seek(50))
	assert.Equal(t, int64(50), s.Position())

	dst := make([]float32, 4)
	require.Equal(t, 4, s.Read(dst))
	assert.Equal(t, []float32{50, 51, 52, 53}, dst)
	assert.Equal(t, 1, dec.Calls(), "native seek must not re-decode")
}

func TestStream_ForwardSeekByDiscard(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 2, 5000, false)
	s := openStream(t, dec, audio.ModeSkipScan)

	require.NoError(t, s.Seek(6000))

	dst := make([]float32, 2)
	require.Equal(t, 2, s.Read(dst))
	assert.Equal(t, []float32{6000, 6001}, dst)
	assert.Equal(t, 1, dec.Calls())
}

func TestStream_BackwardSeekRewinds(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 2, 100, false)
	s := openStream(t, dec, audio.ModeSkipScan)

	s.Read(make([]float32, 100))
	require.NoError(t, s.Seek(10))

	dst := make([]float32, 2)
	require.Equal(t, 2, s.Read(dst))
	assert.Equal(t, []float32{10, 11}, dst)

	assert.Equal(t, 2, dec.Calls())
	assert.Equal(t, []audio.Mode{audio.ModeSkipScan, audio.ModeSkipScan}, dec.Modes)
	assert.Equal(t, 1, dec.Sources[0].Closed, "rewind must close the old source")
}

func TestStream_RewindReportsCloseError(t *testing.T) {
	closeErr := errors.New("close failed")

	dec := audiotest.NewDecoder(8000, 2, 100, false)
	dec.New = func(audio.Mode) *audiotest.MockSource {
		src := audiotest.NewMockSource(8000, 2, 100, nil)
		src.CloseErr = closeErr
		return src
	}
	s, err := audio.Open(dec, bytes.NewReader(nil), audio.ModeSkipScan)
	require.NoError(t, err)

	s.Read(make([]float32, 100))

	err = s.Seek(10)
	require.ErrorIs(t, err, closeErr)
	assert.Equal(t, 1, dec.Calls(), "no new decoder after a failed close")

	assert.Zero(t, s.Read(make([]float32, 2)))
	assert.NotEqual(t, audio.CodeNone, s.LastError())
}

func TestStream_SeekPastEnd(t *testing.T) {
	tests := []struct {
		name     string
		mode     audio.Mode
		seekable bool
	}{
		{"scan bound check", audio.ModeScan, true},
		{"skip-scan discard", audio.ModeSkipScan, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := audiotest.NewDecoder(8000, 2, 100, tt.seekable)
			s := openStream(t, dec, tt.mode)

			err := s.Seek(202)
			assert.ErrorIs(t, err, audio.ErrSeekOutOfRange)
			assert.NoError(t, s.Close())
		})
	}
}

func TestStream_SeekToExactEnd(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 2, 100, false)
	s := openStream(t, dec, audio.ModeSkipScan)

	require.NoError(t, s.Seek(200))
	assert.Equal(t, 0, s.Read(make([]float32, 8)))
	assert.Equal(t, audio.CodeNone, s.LastError())
}

func TestStream_SeekNegative(t *testing.T) {
	s := openStream(t, audiotest.NewDecoder(8000, 2, 100, true), audio.ModeScan)

	assert.ErrorIs(t, s.Seek(-2), audio.ErrSeekOutOfRange)
}

func TestStream_NativeSeekFailure(t *testing.T) {
	seekErr := errors.New("corrupt index")
	dec := audiotest.NewDecoder(8000, 2, 100, true)
	dec.New = func(audio.Mode) *audiotest.MockSource {
		src := audiotest.NewMockSource(8000, 2, 100, nil)
		src.SeekErr = seekErr
		return src
	}
	s := openStream(t, dec, audio.ModeScan)

	err := s.Seek(20)
	assert.ErrorIs(t, err, seekErr)
	assert.Equal(t, audio.CodeDecode, s.LastError())
}

func TestStream_DecodeFailureDuringDiscard(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 1, 100, false)
	dec.New = func(audio.Mode) *audiotest.MockSource {
		src := audiotest.NewMockSource(8000, 1, 100, nil)
		src.FailAt = 10
		return src
	}
	s := openStream(t, dec, audio.ModeSkipScan)

	err := s.Seek(50)
	assert.ErrorIs(t, err, audiotest.ErrInjected)
	assert.NotErrorIs(t, err, audio.ErrSeekOutOfRange)
}

func TestStream_Close(t *testing.T) {
	dec := audiotest.NewDecoder(8000, 2, 100, true)
	s, err := audio.Open(dec, bytes.NewReader(nil), audio.ModeScan)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, dec.Last().Closed)

	assert.Equal(t, 0, s.Read(make([]float32, 2)))
	assert.Equal(t, audio.CodeParam, s.LastError())
	assert.ErrorIs(t, s.Seek(0), audio.ErrStreamClosed)
}
