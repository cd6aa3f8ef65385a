// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/mp3slice/audio"
)

// pcmWAV builds a canonical 44-byte header WAV around raw sample bytes
func pcmWAV(format, sampleRate, channels, bitsPerSample int, data []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := channels * max(bitsPerSample/8, 1)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(format))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}

func pcm16(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func readAll(t *testing.T, src audio.Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_Valid16Bit(t *testing.T) {
	t.Parallel()

	data := pcmWAV(1, 8000, 2, 16, pcm16(0, 16384, -16384, 32767, -32768, 8192))

	src, err := Decoder{}.Decode(bytes.NewReader(data), audio.ModeScan)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 8000 || src.Channels() != 2 {
		t.Errorf("shape = %d Hz, %d channels, want 8000 Hz, 2 channels", src.SampleRate(), src.Channels())
	}
	if got := src.(audio.Lengther).Length(); got != 6 {
		t.Errorf("Length() = %d, want 6", got)
	}

	got := readAll(t, src, 4)
	want := []float32{0, 0.5, -0.5, 32767.0 / 32768, -1, 0.25}
	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_Unsigned8Bit(t *testing.T) {
	t.Parallel()

	data := pcmWAV(1, 8000, 1, 8, []byte{128, 255, 0, 192})

	src, err := Decoder{}.Decode(bytes.NewReader(data), audio.ModeSkipScan)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := readAll(t, src, 16)
	want := []float32{0, 127.0 / 128, -1, 0.5}
	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not a WAV file", []byte("This is not a WAV file at all, just some text."), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"truncated header", []byte("RIFF\x24\x00\x00\x00WA"), ErrNotWavFile},
		{"float samples", pcmWAV(3, 8000, 1, 32, make([]byte, 8)), ErrUnsupportedWavLayout},
		{"12-bit samples", pcmWAV(1, 8000, 1, 12, make([]byte, 8)), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data), audio.ModeScan)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_StreamSeek(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2000)
	for i := range samples {
		samples[i] = int16(i)
	}
	data := pcmWAV(1, 16000, 2, 16, pcm16(samples...))

	stream, err := audio.Open(Decoder{}, bytes.NewReader(data), audio.ModeScan)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer stream.Close()

	for _, at := range []int64{1500, 200} {
		if err := stream.Seek(at); err != nil {
			t.Fatalf("Seek(%d) error = %v", at, err)
		}

		dst := make([]float32, 2)
		if n := stream.Read(dst); n != 2 {
			t.Fatalf("Read() = %d, want 2", n)
		}
		if want := float32(at) / 32768; dst[0] != want {
			t.Errorf("after Seek(%d) first sample = %v, want %v", at, dst[0], want)
		}
	}

	if err := stream.Seek(2002); !errors.Is(err, audio.ErrSeekOutOfRange) {
		t.Errorf("Seek past end error = %v, want ErrSeekOutOfRange", err)
	}
}

// mockPCMReader stands in for wav.Decoder
type mockPCMReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &wavSource{dec: &mockPCMReader{err: io.ErrUnexpectedEOF}, channels: 1, bitDepth: 16}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := &wavSource{dec: &mockPCMReader{samples: []int{1, 2}}, channels: 1, bitDepth: 16}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		input    int
		want     float64
	}{
		{8, 255, 127.0 / 128},
		{8, 0, -1},
		{16, -32768, -1},
		{24, 8388607, 8388607.0 / 8388608},
		{32, -2147483648, -1},
	}

	for _, tt := range tests {
		src := &wavSource{dec: &mockPCMReader{samples: []int{tt.input}}, channels: 1, bitDepth: tt.bitDepth}

		dst := make([]float32, 1)
		if n, err := src.ReadSamples(dst); n != 1 || err != nil {
			t.Fatalf("%d-bit: ReadSamples() = %d, %v", tt.bitDepth, n, err)
		}
		if math.Abs(float64(dst[0])-tt.want) > 1e-6 {
			t.Errorf("%d-bit %d = %v, want %v", tt.bitDepth, tt.input, dst[0], tt.want)
		}
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	data := pcmWAV(1, 44100, 2, 16, make([]byte, 44100*4))

	b.ReportAllocs()

	for b.Loop() {
		src, err := (Decoder{}).Decode(bytes.NewReader(data), audio.ModeScan)
		if err != nil {
			b.Fatal(err)
		}
		buf := make([]float32, 4096)
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
