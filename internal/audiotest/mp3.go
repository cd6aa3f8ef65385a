// Copyright (c) 2026 Ido Kanner
package audiotest

import _ "embed"

// SilentMP3Frames is the PCM frame count of one frame from SilentMP3.
const SilentMP3Frames = 1152

// SilentMP3 builds n MPEG-1 Layer III frames at 128 kbit/s, 44.1 kHz,
// stereo, with empty side info. Each decodes to SilentMP3Frames frames of
// silence.
func SilentMP3(n int) []byte {
	return silentFrames(n, 0x00)
}

// SilentMonoMP3 is SilentMP3 with the single channel mode set.
func SilentMonoMP3(n int) []byte {
	return silentFrames(n, 0xC0)
}

func silentFrames(n int, mode byte) []byte {
	const frameSize = 144 * 128000 / 44100

	out := make([]byte, n*frameSize)
	for i := range n {
		copy(out[i*frameSize:], []byte{0xFF, 0xFB, 0x90, mode})
	}
	return out
}

// Cut from the example files shipped with github.com/hajimehoshi/go-mp3.
var (
	//go:embed testdata/speech_mono.mp3
	speechMono []byte
	//go:embed testdata/music_stereo.mp3
	musicStereo []byte
)

// Recorded fixtures with real, non-silent audio.
const (
	// SpeechMonoFrames: MPEG-2 Layer III, 22050 Hz, mono, 40 frames of 576
	// samples behind a 26 byte ID3v2 tag.
	SpeechMonoFrames = 40 * 576
	// MusicStereoFrames: MPEG-1 Layer III, 44100 Hz, stereo,
	// 30 frames of 1152 samples.
	MusicStereoFrames = 30 * 1152
)

// SpeechMono returns a copy of the mono speech fixture.
func SpeechMono() []byte { return append([]byte(nil), speechMono...) }

// MusicStereo returns a copy of the stereo music fixture.
func MusicStereo() []byte { return append([]byte(nil), musicStereo...) }
