// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/mp3slice/utils"
)

const writeBitDepth = 16

// Write encodes interleaved float32 samples as a 16-bit PCM WAV. Values
// outside [-1.0, 1.0] are clipped. w must be seekable because the header
// sizes are patched after the data is written.
func Write(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if channels < 1 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrChannelMismatch, len(samples), channels)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: writeBitDepth,
	}
	for i, v := range samples {
		buf.Data[i] = int(utils.Float32ToInt16(v))
	}

	enc := wav.NewEncoder(w, sampleRate, writeBitDepth, channels, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
