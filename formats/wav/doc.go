// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding for sessions and 16-bit PCM export of
// decoded windows, both on top of github.com/go-audio/wav.
//
// # Decoding
//
// Integer PCM at 8, 16, 24 and 32 bits is supported. 8-bit data is
// unsigned in WAV and is re-centred before normalising. The data chunk size
// gives an exact Length whichever audio.Mode is requested.
//
//	src, err := wav.Decoder{}.Decode(f, audio.ModeScan)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// # Writing
//
// Write takes interleaved float32 samples, clips them to [-1.0, 1.0] and
// encodes a 16-bit PCM file:
//
//	out, _ := os.Create("window.wav")
//	defer out.Close()
//	err := wav.Write(out, 44100, 2, samples)
//
// The encoder patches the RIFF and data sizes once all samples are written,
// so the destination must be an io.WriteSeeker. Use an in-memory
// writerseeker.WriterSeeker when the final destination is a pipe.
package wav
