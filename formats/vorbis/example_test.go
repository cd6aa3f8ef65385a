// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/formats/vorbis"
)

// ExampleDecoder_Decode shows how to decode an Ogg Vorbis file.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := vorbis.Decoder{}.Decode(f, audio.ModeScan)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	fmt.Printf("Decoded Vorbis: %d Hz, %d channels\n", src.SampleRate(), src.Channels())
}

// ExampleDecoder_Decode_seek reads the last 4096 frames of a file.
func ExampleDecoder_Decode_seek() {
	f, err := os.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	stream, err := audio.Open(vorbis.Decoder{}, f, audio.ModeScan)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	ch := int64(stream.Channels())
	if err := stream.Seek(max(stream.Length()-4096*ch, 0)); err != nil {
		log.Fatal(err)
	}

	buf := make([]float32, 4096*ch)
	n := stream.Read(buf)
	fmt.Printf("Read %d frames\n", int64(n)/ch)
}
