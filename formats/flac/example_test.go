// SPDX-License-Identifier: EPL-2.0

package flac_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/formats/flac"
)

func ExampleDecoder_Decode() {
	f, err := os.Open("input.flac")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	stream, err := audio.Open(flac.Decoder{}, f, audio.ModeScan)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	frames := stream.Length() / int64(stream.Channels())
	fmt.Printf("%d Hz, %d channels, %d frames\n", stream.SampleRate(), stream.Channels(), frames)
}
