// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Mode selects how much work a Decoder does when it opens a stream.
type Mode uint8

const (
	// ModeScan walks the whole stream so the exact length is known.
	ModeScan Mode = iota
	// ModeSkipScan opens without a length scan; Length may be 0 or approximate.
	ModeSkipScan
)

func (m Mode) String() string {
	if m == ModeSkipScan {
		return "skip-scan"
	}
	return "scan"
}

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). io.EOF marks a clean end of stream.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Seeker is implemented by sources that can reposition without decoding
// everything in between. SeekSample moves to at most sample (an interleaved
// sample offset) and reports where it landed. Sources that cannot seek in
// their current mode return ErrNotSeekable.
type Seeker interface {
	SeekSample(sample int64) (int64, error)
}

// Lengther reports the total number of interleaved samples, or 0 when unknown.
type Lengther interface {
	Length() int64
}

// Decoder constructs a Source from a seekable byte stream.
type Decoder interface {
	Decode(r io.ReadSeeker, mode Mode) (Source, error)
}

// Registry for decoders by format key (e.g., "mp3", "flac", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Lookup picks a decoder by the extension of path.
func (r *Registry) Lookup(path string) (Decoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}

	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	return d, nil
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// NoSeek hides every method of r except Read. Decoders that scan seekable
// inputs at open time will stream from it instead.
func NoSeek(r io.Reader) io.Reader {
	return readOnly{r: r}
}

type readOnly struct {
	r io.Reader
}

func (o readOnly) Read(p []byte) (int, error) { return o.r.Read(p) }
