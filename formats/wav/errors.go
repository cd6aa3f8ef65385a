// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedBitDepth  = errors.New("unsupported PCM bit depth")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	ErrChannelMismatch      = errors.New("sample count is not a multiple of the channel count")
)
