// SPDX-License-Identifier: EPL-2.0

package wave

import "errors"

var (
	// Format validation
	ErrNoChannels     = errors.New("channel count must be at least 1")
	ErrBadBitDepth    = errors.New("bits per sample must be a positive multiple of 8")
	ErrZeroSampleRate = errors.New("sample rate must be at least 1 Hz")

	// Size limits
	ErrDataTooLarge = errors.New("data size exceeds the 32-bit WAV limit")

	// Decoding
	ErrNotWaveStream = errors.New("not a RIFF/WAVE stream")
	ErrMissingChunk  = errors.New("missing required chunk")
	ErrShortFmtChunk = errors.New("fmt chunk payload too short")

	// Sample conversion
	ErrUnsupportedEncoding = errors.New("unsupported encoding for sample conversion")

	// Writer state
	ErrWriterClosed = errors.New("writer is closed")
)
