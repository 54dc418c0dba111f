// SPDX-License-Identifier: EPL-2.0

package wave

import (
	"encoding/binary"
	"fmt"
	"time"

	goaudio "github.com/go-audio/audio"
)

// Encoding is the codec tag stored in the "fmt " chunk.
type Encoding uint16

// Codec tags from the WAVE format registry.
const (
	EncodingPCM        Encoding = 1
	EncodingIEEEFloat  Encoding = 3
	EncodingALaw       Encoding = 6
	EncodingMuLaw      Encoding = 7
	EncodingExtensible Encoding = 0xFFFE
)

func (e Encoding) String() string {
	switch e {
	case EncodingPCM:
		return "PCM"
	case EncodingIEEEFloat:
		return "IEEE float"
	case EncodingALaw:
		return "A-law"
	case EncodingMuLaw:
		return "mu-law"
	case EncodingExtensible:
		return "extensible"
	}
	return fmt.Sprintf("encoding(%d)", uint16(e))
}

// FormatSize is the marshalled size of a Format in bytes: the extended
// "fmt " chunk payload with a zero-length extension field.
const FormatSize = 18

// Format describes the sample layout of a WAVE stream. Only the four
// independent fields are stored; byte rate and block alignment are
// derived from them, so a Format can never declare inconsistent values.
//
// Format is a comparable value type: two descriptors are interchangeable
// exactly when they are ==.
type Format struct {
	Encoding      Encoding
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// BlockAlign returns the size of one frame (one sample per channel) in bytes.
func (f Format) BlockAlign() uint16 {
	return f.Channels * f.BitsPerSample / 8
}

// ByteRate returns the stream's data rate in bytes per second.
func (f Format) ByteRate() uint32 {
	return f.SampleRate * uint32(f.BlockAlign())
}

// Validate reports the first structural problem with the descriptor:
// no channels, a bit depth that is zero or not byte-aligned, or a zero
// sample rate.
func (f Format) Validate() error {
	if f.Channels < 1 {
		return ErrNoChannels
	}
	if f.BitsPerSample == 0 || f.BitsPerSample%8 != 0 {
		return ErrBadBitDepth
	}
	if f.SampleRate < 1 {
		return ErrZeroSampleRate
	}
	return nil
}

// Duration converts a payload size in bytes to playing time.
func (f Format) Duration(dataBytes int64) time.Duration {
	rate := f.ByteRate()
	if rate == 0 || dataBytes <= 0 {
		return 0
	}
	return time.Duration(dataBytes) * time.Second / time.Duration(rate)
}

// PCMFormat returns the descriptor in the vocabulary of
// github.com/go-audio/audio.
func (f Format) PCMFormat() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: int(f.Channels),
		SampleRate:  int(f.SampleRate),
	}
}

// MarshalBinary encodes the descriptor as a FormatSize-byte "fmt " chunk
// payload: encoding tag, channel count, sample rate, byte rate, block
// alignment, bit depth, and a zero extension size, all little-endian.
func (f Format) MarshalBinary() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	b := make([]byte, FormatSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(f.Encoding))
	binary.LittleEndian.PutUint16(b[2:4], f.Channels)
	binary.LittleEndian.PutUint32(b[4:8], f.SampleRate)
	binary.LittleEndian.PutUint32(b[8:12], f.ByteRate())
	binary.LittleEndian.PutUint16(b[12:14], f.BlockAlign())
	binary.LittleEndian.PutUint16(b[14:16], f.BitsPerSample)
	binary.LittleEndian.PutUint16(b[16:18], 0) // extension size

	return b, nil
}

// UnmarshalBinary decodes a "fmt " chunk payload. The classic 16-byte
// PCM payload is accepted alongside the extended form; anything shorter
// fails with ErrShortFmtChunk. The declared byte rate and block
// alignment are ignored, both are recomputed from the core fields.
func (f *Format) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("fmt payload is %d bytes: %w", len(data), ErrShortFmtChunk)
	}

	f.Encoding = Encoding(binary.LittleEndian.Uint16(data[0:2]))
	f.Channels = binary.LittleEndian.Uint16(data[2:4])
	f.SampleRate = binary.LittleEndian.Uint32(data[4:8])
	f.BitsPerSample = binary.LittleEndian.Uint16(data[14:16])

	return nil
}
