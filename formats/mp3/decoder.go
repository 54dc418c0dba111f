// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/wavio/audio"
)

// bytesPerSample is the width of one go-mp3 output sample.
const bytesPerSample = 2

// pcmStream is the slice of gomp3.Decoder the stream depends on, kept
// narrow so tests can substitute their own.
type pcmStream interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// stream adapts go-mp3's byte-oriented s16le output to float32 samples.
type stream struct {
	pcm   pcmStream
	rate  int
	chans int
	raw   []byte // scratch for the bytes of one ReadSamples call
}

func (s *stream) SampleRate() int { return s.rate }
func (s *stream) Channels() int   { return s.chans }
func (s *stream) Close() error    { return nil }

func (s *stream) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst) < s.chans {
		return 0, audio.ErrShortBuffer
	}

	// One byte pair per sample, whole frames only
	want := len(dst) - len(dst)%s.chans
	need := want * bytesPerSample
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	s.raw = s.raw[:need]

	n, err := s.pcm.Read(s.raw)
	if n == 0 {
		if err != nil {
			return 0, err
		}

		return 0, nil
	}

	samples := n / bytesPerSample
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.raw[bytesPerSample*i:]))
		dst[i] = float32(v) / 32768
	}

	// err may carry io.EOF alongside the final samples
	return samples, err
}

// Decoder decodes MP3 streams through go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	// go-mp3 upmixes everything to stereo at the stream rate
	return &stream{
		pcm:   dec,
		rate:  dec.SampleRate(),
		chans: 2,
		raw:   make([]byte, 8192),
	}, nil
}
