package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/wavio/audio"
	"github.com/jfreymuth/oggvorbis"
)

// vorbisStream is the slice of oggvorbis.Reader the stream depends on,
// kept narrow so tests can substitute their own.
type vorbisStream interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// stream exposes an Ogg/Vorbis bitstream as an audio source. The
// library already produces interleaved float32 in whole frames, so no
// sample conversion happens here.
type stream struct {
	ogg   vorbisStream
	rate  int
	chans int
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

	// Hand the library a frame-aligned window; its sample count passes
	// straight through
	n, err := s.ogg.Read(dst[:len(dst)-len(dst)%s.chans])
	if n == 0 && err != nil {
		return 0, err
	}

	return n, err
}

// Decoder decodes Ogg/Vorbis streams through jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	ogg, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	return &stream{ogg: ogg, rate: ogg.SampleRate(), chans: ogg.Channels()}, nil
}
