package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavio/audio"
)

// aiffDecoder is the slice of aiff.Decoder the stream depends on, kept
// narrow so tests can substitute their own.
type aiffDecoder interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// stream adapts go-audio's integer PCM output to float32 samples.
type stream struct {
	aif   aiffDecoder
	rate  int
	chans int
	scale float32
	ints  *goaudio.IntBuffer // reused between calls
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

	want := len(dst) - len(dst)%s.chans
	if s.ints == nil || cap(s.ints.Data) < want {
		s.ints = &goaudio.IntBuffer{Data: make([]int, want), Format: s.aif.Format()}
	}
	s.ints.Data = s.ints.Data[:want]

	n, err := s.aif.PCMBuffer(s.ints)
	if n == 0 {
		if err != nil {
			return 0, err
		}

		return 0, io.EOF
	}

	// AIFF stores signed integers at every depth, so normalizing is a
	// bare multiply
	for i := 0; i < n; i++ {
		dst[i] = float32(s.ints.Data[i]) * s.scale
	}

	// A short fill with no error means the sound data ran out
	if n < want && err == nil {
		err = io.EOF
	}

	return n, err
}

// Decoder decodes AIFF files through go-audio/aiff.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio wants random access; buffer anything that cannot seek
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("buffering aiff input: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	var scale float32
	switch dec.BitDepth {
	case 8:
		scale = 1.0 / (1 << 7)
	case 16:
		scale = 1.0 / (1 << 15)
	case 24:
		scale = 1.0 / (1 << 23)
	case 32:
		scale = 1.0 / (1 << 31)
	default:
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return &stream{
		aif:   dec,
		rate:  format.SampleRate,
		chans: format.NumChannels,
		scale: scale,
	}, nil
}
