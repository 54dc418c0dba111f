package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavio/audio"
	"github.com/ik5/wavio/wave"
)

// waveReader is the slice of wave.Reader the integer stream relies on,
// kept as an interface so tests can substitute failing readers.
type waveReader interface {
	Format() wave.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
	Close() error
}

// stream normalizes integer PCM to float32 in [-1, 1].
type stream struct {
	wav   waveReader
	rate  int
	chans int
	bias  int
	scale float32
	ints  goaudio.IntBuffer
}

func (s *stream) SampleRate() int { return s.rate }
func (s *stream) Channels() int   { return s.chans }
func (s *stream) Close() error    { return s.wav.Close() }

func (s *stream) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst) < s.chans {
		return 0, audio.ErrShortBuffer
	}

	want := len(dst) - len(dst)%s.chans
	if cap(s.ints.Data) < want {
		s.ints.Data = make([]int, want)
	} else {
		s.ints.Data = s.ints.Data[:want]
	}

	n, err := s.wav.PCMBuffer(&s.ints)
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, fmt.Errorf("reading pcm: %w", err)
	}

	// A truncated file can end mid frame; the partial frame is dropped.
	n -= n % s.chans
	if n == 0 {
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		dst[i] = float32(s.ints.Data[i]-s.bias) * s.scale
	}

	return n, nil
}

// floatStream reads IEEE float payloads straight off the data chunk.
type floatStream struct {
	wav   *wave.Reader
	rate  int
	chans int
	raw   []byte
}

func (s *floatStream) SampleRate() int { return s.rate }
func (s *floatStream) Channels() int   { return s.chans }
func (s *floatStream) Close() error    { return s.wav.Close() }

func (s *floatStream) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst) < s.chans {
		return 0, audio.ErrShortBuffer
	}

	want := len(dst) - len(dst)%s.chans
	if len(s.raw) < want*4 {
		s.raw = make([]byte, want*4)
	}

	n, err := io.ReadFull(s.wav, s.raw[:want*4])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("reading samples: %w", err)
	}

	samples := n / 4
	samples -= samples % s.chans
	if samples == 0 {
		return 0, io.EOF
	}

	for i := 0; i < samples; i++ {
		bits := binary.LittleEndian.Uint32(s.raw[4*i:])
		dst[i] = math.Float32frombits(bits)
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("buffering wav input: %w", err)
		}
		rs = bytes.NewReader(raw)
	}

	// The caller keeps ownership of r, so Close must not propagate
	wr, err := wave.NewReader(wave.KeepOpen(rs))
	if err != nil {
		return nil, fmt.Errorf("opening wav stream: %w", err)
	}

	format := wr.Format()
	chans := int(format.Channels)
	rate := int(format.SampleRate)

	if format.Encoding == wave.EncodingIEEEFloat && format.BitsPerSample == 32 {
		return &floatStream{wav: wr, rate: rate, chans: chans}, nil
	}

	if format.Encoding != wave.EncodingPCM {
		return nil, ErrUnsupportedSampleFormat
	}

	var bias int
	var scale float32
	switch format.BitsPerSample {
	case 8:
		// WAV stores 8 bit samples offset by 128, not signed.
		bias, scale = 128, 1.0/(1<<7)
	case 16:
		scale = 1.0 / (1 << 15)
	case 24:
		scale = 1.0 / (1 << 23)
	case 32:
		scale = 1.0 / (1 << 31)
	default:
		return nil, ErrUnsupportedSampleFormat
	}

	return &stream{
		wav:   wr,
		rate:  rate,
		chans: chans,
		bias:  bias,
		scale: scale,
	}, nil
}
