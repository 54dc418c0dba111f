package audio

import "io"

// scriptedSource serves a pre-rendered block of interleaved samples.
// The final batch carries io.EOF alongside the data.
type scriptedSource struct {
	rate   int
	chans  int
	data   []float32
	off    int
	closed bool
}

// silence returns a source whose samples are all zero.
func silence(rate, channels, frames int) *scriptedSource {
	return &scriptedSource{rate: rate, chans: channels, data: make([]float32, frames*channels)}
}

// ramp returns a source whose frame i carries (i+1)/frames on every
// channel, so tests can spot dropped or reordered frames.
func ramp(rate, channels, frames int) *scriptedSource {
	src := silence(rate, channels, frames)
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			src.data[f*channels+c] = float32(f+1) / float32(frames)
		}
	}

	return src
}

func (s *scriptedSource) SampleRate() int { return s.rate }
func (s *scriptedSource) Channels() int   { return s.chans }

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

func (s *scriptedSource) ReadSamples(dst []float32) (int, error) {
	if s.off >= len(s.data) {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.chans
	n := copy(dst[:want], s.data[s.off:])
	s.off += n

	if s.off >= len(s.data) {
		return n, io.EOF
	}

	return n, nil
}
