// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic audio sources for tests.
package audiotest

import (
	"io"
	"math"
)

const (
	waveSilence = iota
	waveSine
	waveConstant
)

// Source emits a fixed number of frames of synthetic audio. It
// satisfies the audio.Source contract without importing the package,
// so encoder and decoder tests can share it freely.
type Source struct {
	rate   int
	chans  int
	frames int // frames the source emits before EOF
	next   int // index of the next frame to emit
	wave   int
	freq   float64 // sine frequency in Hz
	level  float32 // constant sample value
}

// NewSilentSource returns a source whose samples are all zero.
func NewSilentSource(rate, channels, frames int) *Source {
	return &Source{rate: rate, chans: channels, frames: frames, wave: waveSilence}
}

// NewSineSource returns a source carrying a sine tone at the given
// frequency, identical on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *Source {
	return &Source{rate: rate, chans: channels, frames: frames, wave: waveSine, freq: freq}
}

// NewConstantSource returns a source holding every sample at value.
func NewConstantSource(rate, channels, frames int, value float32) *Source {
	return &Source{rate: rate, chans: channels, frames: frames, wave: waveConstant, level: value}
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.chans }
func (s *Source) Close() error    { return nil }

// sample computes the value of frame i; all channels carry the same signal.
func (s *Source) sample(i int) float32 {
	switch s.wave {
	case waveSine:
		t := float64(i) / float64(s.rate)
		return float32(math.Sin(2 * math.Pi * s.freq * t))
	case waveConstant:
		return s.level
	}

	return 0
}

// ReadSamples fills dst with whole frames and reports the number of
// float32 values written. The final batch comes back with io.EOF
// alongside the data; a drained source keeps returning (0, io.EOF).
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.next >= s.frames {
		return 0, io.EOF
	}

	n := len(dst) / s.chans
	if left := s.frames - s.next; n > left {
		n = left
	}

	for f := 0; f < n; f++ {
		v := s.sample(s.next + f)
		for c := 0; c < s.chans; c++ {
			dst[f*s.chans+c] = v
		}
	}
	s.next += n

	if s.next >= s.frames {
		return n * s.chans, io.EOF
	}

	return n * s.chans, nil
}
