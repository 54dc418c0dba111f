// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is a stream of interleaved float32 samples in [-1, 1].
type Source interface {
	// SampleRate reports the stream rate in Hz.
	SampleRate() int
	// Channels reports the interleave width (1 mono, 2 stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the
	// number of float32 values written, never partial frames. The
	// stream ends when n == 0 and err == io.EOF.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases decoder state and, when the source owns its
	// input, the input too.
	Close() error
}

// Decoder opens a Source from encoded bytes.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys such as "wav" or "ogg" to decoders. The
// zero value is not usable; call NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register binds format to d, replacing any earlier binding.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[format] = d
}

// Get returns the decoder bound to format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decoders[format]
	return d, ok
}
