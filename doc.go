// SPDX-License-Identifier: EPL-2.0

// Package wavio provides streaming RIFF/WAVE encoding and decoding.
//
// The core of the module is the wave subpackage: a WAV writer that keeps
// its header sizes correct while data is still being appended, and a
// reader that walks RIFF chunks to find the audio in files other tools
// produced. On top of that sit decoders for common compressed formats
// and one-call helpers for producing WAV files.
//
// Decoders live in the formats subpackages and all hand back an
// audio.Source, a stream of interleaved float32 samples in [-1, 1]:
//
//   - formats/wav reads PCM at 8, 16, 24 and 32 bits plus 32 bit float
//   - formats/mp3 wraps github.com/hajimehoshi/go-mp3
//   - formats/vorbis wraps github.com/jfreymuth/oggvorbis
//   - formats/aiff wraps github.com/go-audio/aiff
//
// Pick one directly, or register them in an audio.Registry and look the
// right one up by file extension:
//
//	reg := audio.NewRegistry()
//	reg.Register("mp3", mp3.Decoder{})
//	reg.Register("ogg", vorbis.Decoder{})
//
//	if dec, ok := reg.Get(ext); ok {
//	    src, err = dec.Decode(f)
//	}
//
// Any source transcodes to WAV in one call:
//
//	out, _ := os.Create("speech.wav")
//	defer out.Close()
//	written, err := wavio.EncodeSource(out, src, 16)
//
// Writing with a payload known up front goes through CreateFromSource,
// and wav.WriteWAV16 covers int16 slices already in memory. When the
// length is unknown, use wave.Writer directly; Flush patches the header
// sizes in place without moving the write position, so the file on disk
// is a valid WAV snapshot after every flush:
//
//	w, _ := wave.NewWriter(file, format)
//	for samples := range produce() {
//	    w.WriteSamples(samples)
//	    w.Flush()
//	}
//	w.Close()
//
// WAV carries sizes in 32 bit fields. The writer counts payload bytes
// in 64 bits and refuses to finalize a header once the payload exceeds
// wave.MaxDataSize, so an oversized capture fails loudly instead of
// wrapping around.
package wavio
