// SPDX-License-Identifier: EPL-2.0

// Package audio holds the contracts shared by the format packages.
//
// # Sources
//
// Every decoder hands back the same stream shape, a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1], left to right
// within a frame, and ReadSamples never splits a frame across calls.
// Code that consumes a Source stays oblivious to the container the
// audio came out of.
//
// Draining a source follows the io.Reader convention:
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// Some sources deliver the last batch together with io.EOF, so buf[:n]
// must be consumed before the error is inspected. A dst shorter than
// one frame is rejected with ErrShortBuffer.
//
// # Decoders
//
// A Decoder turns encoded bytes into a Source. The Registry maps
// format keys to decoders so callers can resolve one from a file
// extension or content probe at run time:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("ogg", vorbis.Decoder{})
//
//	if dec, ok := reg.Get(ext); ok {
//	    src, err := dec.Decode(f)
//	    ...
//	}
//
// The registry is safe for concurrent use.
package audio
