// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into audio sources.
//
// Decoding is delegated to github.com/jfreymuth/oggvorbis. Vorbis
// stores floating-point samples natively, so the values pass through
// to the float32 sample convention without requantization:
//
//	f, err := os.Open("music.ogg")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// A decoded source reports the channel count and sample rate declared
// in the stream's identification header; any channel layout the
// bitstream carries, from mono up to surround, keeps its interleave
// order. ReadSamples never splits a frame, so a stereo pair is always
// delivered whole.
//
// The package decodes only. To persist decoded audio, hand the source
// to wavio.EncodeSource, which quantizes it into a PCM WAV file.
package vorbis
