// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files.
//
// Decoding rides on the chunk-level reader in the wave package, so any
// RIFF/WAVE stream with a fmt and a data chunk is accepted no matter
// what other chunks sit around them. Integer PCM at 8, 16, 24 or 32
// bits is normalized to float32 in [-1, 1]; 8 bit input is unsigned
// and has its 128 offset removed first. 32 bit IEEE float payloads
// pass through untouched. Everything else, A-law and mu-law included,
// is rejected with ErrUnsupportedSampleFormat.
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Closing the source never closes the stream handed to Decode; the
// caller opened it and keeps it.
//
// The encoding side is WriteWAV16, which lays down a complete mono
// 16-bit file in one call. It emits the extended 18 byte fmt payload,
// while the decoder takes both that and the classic 16 byte form.
// When the total length is unknown up front, use wave.Writer instead.
//
// Malformed containers surface the wave and riff sentinels, such as
// riff.ErrNotRIFF and wave.ErrNotWaveStream.
package wav
