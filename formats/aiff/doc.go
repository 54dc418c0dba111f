// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into audio sources.
//
// Parsing is delegated to github.com/go-audio/aiff. The integer samples
// it produces are scaled by the full-scale value of the file's bit
// depth, so an 8, 16, 24 or 32 bit file always comes out as float32 in
// [-1, 1]:
//
//	f, err := os.Open("master.aiff")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// AIFF differs from WAV in ways the decoder absorbs: samples are stored
// big endian, and 8 bit samples are signed rather than offset by 128.
// Neither detail is visible in the output.
//
// The underlying parser needs random access. Decode passes io.ReadSeeker
// inputs straight through and buffers anything else in memory first, so
// very large files are better handed over as an *os.File.
//
// Decode reports ErrNotAiffFile for inputs that do not parse as AIFF,
// ErrUnsupportedBitDepth for depths outside 8, 16, 24 and 32 bits, and
// ErrUnsupportedAiffLayout when the file lacks a usable sound format.
// The package decodes only; route the source through wavio.EncodeSource
// to store it as WAV.
package aiff
