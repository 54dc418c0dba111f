// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into audio sources.
//
// Decoding is delegated to github.com/hajimehoshi/go-mp3, which emits
// 16-bit little-endian PCM; this package rescales that output to the
// float32 sample convention shared by the format packages:
//
//	f, err := os.Open("speech.mp3")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
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
// go-mp3 upmixes mono input, so a decoded source always reports two
// channels; the sample rate is whatever the bitstream declares. The
// package decodes only. For writing, feed the source to
// wavio.EncodeSource and store the result as WAV.
package mp3
