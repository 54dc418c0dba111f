// SPDX-License-Identifier: EPL-2.0

// Package riff walks the chunk structure of RIFF streams.
//
// A RIFF stream opens with a 12-byte envelope ("RIFF", a 32-bit
// little-endian size, and a form tag such as "WAVE") followed by a
// sequence of chunks. Each chunk is an 8-byte header (tag plus 32-bit
// little-endian payload size) and its payload, padded to an even byte
// boundary.
//
// The Scanner visits chunks in stream order without interpreting them:
//
//	sc, err := riff.NewScanner(f)
//	if err != nil {
//	    return err
//	}
//	for {
//	    ch, err := sc.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // The stream is positioned at ch.Pos; reading the payload is
//	    // optional, Next skips whatever is left.
//	}
//
// Unknown tags are not an error. Deciding which chunks matter, and what a
// missing one means, is the caller's business.
package riff
