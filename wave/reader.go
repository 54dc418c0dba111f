// SPDX-License-Identifier: EPL-2.0

package wave

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavio/riff"
)

var (
	formWAVE = riff.Tag{'W', 'A', 'V', 'E'}
	tagFmt   = riff.Tag{'f', 'm', 't', ' '}
	tagData  = riff.Tag{'d', 'a', 't', 'a'}
)

// Reader decodes the payload of a WAV container.
//
// Opening walks the chunk list once, tolerating unknown chunks and either
// ordering of "fmt " and "data", and snapshots the declared data size.
// The snapshot is the reader's whole world afterwards: bytes past it,
// such as payload appended to a file that has not been flushed again,
// stay invisible until the container is reopened.
type Reader struct {
	rs        io.ReadSeeker
	format    Format
	dataStart int64 // absolute offset of the data payload
	dataLen   int64 // declared payload size, snapshotted at open
	pos       int64 // read offset within the payload
	scratch   []byte
}

// NewReader opens the container at the source's current position. It
// fails with a decode error when the RIFF envelope or WAVE form tag is
// absent, when the fmt payload cannot be parsed, or when a required
// chunk never appears; the error names the missing chunk's tag.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	sc, err := riff.NewScanner(rs)
	if err != nil {
		return nil, err
	}
	if sc.Form() != formWAVE {
		return nil, ErrNotWaveStream
	}

	r := &Reader{rs: rs}
	var haveFmt, haveData bool

	for !haveFmt || !haveData {
		ch, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch ch.Tag {
		case tagFmt:
			payload := make([]byte, ch.Size)
			if _, err := io.ReadFull(rs, payload); err != nil {
				return nil, fmt.Errorf("reading fmt chunk: %w", err)
			}
			if err := r.format.UnmarshalBinary(payload); err != nil {
				return nil, err
			}
			haveFmt = true
		case tagData:
			r.dataStart = ch.Pos
			r.dataLen = int64(ch.Size)
			haveData = true
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("%q chunk: %w", tagFmt, ErrMissingChunk)
	}
	if !haveData {
		return nil, fmt.Errorf("%q chunk: %w", tagData, ErrMissingChunk)
	}

	if _, err := rs.Seek(r.dataStart, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking data start: %w", err)
	}

	return r, nil
}

// Format returns the descriptor parsed from the fmt chunk.
func (r *Reader) Format() Format { return r.format }

// Size returns the payload size in bytes, as declared when the container
// was opened.
func (r *Reader) Size() int64 { return r.dataLen }

// Pos returns the current read offset within the payload.
func (r *Reader) Pos() int64 { return r.pos }

// Duration returns the payload's playing time at the declared byte rate.
func (r *Reader) Duration() time.Duration {
	return r.format.Duration(r.dataLen)
}

// PCMFormat returns the stream descriptor in the vocabulary of
// github.com/go-audio/audio.
func (r *Reader) PCMFormat() *goaudio.Format {
	return r.format.PCMFormat()
}

// Read copies payload bytes into p, never past the declared payload end.
// It positions the source on every call, so sharing the source with
// other seekers between reads is safe. Returns io.EOF once the payload
// is exhausted.
func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= r.dataLen {
		return 0, io.EOF
	}

	if remain := r.dataLen - r.pos; int64(len(p)) > remain {
		p = p[:remain]
	}

	if _, err := r.rs.Seek(r.dataStart+r.pos, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seeking payload: %w", err)
	}

	n, err := r.rs.Read(p)
	r.pos += int64(n)

	if err == io.EOF && n > 0 {
		err = nil
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("reading payload: %w", err)
	}

	return n, err
}

// Seek repositions the payload cursor. Unlike the usual io.Seeker
// contract, a resolved target outside the payload is clamped to the
// nearest boundary instead of failing: negative targets land on 0,
// targets past the end land on Size.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.pos + offset
	case io.SeekEnd:
		target = r.dataLen + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if target < 0 {
		target = 0
	}
	if target > r.dataLen {
		target = r.dataLen
	}

	r.pos = target
	return target, nil
}

// PCMBuffer decodes PCM payload bytes into a go-audio buffer, mirroring
// the decoder surface of github.com/go-audio/wav. Sample values keep the
// container's scale (8-bit stays unsigned, wider depths sign-extend) and
// the buffer's format and source depth are filled in. Returns the frame
// count times channels actually decoded, and io.EOF once the payload is
// exhausted. Non-PCM layouts fail with ErrUnsupportedEncoding.
func (r *Reader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if buf == nil || len(buf.Data) == 0 {
		return 0, nil
	}
	if r.format.Encoding != EncodingPCM {
		return 0, ErrUnsupportedEncoding
	}

	bps := int(r.format.BitsPerSample) / 8
	switch r.format.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return 0, ErrUnsupportedEncoding
	}

	need := len(buf.Data) * bps
	if cap(r.scratch) < need {
		r.scratch = make([]byte, need)
	}
	raw := r.scratch[:need]

	n, err := io.ReadFull(r, raw)
	if err == io.ErrUnexpectedEOF {
		err = nil // partial tail, decode what arrived
	}
	if err != nil && err != io.EOF {
		return 0, err
	}

	samples := n / bps
	for i := 0; i < samples; i++ {
		b := raw[i*bps:]
		switch r.format.BitsPerSample {
		case 8:
			buf.Data[i] = int(b[0])
		case 16:
			buf.Data[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case 24:
			v := int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16)
			buf.Data[i] = int(v << 8 >> 8) // sign extend
		case 32:
			buf.Data[i] = int(int32(binary.LittleEndian.Uint32(b)))
		}
	}

	buf.Data = buf.Data[:samples]
	buf.Format = r.PCMFormat()
	buf.SourceBitDepth = int(r.format.BitsPerSample)

	if samples == 0 {
		return 0, io.EOF
	}

	return samples, nil
}

// Close closes the underlying source when it implements io.Closer; a
// source wrapped with KeepOpen stays open for its owner.
func (r *Reader) Close() error {
	if c, ok := r.rs.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing source: %w", err)
		}
	}
	return nil
}
