// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Tag is a four-byte chunk identifier such as "fmt " or "data".
type Tag [4]byte

func (t Tag) String() string { return string(t[:]) }

// envelope is the "RIFF" tag opening every stream this package walks.
var envelope = Tag{'R', 'I', 'F', 'F'}

// Chunk describes one chunk located in the stream: its tag, the declared
// payload size in bytes, and the absolute offset of the payload's first byte.
type Chunk struct {
	Tag  Tag
	Size uint32
	Pos  int64
}

// Scanner walks the chunks of a RIFF stream in order. It positions the
// stream itself before every header read, so callers are free to consume
// as much or as little of each payload as they want between Next calls.
//
// The size declared in the RIFF envelope is reported but never enforced:
// a stream that has grown past its last recorded size still scans fully.
type Scanner struct {
	rs   io.ReadSeeker
	form Tag
	size uint32
	next int64 // absolute offset of the next chunk header
	hdr  [8]byte
}

// NewScanner checks the 12-byte RIFF envelope at the stream's current
// position and returns a Scanner over the chunks that follow it.
func NewScanner(rs io.ReadSeeker) (*Scanner, error) {
	base, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating stream start: %w", err)
	}

	var env [12]byte
	if _, err := io.ReadFull(rs, env[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrNotRIFF
		}
		return nil, fmt.Errorf("reading envelope: %w", err)
	}

	if Tag(env[0:4]) != envelope {
		return nil, ErrNotRIFF
	}

	return &Scanner{
		rs:   rs,
		form: Tag(env[8:12]),
		size: binary.LittleEndian.Uint32(env[4:8]),
		next: base + 12,
	}, nil
}

// Form returns the stream's form tag, e.g. "WAVE".
func (s *Scanner) Form() Tag { return s.form }

// Size returns the stream size declared by the envelope. The value counts
// everything after the size field itself and may understate what the
// stream actually holds.
func (s *Scanner) Size() uint32 { return s.size }

// Next seeks to the next chunk header, decodes it, and leaves the stream
// positioned at the first byte of the chunk's payload. Unread payload from
// the previous chunk is skipped, including the pad byte that follows an
// odd-sized payload.
//
// Next returns io.EOF once the stream ends cleanly on a chunk boundary; a
// header cut short mid-way is reported as ErrTruncated.
func (s *Scanner) Next() (Chunk, error) {
	if _, err := s.rs.Seek(s.next, io.SeekStart); err != nil {
		return Chunk{}, fmt.Errorf("seeking chunk header: %w", err)
	}

	if _, err := io.ReadFull(s.rs, s.hdr[:]); err != nil {
		if err == io.EOF {
			return Chunk{}, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return Chunk{}, ErrTruncated
		}
		return Chunk{}, fmt.Errorf("reading chunk header: %w", err)
	}

	ch := Chunk{
		Tag:  Tag(s.hdr[0:4]),
		Size: binary.LittleEndian.Uint32(s.hdr[4:8]),
		Pos:  s.next + 8,
	}

	s.next = ch.Pos + int64(ch.Size)
	if ch.Size%2 == 1 {
		s.next++ // word alignment pad byte
	}

	return ch, nil
}
